package document

import (
	"strings"
)

// OASVersion represents the OpenAPI Specification version family of a document.
type OASVersion int

const (
	// Unknown represents an unknown or unsupported version
	Unknown OASVersion = iota
	// OASVersion20 is OpenAPI 2.0 (Swagger)
	OASVersion20
	// OASVersion30 is any OpenAPI 3.0.x release
	OASVersion30
	// OASVersion31 is any OpenAPI 3.1.x release
	OASVersion31
	// OASVersion32 is any OpenAPI 3.2.x release
	OASVersion32
)

// String returns the version family as a string
func (v OASVersion) String() string {
	switch v {
	case OASVersion20:
		return "2.0"
	case OASVersion30:
		return "3.0"
	case OASVersion31:
		return "3.1"
	case OASVersion32:
		return "3.2"
	default:
		return "unknown"
	}
}

// IsOAS2 reports whether the version is OpenAPI 2.0.
func (v OASVersion) IsOAS2() bool {
	return v == OASVersion20
}

// IsOAS3 reports whether the version is any OpenAPI 3.x release.
func (v OASVersion) IsOAS3() bool {
	return v >= OASVersion30 && v <= OASVersion32
}

// ParseVersion maps an "openapi" or "swagger" version string to its family.
// It returns Unknown for anything this module does not understand.
func ParseVersion(s string) OASVersion {
	switch {
	case s == "2.0":
		return OASVersion20
	case s == "3.0" || strings.HasPrefix(s, "3.0."):
		return OASVersion30
	case s == "3.1" || strings.HasPrefix(s, "3.1."):
		return OASVersion31
	case s == "3.2" || strings.HasPrefix(s, "3.2."):
		return OASVersion32
	default:
		return Unknown
	}
}
