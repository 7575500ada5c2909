package walker

import "fmt"

// NodeType identifies the OpenAPI object an object node represents.
// It is assigned during the walk from the position of the node in the
// document; the document tree itself carries no OpenAPI types.
type NodeType uint8

const (
	NodeUnknown NodeType = iota
	NodeDocument
	NodeInfo
	NodeContact
	NodeLicense
	NodeServer
	NodeServerVariable
	NodePaths
	NodePathItem
	NodeOperation
	NodeParameter
	NodeRequestBody
	NodeMediaType
	NodeEncoding
	NodeResponses
	NodeResponse
	NodeHeader
	NodeExample
	NodeLink
	NodeCallback
	NodeComponents
	NodeSecurityScheme
	NodeOAuthFlows
	NodeOAuthFlow
	NodeScopes
	NodeTag
	NodeExternalDocs
	NodeSchema
	// NodePropertySchema is a schema that is the value of a "properties" entry.
	NodePropertySchema
	NodeDiscriminator
	NodeXML
	// NodeItems is the OAS 2.0 Items object used by non-body parameters and headers.
	NodeItems
	// NodeExtension is a vendor extension member ("x-*") of an extensible object.
	NodeExtension
)

var nodeTypeNames = [...]string{
	NodeUnknown:        "unknown",
	NodeDocument:       "document",
	NodeInfo:           "info",
	NodeContact:        "contact",
	NodeLicense:        "license",
	NodeServer:         "server",
	NodeServerVariable: "serverVariable",
	NodePaths:          "paths",
	NodePathItem:       "pathItem",
	NodeOperation:      "operation",
	NodeParameter:      "parameter",
	NodeRequestBody:    "requestBody",
	NodeMediaType:      "mediaType",
	NodeEncoding:       "encoding",
	NodeResponses:      "responses",
	NodeResponse:       "response",
	NodeHeader:         "header",
	NodeExample:        "example",
	NodeLink:           "link",
	NodeCallback:       "callback",
	NodeComponents:     "components",
	NodeSecurityScheme: "securityScheme",
	NodeOAuthFlows:     "oauthFlows",
	NodeOAuthFlow:      "oauthFlow",
	NodeScopes:         "scopes",
	NodeTag:            "tag",
	NodeExternalDocs:   "externalDocs",
	NodeSchema:         "schema",
	NodePropertySchema: "propertySchema",
	NodeDiscriminator:  "discriminator",
	NodeXML:            "xml",
	NodeItems:          "items",
	NodeExtension:      "extension",
}

// String returns the name of the node type.
func (t NodeType) String() string {
	if int(t) < len(nodeTypeNames) {
		return nodeTypeNames[t]
	}
	return fmt.Sprintf("NodeType(%d)", t)
}

// IsSchema reports whether t is a Schema object, including property schemas.
func (t NodeType) IsSchema() bool {
	return t == NodeSchema || t == NodePropertySchema
}
