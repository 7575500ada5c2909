package transformer

import (
	"encoding/json"
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
)

// patchOperation is one RFC 6902 operation.
type patchOperation struct {
	Op    string `json:"op"`
	Path  string `json:"path"`
	Value any    `json:"value,omitempty"`
}

// Patch renders the recorded changes as an RFC 6902 JSON Patch that turns the
// input document into the output document. Operations are in the order the
// changes were made and each path is valid at the point it is applied.
func (r *Result) Patch() ([]byte, error) {
	ops := make([]patchOperation, 0, len(r.Changes))
	for _, c := range r.Changes {
		switch c.Type {
		case ChangeTypeUTCDate:
			ops = append(ops, patchOperation{Op: "replace", Path: c.Pointer, Value: c.After})
		case ChangeTypeStripExtension:
			ops = append(ops, patchOperation{Op: "remove", Path: c.Pointer})
		default:
			return nil, fmt.Errorf("transformer: no patch operation for change type %q", c.Type)
		}
	}
	data, err := json.MarshalIndent(ops, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("transformer: failed to marshal patch: %w", err)
	}
	return data, nil
}

// VerifyPatch applies patch to before and reports an error unless the result
// is structurally equal to after.
func VerifyPatch(before, after, patch []byte) error {
	p, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return fmt.Errorf("transformer: invalid patch: %w", err)
	}
	patched, err := p.Apply(before)
	if err != nil {
		return fmt.Errorf("transformer: failed to apply patch: %w", err)
	}
	if !jsonpatch.Equal(patched, after) {
		return fmt.Errorf("transformer: patched document does not match the transformed document")
	}
	return nil
}
