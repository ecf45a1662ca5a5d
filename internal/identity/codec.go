// Package identity is the single translation point between the store-native
// identifier type and the string ids exposed at the API boundary.
package identity

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// NativeField is the attribute name documents carry their native id under
// inside the store. API responses never expose it; see Normalize.
const NativeField = "_id"

// ExternalField is the id field name every API resource carries.
const ExternalField = "id"

// ErrInvalidIdentifier indicates an external id string that is not a
// structurally valid identifier (wrong length or format). Distinct from a
// well-formed id that simply matches no document.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// NewID mints a fresh native identifier.
func NewID() uuid.UUID {
	return uuid.New()
}

// EncodeID converts a native identifier to its external string form.
// Deterministic and lossless for any valid native id.
func EncodeID(native uuid.UUID) string {
	return native.String()
}

// DecodeID parses an external id string back into a native identifier.
// A malformed string fails with ErrInvalidIdentifier.
func DecodeID(external string) (uuid.UUID, error) {
	native, err := uuid.Parse(external)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q", ErrInvalidIdentifier, external)
	}
	return native, nil
}

// Normalize returns a copy of doc with the top-level native id field renamed
// to the external id field. All other fields pass through unchanged; nested
// identifiers inside arrays or sub-documents are intentionally not touched.
func Normalize(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == NativeField {
			out[ExternalField] = v
			continue
		}
		out[k] = v
	}
	return out
}
