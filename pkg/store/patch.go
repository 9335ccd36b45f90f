package store

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Patch mutates the fields it cares about and leaves the rest alone.
// Update applies a Patch to a copy of the stored entity.
type Patch[T any] func(*T)

// JSONPatch builds a merge Patch from a JSON object. Fields present in the
// object overwrite the entity's fields; absent fields survive. The document
// is checked against T up front so the returned Patch cannot fail.
// Returns ErrInvalidPatch for anything other than a JSON object whose
// values decode into T.
func JSONPatch[T any](raw []byte) (Patch[T], error) {
	raw = bytes.TrimSpace(raw)
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("decoding patch object: %w", ErrInvalidPatch)
	}
	var check T
	if err := json.Unmarshal(raw, &check); err != nil {
		return nil, fmt.Errorf("patch does not fit %T: %v: %w", check, err, ErrInvalidPatch)
	}
	doc := append([]byte(nil), raw...)

	return func(item *T) {
		// Round-trip through JSON so maps and slices of the original are
		// not merged into in place.
		base, err := json.Marshal(item)
		if err != nil {
			return
		}
		var fresh T
		if err := json.Unmarshal(base, &fresh); err != nil {
			return
		}
		if err := json.Unmarshal(doc, &fresh); err != nil {
			return
		}
		*item = fresh
	}, nil
}

// Chain applies patches in order.
func Chain[T any](patches ...Patch[T]) Patch[T] {
	return func(item *T) {
		for _, p := range patches {
			if p != nil {
				p(item)
			}
		}
	}
}
