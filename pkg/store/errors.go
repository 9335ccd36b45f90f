package store

import "errors"

// Store errors. Update and Remove on an unknown ID are not errors.
var (
	// ErrConfiguration reports a store built or queried against a
	// configuration it does not have: a missing ID accessor, a malformed
	// filter registration, or an unregistered filter name.
	ErrConfiguration = errors.New("store configuration error")

	// ErrInvalidPatch reports a patch document that cannot be applied.
	ErrInvalidPatch = errors.New("invalid patch")
)
