package types

import "errors"

// Backend lifecycle errors.
var (
	ErrDetached        = errors.New("backend is detached")
	ErrAlreadyAttached = errors.New("backend is already attached")
	ErrUnknownKind     = errors.New("unknown entity kind")
)

// Table operation errors.
var (
	ErrNotFound    = errors.New("entity not found")
	ErrInvalidID   = errors.New("invalid entity ID")
	ErrInvalidData = errors.New("invalid entity data")
)

// Entity method errors.
var (
	ErrInvalidState     = errors.New("invalid state value")
	ErrInvalidName      = errors.New("invalid name")
	ErrInvalidFrequency = errors.New("invalid habit frequency")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidInterval  = errors.New("end precedes start")
)
