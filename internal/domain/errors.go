package domain

import "errors"

// Sentinel errors for the domain layer.
var (
	ErrNotFound         = errors.New("domain: not found")
	ErrConflict         = errors.New("domain: conflict")
	ErrUnauthenticated  = errors.New("domain: unauthenticated")
	ErrInvalidArgument  = errors.New("domain: invalid argument")
	ErrStoreUnavailable = errors.New("domain: store unavailable")
)
