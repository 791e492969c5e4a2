package utils

import "errors"

// Sentinel errors shared by repositories, services and controllers.
// Wrap them with fmt.Errorf("...: %w", ErrX) so callers can errors.Is them.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrExternalService = errors.New("external service unavailable")
	ErrParse           = errors.New("could not parse response")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrConflict        = errors.New("already exists")
)
