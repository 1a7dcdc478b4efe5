package domain

import "errors"

// Error taxonomy raised by the core services. The boundary layer maps each
// sentinel to a transport status with errors.Is and never inspects message
// text. Services wrap these with fmt.Errorf("%w: ...") to add context.
var (
	ErrValidation      = errors.New("validation failed")
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrConflict        = errors.New("conflict")
	ErrUnauthenticated = errors.New("unauthenticated")
)
