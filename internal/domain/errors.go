package domain

import (
	"errors"
	"fmt"
)

// Error taxonomy. Component errors wrap one of these so the HTTP boundary can
// map them with errors.Is.
var (
	ErrValidation          = errors.New("validation error")
	ErrNotFound            = errors.New("not found")
	ErrNotFoundOrForbidden = errors.New("not found or forbidden")
	ErrConflict            = errors.New("conflict")
	ErrOwnershipMismatch   = errors.New("ownership mismatch")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUpstream            = errors.New("upstream failure")
	ErrInvariant           = errors.New("invariant violation")
	ErrTooManyAttempts     = errors.New("too many attempts")
	ErrPaymentDeclined     = errors.New("payment declined")
)

var (
	ErrDuplicateBid     = fmt.Errorf("%w: supplier already has a pending bid on this request", ErrConflict)
	ErrInvalidState     = fmt.Errorf("%w: invalid state", ErrConflict)
	ErrAmountTooSmall   = fmt.Errorf("%w: amount is below the gateway minimum", ErrValidation)
	ErrPinNotConfigured = fmt.Errorf("%w: order PIN is not configured", ErrValidation)
	ErrPinIncorrect     = fmt.Errorf("%w: order PIN is incorrect", ErrUnauthorized)
)
