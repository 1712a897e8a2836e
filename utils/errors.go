package utils

import (
	"errors"
	"fmt"
)

// Error kinds for the order workflow. Controllers map these onto HTTP
// status codes in one place.
var (
	ErrValidation        = errors.New("validation error")
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrRender            = errors.New("bill render failed")
	ErrDelivery          = errors.New("bill delivery failed")
	ErrUpstream          = errors.New("upstream provider failed")
)

func NewValidationError(detail string) error {
	return fmt.Errorf("%w: %s", ErrValidation, detail)
}

func NewNotFoundError(resource string, id any) error {
	return fmt.Errorf("%w: %s %v", ErrNotFound, resource, id)
}

func NewInvalidTransitionError(from, to string) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

func NewRenderError(err error) error {
	return fmt.Errorf("%w: %v", ErrRender, err)
}

func NewDeliveryError(detail string) error {
	return fmt.Errorf("%w: %s", ErrDelivery, detail)
}

func NewUpstreamError(err error) error {
	return fmt.Errorf("%w: %v", ErrUpstream, err)
}
