package domain

import "github.com/pkg/errors"

var (
	// ErrValidation marks a missing or malformed required field.
	ErrValidation = errors.New("validation error")
	// ErrNotFound marks a reference to a product id the catalog does not hold.
	ErrNotFound = errors.New("not found")
	// ErrMailDelivery marks a failure of the mail collaborator.
	ErrMailDelivery = errors.New("mail delivery failed")
)
