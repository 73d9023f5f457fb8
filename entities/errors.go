package entities

import "errors"

// Discriminated error kinds for the synchronous and asynchronous paths.
// Callers match with errors.Is instead of inspecting strings.
var (
	// ErrValidation marks a bad request shape (missing field, quantity < 1).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks an unknown customer, product or order id.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a version-token mismatch on a store write.
	ErrConflict = errors.New("version conflict")

	// ErrInsufficientStock marks the business rule "stock >= quantity".
	ErrInsufficientStock = errors.New("insufficient stock")
)

// IsPermanent reports whether err can never succeed on retry. Permanent
// failures are routed to the poison queue instead of being redelivered.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInsufficientStock) ||
		errors.Is(err, ErrMissingMessageType) ||
		errors.Is(err, ErrUnknownMessageType)
}
