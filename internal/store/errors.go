package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g. a user with the same email).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrUnavailable is returned when the store cannot be reached or a
	// call exceeds its deadline. Callers may safely retry.
	ErrUnavailable = errors.New("storage unavailable")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrDomainNotFound indicates that the requested domain does not exist in the store.
	ErrDomainNotFound = fmt.Errorf("%w: domain", ErrNotFound)

	// ErrTechnologyNotFound indicates that the requested technology does not exist in the store.
	ErrTechnologyNotFound = fmt.Errorf("%w: technology", ErrNotFound)

	// ErrTutorialNotFound indicates that the requested tutorial does not exist in the store.
	ErrTutorialNotFound = fmt.Errorf("%w: tutorial", ErrNotFound)

	// ErrLessonNotFound indicates that the requested lesson does not exist in the store.
	ErrLessonNotFound = fmt.Errorf("%w: lesson", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrEmailExists indicates that a user with the given email already exists.
	ErrEmailExists = fmt.Errorf("%w: email", ErrDuplicate)

	// ErrSlugExists indicates that a catalog entry with the given slug already exists.
	ErrSlugExists = fmt.Errorf("%w: slug", ErrDuplicate)

	// ErrOrderExists indicates that a lesson with the given order already
	// exists within the tutorial. Both the service-level pre-check and the
	// database unique constraint on (tutorial_id, position) map here so the
	// caller sees one consistent conflict.
	ErrOrderExists = fmt.Errorf("%w: lesson order", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
