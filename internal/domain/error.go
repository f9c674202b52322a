package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound            = errors.New("entity not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInvalidState        = errors.New("operation not allowed in current state")
	ErrAlreadyPaid         = errors.New("subscription already approved")
	ErrDuplicateBookingTrx = errors.New("booking transaction id already in use")

	// ErrCapacityExceeded signals a broken allocator invariant
	// (participant_count passing max_capacity). It is an internal defect,
	// never a caller mistake.
	ErrCapacityExceeded = errors.New("group capacity exceeded")

	// Infra-level errors surfaced by repositories
	ErrOperationFailed    = errors.New("storage operation failed")
	ErrInvalidExecContext = errors.New("invalid executor context")
	ErrReadDatabaseRow    = errors.New("failed to read database row")
)
