package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidAmount indicates a zero or negative monetary amount, or one with
// more than two fractional digits.
var ErrInvalidAmount = errors.New("amount must be positive with at most two decimal places")

// ErrInsufficientFunds indicates a withdrawal exceeding the wallet's current balance.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrVersionConflict indicates that a version-checked write lost an optimistic
// concurrency race: the stored version no longer matches the expected one.
// The surrounding unit of work must be rolled back in full.
var ErrVersionConflict = errors.New("wallet version conflict")

// ErrConcurrentModification is the caller-facing translation of ErrVersionConflict.
// It is retryable: the caller may re-read and re-issue the operation.
var ErrConcurrentModification = errors.New("wallet was modified concurrently")

// ErrStorageUnavailable indicates the underlying storage could not be reached
// or a transaction could not be started.
var ErrStorageUnavailable = errors.New("storage unavailable")

// ErrTxAlreadyActive indicates an attempt to open a transaction on a handle
// that already has one. This is a programmer error, not a retryable condition.
var ErrTxAlreadyActive = errors.New("transaction already active")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")
