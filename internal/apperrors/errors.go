package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidState indicates a due record is not in the status the requested
// transition expects (e.g. approving a record that is not in review).
var ErrInvalidState = errors.New("invalid status for requested transition")

// ErrInvalidAmount indicates a non-positive or malformed monetary amount.
var ErrInvalidAmount = errors.New("amount must be positive")

// ErrStaleRate indicates a non-positive exchange rate was supplied.
var ErrStaleRate = errors.New("exchange rate must be positive")

// ErrHasDependents indicates a delete was blocked because other records
// still reference the target (e.g. a due with payment history).
var ErrHasDependents = errors.New("record has dependent payment history")

// ErrUpstreamUnavailable indicates the external exchange-rate source could
// not be reached. Callers of the rate sync recover via the configured
// fallback value and never surface this to API clients.
var ErrUpstreamUnavailable = errors.New("upstream rate source unavailable")
