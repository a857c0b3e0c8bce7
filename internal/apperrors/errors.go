package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that credentials were missing or wrong.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRateUnavailable indicates that no rate provider could deliver a rate table.
var ErrRateUnavailable = errors.New("exchange rates unavailable")
