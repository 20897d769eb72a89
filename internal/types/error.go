package types

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	InternalServiceError ErrorCode = "INTERNAL_SERVICE_ERROR"
	ValidationError      ErrorCode = "VALIDATION_ERROR"
	CapacityError        ErrorCode = "CAPACITY_ERROR"
	ConcurrencyConflict  ErrorCode = "CONCURRENCY_CONFLICT"
	NotFound             ErrorCode = "NOT_FOUND"
	InsufficientBalance  ErrorCode = "INSUFFICIENT_BALANCE"
	NoRewards            ErrorCode = "NO_REWARDS"
	PositionClosed       ErrorCode = "POSITION_CLOSED"
)

func (c ErrorCode) String() string {
	return string(c)
}

// Capacity failure reasons. They stay reachable through errors.Is on the
// *Error that wraps them.
var (
	ErrPoolInactive = errors.New("staking pool is not active")
	ErrBelowMinimum = errors.New("amount is below the pool minimum stake")
	ErrAboveMaximum = errors.New("amount is above the pool maximum stake")
	ErrNoSlots      = errors.New("staking pool has no available slots")
)

// Error is the typed result of every staking operation that did not succeed.
type Error struct {
	StatusCode int
	ErrorCode  ErrorCode
	Err        error
}

func NewError(statusCode int, errorCode ErrorCode, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		ErrorCode:  errorCode,
		Err:        err,
	}
}

func NewErrorWithMsg(statusCode int, errorCode ErrorCode, msg string) *Error {
	return NewError(statusCode, errorCode, errors.New(msg))
}

func NewValidationError(format string, args ...any) *Error {
	return NewError(http.StatusBadRequest, ValidationError, fmt.Errorf(format, args...))
}

func NewNotFoundError(format string, args ...any) *Error {
	return NewError(http.StatusNotFound, NotFound, fmt.Errorf(format, args...))
}

func NewInternalServiceError(err error) *Error {
	return NewError(http.StatusInternalServerError, InternalServiceError, err)
}

// NewCapacityError maps a capacity reason onto its error code: a full pool is
// a capacity error, every other reason is a plain validation failure.
func NewCapacityError(reason error) *Error {
	if errors.Is(reason, ErrNoSlots) {
		return NewError(http.StatusConflict, CapacityError, reason)
	}
	return NewError(http.StatusBadRequest, ValidationError, reason)
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.ErrorCode.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Retryable reports whether the same operation may be retried automatically.
func (e *Error) Retryable() bool {
	return e.ErrorCode == ConcurrencyConflict
}

// AsError extracts the *Error from err. It returns nil when err carries none.
func AsError(err error) *Error {
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}
	return nil
}

// HasCode reports whether err is an *Error with the given code.
func HasCode(err error, code ErrorCode) bool {
	typed := AsError(err)
	return typed != nil && typed.ErrorCode == code
}
