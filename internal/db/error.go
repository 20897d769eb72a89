package db

import (
	"errors"
	"fmt"
)

// DuplicateKeyError is an error type for duplicate key errors
type DuplicateKeyError struct {
	Key     string
	Message string
}

func (e *DuplicateKeyError) Error() string {
	return e.Message
}

func IsDuplicateKeyError(err error) bool {
	var target *DuplicateKeyError
	return errors.As(err, &target)
}

// Not found Error
type NotFoundError struct {
	Key     string
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

func IsNotFoundError(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// ConflictError is returned when a conditional write lost a race: the document
// version moved on or the surrounding transaction hit a write conflict.
// The whole unit of work is safe to retry.
type ConflictError struct {
	Key     string
	Message string
	Err     error
}

func (e *ConflictError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}

func IsConflictError(err error) bool {
	var target *ConflictError
	return errors.As(err, &target)
}

// PositionClosedError is returned when a mutation targets a closed position.
type PositionClosedError struct {
	PositionID string
}

func (e *PositionClosedError) Error() string {
	return fmt.Sprintf("stake position %s is closed", e.PositionID)
}

func IsPositionClosedError(err error) bool {
	var target *PositionClosedError
	return errors.As(err, &target)
}

// InsufficientBalanceError is returned when a debit exceeds the owner balance.
type InsufficientBalanceError struct {
	OwnerID string
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("insufficient balance for owner %s", e.OwnerID)
}

func IsInsufficientBalanceError(err error) bool {
	var target *InsufficientBalanceError
	return errors.As(err, &target)
}

// CapacityError carries one of the capacity reasons of the types package.
type CapacityError struct {
	PoolID string
	Reason error
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("pool %s: %v", e.PoolID, e.Reason)
}

func (e *CapacityError) Unwrap() error {
	return e.Reason
}

func IsCapacityError(err error) bool {
	var target *CapacityError
	return errors.As(err, &target)
}
