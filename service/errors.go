package service

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is returned when admin credentials don't match.
var ErrUnauthorized = errors.New("invalid credentials")

// ValidationError names the first input field that failed its constraint.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ReferenceError means a cart line points at a menu item that doesn't exist.
type ReferenceError struct {
	MenuItemID uint
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("Item with ID %d not found", e.MenuItemID)
}

// NotFoundError means a by-id operation addressed a missing entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

// TransitionError is returned only when strict transitions are enabled.
type TransitionError struct {
	From   string
	To     string
	Reason string
}

func (e *TransitionError) Error() string {
	return e.Reason
}

// StoreError wraps a persistence failure. Its message is for logs, not callers.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
