package enveloppe

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrNoBudget is returned when a mutation is attempted while no budget
	// is loaded for the active period
	ErrNoBudget = errors.New("no budget loaded for period")

	// ErrNotLoaded is returned when the dashboard aggregate has not been
	// loaded yet
	ErrNotLoaded = errors.New("dashboard not loaded")
)

// Error represents an API error
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches target
func (e *Error) Is(target error) bool {
	if e.Err != nil {
		return errors.Is(e.Err, target)
	}

	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Code == t.Code
}
