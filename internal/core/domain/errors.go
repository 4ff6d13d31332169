package domain

import (
	"errors"
	"fmt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrNoToken = errors.New("no token held")
var ErrUnknownRole = errors.New("unknown role")

// ValidationError carries a backend-rejected-input message, suitable for
// inline display next to the form that produced it.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NetworkError marks a credential exchange that failed at the transport
// level or with an unexpected upstream status. The operation is retryable
// by the user re-submitting.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("backend %s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
