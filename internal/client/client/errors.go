package client

import (
	"errors"
	"fmt"
)

var (
	ErrUnavailable      = errors.New("server unavailable")
	ErrUnexpectedStatus = errors.New("unexpected response")
	ErrNoToken          = errors.New("server did not set a token cookie")
)

// RejectedError carries the message of a request the server refused, such as
// "User already exists" or "Incorrect password or email".
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}
