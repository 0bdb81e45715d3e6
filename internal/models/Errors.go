package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline failures.
type ErrorKind string

const (
	ValidationError  ErrorKind = "validation"
	NotFoundError    ErrorKind = "not_found"
	UpstreamError    ErrorKind = "upstream"
	NetworkError     ErrorKind = "network"
	InvalidDataError ErrorKind = "invalid_data"
)

const (
	MsgInvalidCoordinates = "Invalid coordinates. Latitude must be between -90 and 90, and longitude between -180 and 180."
	MsgEmptyLocation      = "Please enter a location or coordinates."
	MsgNetwork            = "Error fetching forecast data. Please check your network connection."
	MsgInvalidData        = "Invalid data received from the forecast API."
)

// Error carries a user-facing message next to the underlying cause.
// Error() is meant for logs, UserMessage() for the page.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) UserMessage() string {
	return e.Message
}

func NewError(kind ErrorKind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// WithPrefix returns a copy whose user message starts with prefix.
func (e *Error) WithPrefix(prefix string) *Error {
	return &Error{Kind: e.Kind, Message: prefix + e.Message, Err: e.Err}
}

// KindOf returns the kind of the first *Error in the chain, or "" if there is none.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// UserMessage returns the message to show for err. Unknown errors get a generic text.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.UserMessage()
	}
	return "Something went wrong while preparing the forecast. Please try again."
}
