package pagemark

import (
	"errors"
	"fmt"
)

// Application error codes. These are mapped to transport-level responses
// by the HTTP layer; the empty string is reserved for "no error".
const (
	EINTERNAL        = "internal"          // unexpected internal failure
	EINVALID         = "invalid"           // bad input (e.g. unparseable URL)
	ENOTFOUND        = "not_found"         // resource does not exist
	ETOOMANYREQUESTS = "too_many_requests" // client exceeded its rate quota
	EUNAVAILABLE     = "unavailable"       // acquisition failed on all paths
	EUNPROCESSABLE   = "unprocessable"     // content fetched but unusable
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract the machine-readable code and a
// human-readable message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("pagemark error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
