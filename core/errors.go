package core

import (
	"errors"
	"fmt"
	"os"
)

// General error codes
const (
	NOERROR    int = 0
	EINVALID   int = 123 // validation failed, e.g. contradictory options
	EINTERNAL  int = 125 // internal error
	ESTRUCTURE int = 126 // a tree does not have the expected shape
)

// Sentinel errors to test for with errors.Is.
var (
	// ErrConfiguration flags contradictory or unusable render options.
	ErrConfiguration = errors.New("configuration error")
	// ErrStructure flags a syntax tree of unexpected shape, e.g. a plugin
	// replacing the root node.
	ErrStructure = errors.New("structural error")
)

func errorText(ecode int) string {
	switch ecode {
	case NOERROR:
		return "OK"
	case EINVALID:
		return "invalid"
	case EINTERNAL:
		return "internal error"
	case ESTRUCTURE:
		return "malformed tree"
	}
	return "undefined error"
}

// AppError is an error with an associated error code and a user-message.
type AppError interface {
	error
	ErrorCode() int
	UserMessage() string
}

type coreError struct {
	error
	code int
	msg  string
}

func (e coreError) Unwrap() error {
	return e.error
}

func (e coreError) Error() string {
	return fmt.Sprintf("[%d] %s", e.code, e.msg)
}

func (e coreError) ErrorCode() int {
	return e.code
}

func (e coreError) UserMessage() string {
	return e.msg
}

var _ AppError = coreError{}

// ErrorWithCode adds an error code to err's error chain.
// Unlike pkg/errors, ErrorWithCode will wrap nil error.
func ErrorWithCode(err error, code int) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	return coreError{err, code, errorText(code)}
}

// WrapError wraps an error in a core error, featuring an error code and
// a user message.
// If err is nil, an error denoting the code's default text is wrapped.
func WrapError(err error, code int, format string, v ...interface{}) error {
	if err == nil {
		err = errors.New(errorText(code))
	}
	msg := fmt.Sprintf(format, v...)
	return coreError{err, code, msg}
}

// ConfigurationError creates an EINVALID error which matches ErrConfiguration.
func ConfigurationError(format string, v ...interface{}) error {
	return WrapError(ErrConfiguration, EINVALID, format, v...)
}

// StructuralError creates an ESTRUCTURE error which matches ErrStructure.
func StructuralError(format string, v ...interface{}) error {
	return WrapError(ErrStructure, ESTRUCTURE, format, v...)
}

// Code returns the status code associated with an error.
// If no status code is found, it returns EINTERNAL.
// If err is nil, NOERROR is returned.
func Code(err error) (code int) {
	if err == nil {
		return NOERROR
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.ErrorCode()
	}
	return EINTERNAL
}

// UserMessage returns the user message associated with an error.
// If no message is found, it checks StatusCode and returns that message.
// If err is nil, it returns "".
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e := AppError(nil); errors.As(err, &e) {
		return e.UserMessage()
	}
	return errorText(Code(err))
}

// Error creates an error with an error code and a user-message.
func Error(code int, format string, v ...interface{}) error {
	return coreError{
		errors.New(errorText(code)),
		code,
		fmt.Sprintf(format, v...),
	}
}

// UserError prints an error to stderr, preferring the user message of
// application errors.
func UserError(err error) {
	if e, ok := err.(AppError); ok {
		fmt.Fprintf(os.Stderr, "[%d] %s\n", e.ErrorCode(), e.UserMessage())
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
}
