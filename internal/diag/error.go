package diag

import (
	"errors"
	"fmt"

	"c0c/internal/source"
)

// Error carries a single fatal diagnostic out of a phase that cannot recover.
type Error struct {
	Diag Diagnostic
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Diag.Code.ID(), e.Diag.Message)
}

// Errorf builds an *Error with SevError.
func Errorf(code Code, primary source.Span, format string, args ...any) *Error {
	return &Error{Diag: NewError(code, primary, fmt.Sprintf(format, args...))}
}

// Internalf reports a broken table or instruction-stream invariant.
func Internalf(format string, args ...any) *Error {
	return &Error{Diag: NewError(InternalConsistency, source.Span{}, fmt.Sprintf(format, args...))}
}

// AsError unwraps err into *Error if possible.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsInternal reports whether err carries an internal consistency diagnostic.
func IsInternal(err error) bool {
	de, ok := AsError(err)
	return ok && de.Diag.Code.Class() == ClassInternal
}

// CodeOf returns the diagnostic code of err or UnknownCode.
func CodeOf(err error) Code {
	if de, ok := AsError(err); ok {
		return de.Diag.Code
	}
	return UnknownCode
}
