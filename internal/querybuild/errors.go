package querybuild

import "fmt"

// ValidationError reports input the builders refuse to turn into SQL: an
// empty ChangeSet, or a range filter whose minimum exceeds its maximum.
// These are deterministic caller mistakes, raised before any clause text
// exists and never worth retrying. The HTTP layer maps them to a client
// error; this package knows nothing about that.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func errorf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
