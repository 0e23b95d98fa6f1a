package errorx

import "fmt"

type Error struct {
	Code    Code
	Message string
}

func (e Error) Error() string {
	return e.Message
}

// New creates a user-facing error. The message is returned to the caller
// as-is, so it must never contain internal details. Log the cause with
// xcontext.Logger before returning one of these.
func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}
