package errorx

import "fmt"

type Error struct {
	Code    Code
	Message string
}

func New(code Code, format string, a ...any) Error {
	return Error{Code: code, Message: fmt.Sprintf(format, a...)}
}

func (e Error) Error() string {
	return e.Message
}

// Is matches errors by code so callers can write
// errors.Is(err, errorx.Error{Code: errorx.NotFound}).
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	if !ok {
		return false
	}

	return t.Code == e.Code
}

// CodeOf returns the code of err, or Unknown's code when err is not an Error.
func CodeOf(err error) Code {
	var e Error
	if As(err, &e) {
		return e.Code
	}

	return Unknown.Code
}
