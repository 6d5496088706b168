package errorx

import "errors"

func As(err error, target *Error) bool {
	return errors.As(err, target)
}

func IsCode(err error, code Code) bool {
	return errors.Is(err, Error{Code: code})
}
