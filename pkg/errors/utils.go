package errors

import (
	"errors"
)

func Is(err, target error) bool {
	if err == nil && target == nil {
		return false
	}
	return errors.Is(err, target)
}

func As[T error](err error, target *T) bool {
	if err == nil {
		return false
	}
	return errors.As(err, target)
}

func Unwrap(err error) error {
	return errors.Unwrap(err)
}

func Join(errs ...error) error {
	return errors.Join(errs...)
}

func GetErrorCode(err error) Code {
	var e *Error
	if As(err, &e) {
		return e.Code
	}
	return ""
}

func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if As(err, &e) {
		if text := e.Text(); text != "" {
			return text
		}
	}
	return err.Error()
}

func CategoryOf(err error) *Error {
	for _, category := range []*Error{
		ErrConfiguration,
		ErrResolution,
		ErrValidation,
		ErrNotFound,
		ErrConflict,
		ErrAborted,
	} {
		if Is(err, category) {
			return category
		}
	}
	return nil
}
