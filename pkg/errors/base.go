package errors

var newCoreCode = WithPrefix("CORE")

var (
	ErrValidation    = newCoreCode().New("validation failed")
	ErrConfiguration = newCoreCode().New("invalid configuration")
	ErrResolution    = newCoreCode().New("resolution failed")
	ErrNotFound      = newCoreCode().New("resource not found")
	ErrConflict      = newCoreCode().New("resource conflict")
	ErrInternal      = newCoreCode().New("internal error")
	ErrAborted       = newCoreCode().New("operation aborted")
)
