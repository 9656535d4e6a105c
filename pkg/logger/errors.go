package logger

import "github.com/shuldan/clikit/pkg/errors"

var newLoggerCode = errors.WithPrefix("LOGGER")

var (
	ErrUnknownFormat         = newLoggerCode().New("unknown log format {{.format}}").In(errors.ErrConfiguration)
	ErrUnknownOutput         = newLoggerCode().New("unknown log output {{.output}}, use logger.file for files").In(errors.ErrConfiguration)
	ErrMissingFilePath       = newLoggerCode().New("logger.file needs a path").In(errors.ErrConfiguration)
	ErrInvalidLoggerInstance = newLoggerCode().New("logger instance does not implement contracts.Logger").In(errors.ErrInternal)
)
