package loader

import "github.com/shuldan/clikit/pkg/errors"

var newLoaderCode = errors.WithPrefix("LOADER")

var (
	ErrCommandNotFound   = newLoaderCode().New("command {{.name}} is not in the command map").In(errors.ErrNotFound)
	ErrClassNotFound     = newLoaderCode().New("class {{.class}} mapped to command {{.name}} does not exist").In(errors.ErrResolution)
	ErrNotACommand       = newLoaderCode().New("class {{.class}} mapped to command {{.name}} is not a command").In(errors.ErrResolution)
	ErrConstructFailed   = newLoaderCode().New("failed to construct class {{.class}} for command {{.name}}").In(errors.ErrResolution)
	ErrDuplicateClass    = newLoaderCode().New("class {{.class}} is already in the catalog").In(errors.ErrConfiguration)
	ErrInvalidClass      = newLoaderCode().New("class {{.class}} has no constructor").In(errors.ErrConfiguration)
	ErrInvalidCommandMap = newLoaderCode().New("command map entry {{.name}} must name a class").In(errors.ErrConfiguration)
)
