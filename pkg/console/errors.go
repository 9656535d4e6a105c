package console

import "github.com/shuldan/clikit/pkg/errors"

var newConsoleCode = errors.WithPrefix("CONSOLE")

var (
	ErrInvalidOptionMode   = newConsoleCode().New("option --{{.name}} has an invalid mode: {{.reason}}").In(errors.ErrConfiguration)
	ErrInvalidOptionName   = newConsoleCode().New("invalid option name {{.name}}: {{.reason}}").In(errors.ErrConfiguration)
	ErrInvalidArgument     = newConsoleCode().New("invalid argument {{.name}}: {{.reason}}").In(errors.ErrConfiguration)
	ErrDuplicateOption     = newConsoleCode().New("an option named --{{.name}} already exists").In(errors.ErrConfiguration)
	ErrDuplicateShortcut   = newConsoleCode().New("an option with shortcut -{{.shortcut}} already exists").In(errors.ErrConfiguration)
	ErrDuplicateArgument   = newConsoleCode().New("an argument named {{.name}} already exists").In(errors.ErrConfiguration)
	ErrUnknownOption       = newConsoleCode().New("the --{{.name}} option does not exist").In(errors.ErrValidation)
	ErrUnknownArgument     = newConsoleCode().New("the {{.name}} argument does not exist").In(errors.ErrValidation)
	ErrOptionValueRequired = newConsoleCode().New("the --{{.name}} option requires a value").In(errors.ErrValidation)
	ErrTooManyArguments    = newConsoleCode().New("too many arguments, unexpected {{.value}}").In(errors.ErrValidation)
	ErrMissingArguments    = newConsoleCode().New("not enough arguments (missing: {{.names}})").In(errors.ErrValidation)
	ErrInvalidInput        = newConsoleCode().New("invalid input: {{.reason}}").In(errors.ErrValidation)
	ErrInputExhausted      = newConsoleCode().New("input stream ended before an answer was given").In(errors.ErrAborted)
	ErrInterrupted         = newConsoleCode().New("prompt interrupted").In(errors.ErrAborted)
	ErrTooManyAttempts     = newConsoleCode().New("no valid answer after {{.attempts}} attempts").In(errors.ErrValidation)
	ErrInvalidConfirmation = newConsoleCode().New("please answer yes or no").In(errors.ErrValidation)

	ErrNoCommandSpecified  = newConsoleCode().New("no command specified").In(errors.ErrValidation)
	ErrCommandNotFound     = newConsoleCode().New("command {{.command}} is not defined{{if .suggestion}}; did you mean {{.suggestion}}?{{end}}").In(errors.ErrNotFound)
	ErrCommandRegistration = newConsoleCode().New("command registration failed for {{.command}}").In(errors.ErrConfiguration)
	ErrCommandConfigure    = newConsoleCode().New("command {{.command}} declared an invalid definition").In(errors.ErrConfiguration)

	ErrInvalidConsoleInstance = newConsoleCode().New("console instance is not a *console.Application").In(errors.ErrInternal)
)
