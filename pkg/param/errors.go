package param

import "github.com/shuldan/clikit/pkg/errors"

var newParamCode = errors.WithPrefix("PARAM")

var (
	ErrInvalidParameter  = newParamCode().New("invalid parameter {{.name}}: {{.reason}}").In(errors.ErrConfiguration)
	ErrUnsupportedOption = newParamCode().New("option {{.option}} does not apply to {{.kind}} parameter --{{.name}}").In(errors.ErrConfiguration)
	ErrInvalidDefault    = newParamCode().New("default of --{{.name}} must be {{.expected}}").In(errors.ErrConfiguration)
	ErrInvalidPattern    = newParamCode().New("invalid pattern {{.pattern}} for --{{.name}}").In(errors.ErrConfiguration)
	ErrInvalidMode       = newParamCode().New("--{{.name}} has an invalid option mode").In(errors.ErrConfiguration)
	ErrInvalidShortcut   = newParamCode().New("--{{.name}} has an invalid shortcut {{.shortcut}}").In(errors.ErrConfiguration)

	ErrUnknownParameter = newParamCode().New("parameter {{.name}} is not declared on this command").In(errors.ErrResolution)

	ErrMissingRequired = newParamCode().New("the --{{.name}} option is required").In(errors.ErrValidation)
	ErrExpectedArray   = newParamCode().New("--{{.name}} expects a list of values").In(errors.ErrValidation)
	ErrValueRequired   = newParamCode().New("--{{.name}}: a value is required").In(errors.ErrValidation)
	ErrAtLeastOne      = newParamCode().New("--{{.name}}: at least one value is required").In(errors.ErrValidation)
	ErrInvalidType     = newParamCode().New("--{{.name}} expects {{.expected}}, got {{.value}}").In(errors.ErrValidation)
	ErrBelowMinimum    = newParamCode().New("--{{.name}}: minimum value is {{.min}}").In(errors.ErrValidation)
	ErrAboveMaximum    = newParamCode().New("--{{.name}}: maximum value is {{.max}}").In(errors.ErrValidation)
	ErrPatternMismatch = newParamCode().New("--{{.name}}: {{.value}} does not match pattern {{.pattern}}").In(errors.ErrValidation)
	ErrPathNotFound    = newParamCode().New("--{{.name}}: path {{.value}} does not exist").In(errors.ErrValidation)
	ErrPathKind        = newParamCode().New("--{{.name}}: {{.value}} is not a {{.kind}}").In(errors.ErrValidation)
	ErrInvalidChoice   = newParamCode().New("--{{.name}}: {{.value}} is not a valid choice{{if .suggestion}}; did you mean {{.suggestion}}?{{end}}").In(errors.ErrValidation)
)
