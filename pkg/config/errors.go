package config

import "github.com/shuldan/clikit/pkg/errors"

var newConfigCode = errors.WithPrefix("CONFIG")

var (
	ErrNoConfigSource = newConfigCode().New("no valid configuration source found. Loader: {{.loader}}").In(errors.ErrConfiguration)
	ErrParseYAML      = newConfigCode().New("failed to parse YAML file {{.path}}: {{.reason}}").In(errors.ErrConfiguration)
	ErrParseJSON      = newConfigCode().New("failed to parse JSON file {{.path}}: {{.reason}}").In(errors.ErrConfiguration)
	ErrParseHCL       = newConfigCode().New("failed to parse HCL file {{.path}}: {{.reason}}").In(errors.ErrConfiguration)
	ErrMergeFailed    = newConfigCode().New("failed to merge configuration layers").In(errors.ErrConfiguration)
)
