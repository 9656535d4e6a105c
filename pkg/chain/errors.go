package chain

import "github.com/shuldan/clikit/pkg/errors"

var newChainCode = errors.WithPrefix("CHAIN")

var (
	ErrUnregisteredCommand  = newChainCode().New("class {{.class}} is used in a chain but no command name maps to it").In(errors.ErrConfiguration)
	ErrUnknownMapper        = newChainCode().New("chain step {{.class}} uses unknown mapper {{.mapper}}").In(errors.ErrConfiguration)
	ErrReadChainFile        = newChainCode().New("failed to read chain file {{.path}}").In(errors.ErrConfiguration)
	ErrParseChainFile       = newChainCode().New("failed to parse chain file {{.path}}: {{.reason}}").In(errors.ErrConfiguration)
	ErrUnsupportedChainFile = newChainCode().New("chain file {{.path}} must be .yaml, .yml or .hcl").In(errors.ErrConfiguration)
	ErrInvalidCommandEntry  = newChainCode().New("command entry {{.name}} in {{.path}} must name a class").In(errors.ErrConfiguration)
	ErrInvalidStep          = newChainCode().New("chain step {{.class}}: {{.reason}}").In(errors.ErrConfiguration)
	ErrInvalidAnswer        = newChainCode().New("answer y, s or n").In(errors.ErrValidation)
	ErrManifest             = newChainCode().New("failed to read project manifest {{.path}}").In(errors.ErrConfiguration)
	ErrModFile              = newChainCode().New("failed to parse module file {{.path}}").In(errors.ErrConfiguration)
	ErrMapFailed            = newChainCode().New("mapper {{.mapper}} failed for chain step {{.class}}").In(errors.ErrInternal)
)

var ErrMissingService = newChainCode().New("service {{.id}} is required by the chain module").In(errors.ErrConfiguration)
