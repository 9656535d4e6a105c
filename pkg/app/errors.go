package app

import "github.com/shuldan/clikit/pkg/errors"

var newAppCode = errors.WithPrefix("APP")
var newRegistryCode = errors.WithPrefix("APP_REGISTRY")
var newContainerCode = errors.WithPrefix("APP_CONTAINER")

var (
	ErrModuleRegister = newAppCode().New("failed to register module {{.module}}")
	ErrModuleStart    = newAppCode().New("failed to start module {{.module}}")
	ErrAppRun         = newAppCode().New("cannot run the application: {{.reason}}")
	ErrAppStop        = newAppCode().New("cannot stop the application: {{.reason}}")

	ErrModuleStop      = newRegistryCode().New("failed to stop module {{.module}}")
	ErrDuplicateModule = newRegistryCode().New("module {{.module}} is already registered").In(errors.ErrConflict)

	ErrCircularDep       = newContainerCode().New("circular dependency detected for {{.id}}").In(errors.ErrConfiguration)
	ErrValueNotFound     = newContainerCode().New("value not found for {{.id}}").In(errors.ErrResolution)
	ErrDuplicateInstance = newContainerCode().New("instance already exists for {{.id}}").In(errors.ErrConflict)
	ErrDuplicateFactory  = newContainerCode().New("factory already registered for {{.id}}").In(errors.ErrConflict)
)
