package logger

import (
	"os"
	"strings"

	"github.com/shuldan/clikit/pkg/contracts"
)

type module struct {
	opts   []Option
	logger *Logger
}

func NewModule(opts ...Option) contracts.AppModule {
	return &module{opts: opts}
}

func (m *module) Name() string {
	return contracts.LoggerModuleName
}

func (m *module) Register(container contracts.DIContainer) error {
	return container.Factory(contracts.LoggerModuleName, func(c contracts.DIContainer) (any, error) {
		s := defaultSettings()

		if cfg, ok := loggerConfig(c); ok {
			fromConfig, err := OptionsFromConfig(cfg)
			if err != nil {
				return nil, err
			}
			for _, opt := range fromConfig {
				opt(s)
			}
		}
		for _, opt := range m.opts {
			opt(s)
		}

		m.logger = newLogger(s)
		return m.logger, nil
	})
}

func (m *module) Start(ctx contracts.AppContext) error {
	inst, err := ctx.Container().Resolve(contracts.LoggerModuleName)
	if err != nil {
		return err
	}
	log, ok := inst.(contracts.Logger)
	if !ok {
		return ErrInvalidLoggerInstance
	}
	log.Debug("console starting", "app", ctx.AppName(), "version", ctx.Version(), "env", ctx.Environment())
	return nil
}

func (m *module) Stop(ctx contracts.AppContext) error {
	if m.logger == nil {
		return nil
	}
	m.logger.Debug("console stopped", "took", ctx.StopTime().Sub(ctx.StartTime()).String())
	return m.logger.Close()
}

func loggerConfig(c contracts.DIContainer) (contracts.Config, bool) {
	if !c.Has(contracts.ConfigModuleName) {
		return nil, false
	}
	inst, err := c.Resolve(contracts.ConfigModuleName)
	if err != nil {
		return nil, false
	}
	cfg, ok := inst.(contracts.Config)
	if !ok {
		return nil, false
	}
	return cfg.GetSub("logger")
}

// OptionsFromConfig reads the "logger" section:
//
//	level:  trace|debug|info|warn|error|critical
//	format: text|json
//	color, source: bool
//	output: stderr|stdout
//	file:   path, or {path, max_size, max_backups, max_age, compress}
//
// A file overrides output.
func OptionsFromConfig(cfg contracts.Config) ([]Option, error) {
	var opts []Option

	if cfg.Has("level") {
		opts = append(opts, WithLevel(ParseLevel(cfg.GetString("level"))))
	}

	switch format := strings.ToLower(cfg.GetString("format", "text")); format {
	case "text":
		opts = append(opts, WithText())
	case "json":
		opts = append(opts, WithJSON())
	default:
		return nil, ErrUnknownFormat.WithDetail("format", format)
	}

	if cfg.GetBool("source") {
		opts = append(opts, WithSource())
	}
	if cfg.GetBool("color") {
		opts = append(opts, WithColor())
	}

	switch output := strings.ToLower(cfg.GetString("output", "stderr")); output {
	case "stderr":
		opts = append(opts, WithWriter(os.Stderr))
	case "stdout":
		opts = append(opts, WithWriter(os.Stdout))
	default:
		return nil, ErrUnknownOutput.WithDetail("output", output)
	}

	if file, ok := cfg.GetSub("file"); ok {
		path := file.GetString("path")
		if path == "" {
			return nil, ErrMissingFilePath
		}
		opts = append(opts, WithFile(path, Rotation{
			MaxSizeMB:  file.GetInt("max_size", 10),
			MaxBackups: file.GetInt("max_backups", 3),
			MaxAgeDays: file.GetInt("max_age", 28),
			Compress:   file.GetBool("compress"),
		}))
	} else if path := cfg.GetString("file"); path != "" {
		opts = append(opts, WithFile(path, Rotation{MaxSizeMB: 10, MaxBackups: 3, MaxAgeDays: 28}))
	}

	return opts, nil
}
