package app

import (
	"errors"
	"fmt"

	"github.com/vk/aftersort/internal/config"
	"github.com/vk/aftersort/internal/project"
)

// ErrInvalidConfig marks failures caused by the user's configuration rather
// than by resolution.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all the necessary configuration for an App instance to run.
// Zero values mean "not set on the command line"; the configuration file and
// then built-in defaults fill them.
type Config struct {
	ConfigPath string // hcl file
	EnvFile    string // dotenv file loaded before ConfigPath
	Projects   []project.Descriptor

	LogFormat string
	LogLevel  string

	Workers           int
	EntryNames        []string
	CompileExtensions []string
	Auxiliary         string
	OutputName        string
	FoldCase          bool

	ReportPath string
	NotifyURL  string
	Color      bool
	Orphans    bool
	DryRun     bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" && len(cfg.Projects) == 0 {
		return nil, fmt.Errorf("%w: at least one project directory or a config file is required", ErrInvalidConfig)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("%w: workers must be positive, got %d", ErrInvalidConfig, cfg.Workers)
	}
	if err := config.ValidateAuxiliary(cfg.Auxiliary); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &cfg, nil
}
