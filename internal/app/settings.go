package app

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/vk/aftersort/internal/config"
	"github.com/vk/aftersort/internal/ctxlog"
	"github.com/vk/aftersort/internal/manifest"
	"github.com/vk/aftersort/internal/project"
)

// settings is the effective configuration after flags, the config file and
// defaults have been merged.
type settings struct {
	workers           int
	entryNames        []string
	compileExtensions []string
	auxiliary         string
	foldCase          bool
	projects          []project.Descriptor
}

// loadSettings loads the env file and the config file, then merges them with
// the command line. Flags win over the file.
func (a *App) loadSettings(ctx context.Context) (*settings, error) {
	logger := ctxlog.FromContext(ctx)

	if a.config.EnvFile != "" {
		if err := godotenv.Load(a.config.EnvFile); err != nil {
			return nil, fmt.Errorf("%w: failed to load env file %s: %w", ErrInvalidConfig, a.config.EnvFile, err)
		}
		logger.Debug("Env file loaded.", "path", a.config.EnvFile)
	}

	model := &config.Model{}
	if a.config.ConfigPath != "" {
		loaded, err := a.loader.Load(ctx, a.config.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		model = loaded
		logger.Debug("Configuration file loaded.", "path", a.config.ConfigPath, "projects", len(model.Projects))
	}

	s := &settings{
		entryNames:        firstNonEmpty(a.config.EntryNames, model.EntryNames, project.DefaultEntryNames),
		compileExtensions: firstNonEmpty(a.config.CompileExtensions, model.CompileExtensions, manifest.DefaultExtensions),
		auxiliary:         firstNonEmpty(a.config.Auxiliary, model.Auxiliary, config.AuxiliaryTrack),
		foldCase:          a.config.FoldCase,
	}
	if !s.foldCase && model.FoldCase != nil {
		s.foldCase = *model.FoldCase
	}
	switch {
	case a.config.Workers > 0:
		s.workers = a.config.Workers
	case model.Workers != nil:
		s.workers = *model.Workers
	}

	outputName := firstNonEmpty(a.config.OutputName, model.OutputName, manifest.DefaultFileName)
	seen := make(map[string]struct{})
	add := func(d project.Descriptor) error {
		d = d.WithDefaults(outputName)
		if _, dup := seen[d.Name]; dup {
			return fmt.Errorf("%w: project name %q is used more than once", ErrInvalidConfig, d.Name)
		}
		seen[d.Name] = struct{}{}
		s.projects = append(s.projects, d)
		return nil
	}
	for _, p := range model.Projects {
		if err := add(project.Descriptor{Name: p.Name, Root: p.Root, Entry: p.Entry, Output: p.Output}); err != nil {
			return nil, err
		}
	}
	for _, d := range a.config.Projects {
		if err := add(d); err != nil {
			return nil, err
		}
	}
	if len(s.projects) == 0 {
		return nil, fmt.Errorf("%w: no projects to resolve", ErrInvalidConfig)
	}
	return s, nil
}

func firstNonEmpty[T string | []string](values ...T) T {
	for _, v := range values {
		if len(v) > 0 {
			return v
		}
	}
	var zero T
	return zero
}
