package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/vk/aftersort/internal/config"
	"github.com/vk/aftersort/internal/ctxlog"
	"github.com/vk/aftersort/internal/depgraph"
	"github.com/vk/aftersort/internal/fileid"
	"github.com/vk/aftersort/internal/manifest"
	"github.com/vk/aftersort/internal/notify"
	"github.com/vk/aftersort/internal/project"
	"github.com/vk/aftersort/internal/report"
	"github.com/vk/aftersort/internal/source"
	"golang.org/x/sync/errgroup"
)

// ErrUnresolved is returned by Run when at least one project produced a
// resolution error.
var ErrUnresolved = errors.New("one or more projects failed to resolve")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
	src    source.Source
}

// NewApp is the constructor for the main application. Human output goes to
// outW and logs go to logW.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		loader: loader,
		src:    source.NewDisk(),
	}
}

// Run resolves every configured project, writes their manifests and reports
// the results. It returns ErrUnresolved when any project has errors.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	logger := a.logger

	s, err := a.loadSettings(ctx)
	if err != nil {
		return err
	}
	logger.Debug("Settings resolved.", "projects", len(s.projects), "workers", s.workers, "auxiliary", s.auxiliary, "fold_case", s.foldCase)

	writer := manifest.New(s.compileExtensions...)
	runner := a.newRunner(s, writer)

	outcomes := make([]project.Outcome, len(s.projects))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range s.projects {
		g.Go(func() error {
			o, err := runner.Run(gctx, d)
			if err != nil {
				return err
			}
			outcomes[i] = o
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	manifests := a.writeManifests(ctx, writer, outcomes)

	renderer := report.NewRenderer(a.outW, a.config.Color)
	for _, o := range outcomes {
		renderer.Render(o)
	}
	renderer.Summary(outcomes)

	doc := report.FromOutcomes(outcomes, manifests)
	if a.config.ReportPath != "" {
		if err := writeReport(a.config.ReportPath, doc); err != nil {
			return err
		}
		logger.Debug("Report written.", "path", a.config.ReportPath)
	}
	if a.config.NotifyURL != "" {
		pub := notify.New(notify.Config{URL: a.config.NotifyURL})
		if err := pub.Publish(ctx, doc); err != nil {
			logger.Warn("Failed to publish results.", "url", a.config.NotifyURL, "error", err)
		}
	}

	if !doc.OK {
		return ErrUnresolved
	}
	return nil
}

func (a *App) newRunner(s *settings, writer *manifest.Writer) *project.Runner {
	builderOpts := []depgraph.Option{depgraph.WithWorkers(s.workers)}
	if s.auxiliary == config.AuxiliaryExclude {
		builderOpts = append(builderOpts, depgraph.WithExclude(func(id fileid.Identity) bool {
			return !writer.Compilable(id)
		}))
	}
	if s.foldCase {
		builderOpts = append(builderOpts, depgraph.WithFold(fileid.FoldCase))
	}
	builder := depgraph.New(a.src, builderOpts...)

	runnerOpts := []project.RunnerOption{project.WithEntryNames(s.entryNames...)}
	if a.config.Orphans {
		runnerOpts = append(runnerOpts, project.WithOrphanScan(s.compileExtensions...))
	}
	return project.NewRunner(a.src, builder, runnerOpts...)
}

// writeManifests writes one manifest per project that has an entry point and
// returns the paths written, keyed by project name. A failed write is
// recorded on that project's outcome and does not stop the others.
func (a *App) writeManifests(ctx context.Context, writer *manifest.Writer, outcomes []project.Outcome) map[string]string {
	logger := ctxlog.FromContext(ctx)
	written := make(map[string]string)
	for i := range outcomes {
		o := &outcomes[i]
		if o.EntryPointMissing() {
			continue
		}
		if a.config.DryRun {
			logger.Info("Dry run, manifest not written.", "project", o.Project.Name, "path", o.Project.Output)
			continue
		}
		if err := writer.WriteFile(o.Project.Output, o.Canon, o.Result.Order); err != nil {
			logger.Error("Failed to write manifest.", "project", o.Project.Name, "path", o.Project.Output, "error", err)
			o.ManifestErr = err
			continue
		}
		logger.Info("Manifest written.", "project", o.Project.Name, "path", o.Project.Output)
		written[o.Project.Name] = o.Project.Output
	}
	return written
}

func writeReport(path string, doc report.Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	if err := report.WriteYAML(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return f.Close()
}
