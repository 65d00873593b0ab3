package project

import (
	"context"
	"fmt"
	"slices"

	"github.com/vk/aftersort/internal/ctxlog"
	"github.com/vk/aftersort/internal/depgraph"
	"github.com/vk/aftersort/internal/fileid"
	"github.com/vk/aftersort/internal/fsutil"
	"github.com/vk/aftersort/internal/resolver"
	"github.com/vk/aftersort/internal/source"
)

// DefaultEntryNames are the conventional entry file names, in priority order.
var DefaultEntryNames = []string{"main.fs", "Main.fs", "Program.fs"}

// Outcome is everything resolution produced for one project.
type Outcome struct {
	Project Descriptor
	// Entry is the identity resolution started from; empty when no entry
	// point was found.
	Entry  fileid.Identity
	Result resolver.Result
	// Orphans are source files under the root that the entry never reaches.
	Orphans []fileid.Identity
	// Canon is the canonicalizer the project's identities were built with.
	Canon *fileid.Canonicalizer
	// ManifestErr is set when the project's manifest could not be written.
	ManifestErr error
}

// OK reports whether the project resolved cleanly and its manifest, if any,
// was written.
func (o Outcome) OK() bool {
	return o.Result.OK() && o.ManifestErr == nil
}

// EntryPointMissing reports whether the outcome stopped before any graph work.
func (o Outcome) EntryPointMissing() bool {
	for _, err := range o.Result.Errors {
		if _, ok := err.(*resolver.EntryPointNotFound); ok {
			return true
		}
	}
	return false
}

// Runner resolves projects.
type Runner struct {
	src        source.Source
	builder    *depgraph.Builder
	entryNames []string
	orphanExts []string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithEntryNames overrides DefaultEntryNames.
func WithEntryNames(names ...string) RunnerOption {
	return func(r *Runner) {
		if len(names) > 0 {
			r.entryNames = names
		}
	}
}

// WithOrphanScan enables listing files with the given extensions that are
// present under the root but not reachable from the entry. It walks the
// operating system's file system and honors a .gitignore at the root.
func WithOrphanScan(extensions ...string) RunnerOption {
	return func(r *Runner) {
		r.orphanExts = extensions
	}
}

// NewRunner creates a Runner. src is used for entry discovery and must be
// the same source the builder reads from.
func NewRunner(src source.Source, builder *depgraph.Builder, opts ...RunnerOption) *Runner {
	r := &Runner{
		src:        src,
		builder:    builder,
		entryNames: DefaultEntryNames,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run resolves one project. Resolution anomalies are part of the Outcome;
// the returned error is reserved for failures such as cancellation.
func (r *Runner) Run(ctx context.Context, d Descriptor) (Outcome, error) {
	ctx = ctxlog.With(ctx, "project", d.Name)
	logger := ctxlog.FromContext(ctx)

	canon := r.builder.Canonicalizer(d.Root)
	out := Outcome{Project: d, Canon: canon}

	entry := d.Entry
	candidates := r.entryNames
	if entry == "" {
		entry, _ = r.DiscoverEntry(canon)
	} else {
		candidates = []string{entry}
		if !r.exists(canon.Entry(entry)) {
			entry = ""
		}
	}
	if entry == "" {
		logger.Debug("No entry point found.", "root", d.Root, "candidates", candidates)
		out.Result = resolver.Result{Errors: []resolver.Error{
			&resolver.EntryPointNotFound{Root: d.Root, Candidates: slices.Clone(candidates)},
		}}
		return out, nil
	}
	out.Entry = canon.Entry(entry)
	logger.Debug("Resolving project.", "root", d.Root, "entry", out.Entry)

	graph, err := r.builder.Build(ctx, d.Root, entry)
	if err != nil {
		return out, fmt.Errorf("failed to build dependency graph for %s: %w", d.Name, err)
	}
	out.Result = resolver.ResolveFrom(out.Entry, graph)

	if len(r.orphanExts) > 0 {
		orphans, err := r.findOrphans(canon, d.Root, graph)
		if err != nil {
			logger.Warn("Orphan scan failed.", "root", d.Root, "error", err)
		}
		out.Orphans = orphans
	}

	logger.Info("Project resolved.", "files", len(out.Result.Order), "errors", len(out.Result.Errors), "orphans", len(out.Orphans))
	return out, nil
}

// DiscoverEntry returns the first recognized entry name that exists in the
// project root.
func (r *Runner) DiscoverEntry(canon *fileid.Canonicalizer) (string, bool) {
	for _, name := range r.entryNames {
		if r.exists(canon.Entry(name)) {
			return name, true
		}
	}
	return "", false
}

func (r *Runner) exists(id fileid.Identity) bool {
	rc, err := r.src.Open(id)
	if err != nil {
		return false
	}
	_ = rc.Close()
	return true
}

func (r *Runner) findOrphans(canon *fileid.Canonicalizer, root string, graph *depgraph.Graph) ([]fileid.Identity, error) {
	paths, err := fsutil.FindFilesByExtension(root, r.orphanExts...)
	if err != nil {
		return nil, err
	}
	paths, err = fsutil.FilterIgnored(root, paths)
	if err != nil {
		return nil, err
	}
	var orphans []fileid.Identity
	for _, p := range paths {
		id := canon.Path(p)
		if !graph.Has(id) {
			orphans = append(orphans, id)
		}
	}
	return orphans, nil
}
