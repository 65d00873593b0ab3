package depgraph

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/vk/aftersort/internal/annotation"
	"github.com/vk/aftersort/internal/ctxlog"
	"github.com/vk/aftersort/internal/fileid"
	"github.com/vk/aftersort/internal/source"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Builder discovers dependency graphs. A Builder holds no per-build state and
// may be shared by concurrent Build calls.
type Builder struct {
	src     source.Source
	remap   fileid.Remap
	workers int
	exclude func(fileid.Identity) bool
	fold    func(string) string
}

// Option configures a Builder.
type Option func(*Builder)

// WithRemap sets the function applied to raw references before they are
// canonicalized.
func WithRemap(remap fileid.Remap) Option {
	return func(b *Builder) {
		if remap != nil {
			b.remap = remap
		}
	}
}

// WithWorkers bounds how many files are read at the same time. Values below
// one are ignored.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.workers = n
		}
	}
}

// WithExclude drops references whose identity matches the predicate. Excluded
// files are never read and never appear in the graph or its edges.
func WithExclude(exclude func(fileid.Identity) bool) Option {
	return func(b *Builder) {
		b.exclude = exclude
	}
}

// WithFold makes identities case-insensitive using fold. See fileid.WithFold.
func WithFold(fold func(string) string) Option {
	return func(b *Builder) {
		b.fold = fold
	}
}

// New creates a Builder that reads file content from src.
func New(src source.Source, opts ...Option) *Builder {
	b := &Builder{
		src:     src,
		remap:   fileid.NoRemap,
		workers: runtime.GOMAXPROCS(0) * 4,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build discovers every file reachable from entry, named relative to root.
// It returns once the whole transitive fan-out has completed. Unreadable
// files are left out of the graph; only cancellation of ctx fails the build.
func (b *Builder) Build(ctx context.Context, root, entry string) (*Graph, error) {
	canon := b.Canonicalizer(root)
	start := canon.Entry(entry)

	logger := ctxlog.FromContext(ctx)
	logger.Debug("Graph construction started.", "root", canon.Root(), "entry", start, "workers", b.workers)

	st := newStore()
	sem := semaphore.NewWeighted(int64(b.workers))
	g, gctx := errgroup.WithContext(ctx)

	var visit func(id fileid.Identity) error
	visit = func(id fileid.Identity) error {
		if err := sem.Acquire(gctx, 1); err != nil {
			return fmt.Errorf("graph construction interrupted at %s: %w", id, err)
		}
		deps, err := b.readDeps(gctx, canon, id)
		sem.Release(1)

		if err != nil {
			st.markMissing(id)
			return nil
		}
		// Recorded before descending: a back edge to id now hits the claim.
		st.record(id, deps)

		for _, dep := range deps {
			if !st.claim(dep) {
				continue
			}
			g.Go(func() error {
				return visit(dep)
			})
		}
		return nil
	}

	st.claim(start)
	g.Go(func() error {
		return visit(start)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	graph := st.graph()
	logger.Debug("Graph construction finished.", "root", canon.Root(), "files", graph.Len())
	return graph, nil
}

// Canonicalizer returns the canonicalizer Build uses for root. Callers that
// name files of a built graph must use it so identities match.
func (b *Builder) Canonicalizer(root string) *fileid.Canonicalizer {
	var opts []fileid.Option
	if b.fold != nil {
		opts = append(opts, fileid.WithFold(b.fold))
	}
	return fileid.New(root, b.remap, opts...)
}

// readDeps reads the declarations of id and canonicalizes each one against
// the directory of id. A non-nil error means the file is treated as absent.
func (b *Builder) readDeps(ctx context.Context, canon *fileid.Canonicalizer, id fileid.Identity) ([]fileid.Identity, error) {
	logger := ctxlog.FromContext(ctx)

	refs, err := annotation.Read(b.src, id)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			logger.Debug("File not found.", "file", id)
		} else {
			logger.Warn("File could not be read, treating it as missing.", "file", id, "error", err)
		}
		return nil, err
	}
	defer refs.Close()

	dir := id.Dir()
	deps := []fileid.Identity{}
	for ref := range refs.All() {
		dep := canon.Canonicalize(dir, ref)
		if b.exclude != nil && b.exclude(dep) {
			logger.Debug("Dependency excluded.", "file", id, "dependency", dep)
			continue
		}
		deps = append(deps, dep)
	}
	if err := refs.Err(); err != nil {
		// A partial header would silently drop declarations.
		logger.Warn("Reading declarations failed, treating file as missing.", "file", id, "error", err)
		return nil, fmt.Errorf("failed to read declarations of %s: %w", id, err)
	}

	logger.Debug("File read.", "file", id, "dependencies", len(deps))
	return deps, nil
}
