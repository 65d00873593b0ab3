package fileid

import (
	"path/filepath"
	"strings"
)

// Canonicalizer maps references found inside project files to identities
// relative to a fixed project root. It is immutable and safe for concurrent use.
type Canonicalizer struct {
	root    string
	rootAbs string
	remap   Remap
	fold    func(string) string
}

// Option configures a Canonicalizer.
type Option func(*Canonicalizer)

// WithFold applies fold to the root-relative part of every identity, so
// references that differ only in case name the same file. The project root
// itself is kept as given.
func WithFold(fold func(string) string) Option {
	return func(c *Canonicalizer) {
		c.fold = fold
	}
}

// FoldCase is the fold used for case-insensitive file systems.
func FoldCase(rel string) string {
	return strings.ToLower(rel)
}

// New creates a Canonicalizer for the given project root. A nil remap means
// NoRemap.
func New(root string, remap Remap, opts ...Option) *Canonicalizer {
	if remap == nil {
		remap = NoRemap
	}
	c := &Canonicalizer{
		root:    filepath.Clean(root),
		rootAbs: Abs(root),
		remap:   remap,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Root returns the project root exactly as identities are rooted under it.
func (c *Canonicalizer) Root() string {
	return c.root
}

// Entry returns the identity of a file named relative to the project root.
// Entry names are not references, so the remap function is not applied.
func (c *Canonicalizer) Entry(name string) Identity {
	return c.canonicalize(c.root, name)
}

// Canonicalize returns the identity denoted by ref when it appears in a file
// located in dir. The remap function is applied to ref first. dir may be an
// identity directory (see Identity.Dir) or an OS path.
func (c *Canonicalizer) Canonicalize(dir, ref string) Identity {
	return c.canonicalize(dir, c.remap(ref))
}

func (c *Canonicalizer) canonicalize(dir, ref string) Identity {
	var rel string
	if filepath.IsAbs(ref) {
		rel = Rel(c.rootAbs, filepath.Clean(ref))
	} else {
		rel = Resolve(filepath.FromSlash(dir), ref, c.rootAbs)
	}
	if c.fold != nil {
		rel = c.fold(rel)
	}
	return Identity(filepath.ToSlash(Join(c.root, rel)))
}

// Relative expresses an identity relative to the project root, with forward
// slashes. It is the inverse of re-rooting and is used when rendering
// artifacts that live inside the root.
func (c *Canonicalizer) Relative(id Identity) string {
	return filepath.ToSlash(Rel(c.rootAbs, Abs(filepath.FromSlash(string(id)))))
}

// Path returns the identity of a file given by an OS path that is relative
// to the working directory or absolute, as produced by walking the root.
func (c *Canonicalizer) Path(p string) Identity {
	return c.canonicalize(".", p)
}
