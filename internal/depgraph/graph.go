package depgraph

import (
	"slices"

	"github.com/vk/aftersort/internal/fileid"
)

// Graph maps each existing file to its declared dependencies, in declaration
// order. It is immutable once built and safe for concurrent reads.
type Graph struct {
	deps map[fileid.Identity][]fileid.Identity
}

// FromMap builds a Graph directly from string keys. It is mostly useful for
// tests and for callers that obtained the graph by other means.
func FromMap(m map[string][]string) *Graph {
	g := &Graph{deps: make(map[fileid.Identity][]fileid.Identity, len(m))}
	for file, deps := range m {
		ids := make([]fileid.Identity, len(deps))
		for i, d := range deps {
			ids[i] = fileid.Identity(d)
		}
		g.deps[fileid.Identity(file)] = ids
	}
	return g
}

// Lookup returns the dependencies of a file. ok is false when the file is
// not part of the graph, meaning it does not exist.
func (g *Graph) Lookup(id fileid.Identity) (deps []fileid.Identity, ok bool) {
	deps, ok = g.deps[id]
	return deps, ok
}

// Has reports whether the file exists in the graph.
func (g *Graph) Has(id fileid.Identity) bool {
	_, ok := g.deps[id]
	return ok
}

// Len returns the number of existing files in the graph.
func (g *Graph) Len() int {
	return len(g.deps)
}

// Files returns every file in the graph, sorted.
func (g *Graph) Files() []fileid.Identity {
	files := make([]fileid.Identity, 0, len(g.deps))
	for id := range g.deps {
		files = append(files, id)
	}
	slices.Sort(files)
	return files
}
