package resolver

import (
	"github.com/vk/aftersort/internal/depgraph"
	"github.com/vk/aftersort/internal/fileid"
)

// Result is a dependency-first compile order plus every anomaly found while
// producing it. The order is usable even when Errors is not empty.
type Result struct {
	Order  []fileid.Identity
	Errors []Error
}

// OK reports whether resolution found no anomalies.
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// frame is one file being expanded. The stack of frames is the current
// traversal path, bottom to top.
type frame struct {
	file      fileid.Identity
	remaining []fileid.Identity
}

// Resolve flattens g starting at entry, named relative to root the same way
// the graph builder names it. opts must match the builder's identity options.
func Resolve(root, entry string, g *depgraph.Graph, opts ...fileid.Option) Result {
	return ResolveFrom(fileid.New(root, nil, opts...).Entry(entry), g)
}

// ResolveFrom flattens g starting at an already canonical identity. It is a
// pure function of its inputs.
func ResolveFrom(start fileid.Identity, g *depgraph.Graph) Result {
	var order []fileid.Identity
	var errs []Error
	var stack []frame
	visited := map[fileid.Identity]bool{start: true}
	// onPath indexes the stack for O(1) membership; the stack itself keeps
	// the traversal order used to report cycle trails.
	onPath := make(map[fileid.Identity]int)

	deps, ok := g.Lookup(start)
	if !ok {
		return Result{Errors: []Error{&NotFound{File: start}}}
	}
	onPath[start] = 0
	stack = append(stack, frame{file: start, remaining: deps})

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if len(top.remaining) == 0 {
			order = append(order, top.file)
			delete(onPath, top.file)
			stack = stack[:len(stack)-1]
			continue
		}

		dep := top.remaining[0]
		top.remaining = top.remaining[1:]

		if i, ok := onPath[dep]; ok {
			errs = append(errs, &Cycle{File: dep, Path: trail(stack[i:], dep)})
			continue
		}
		if visited[dep] {
			continue
		}
		visited[dep] = true

		depDeps, ok := g.Lookup(dep)
		if !ok {
			errs = append(errs, &NotFound{File: dep, Importer: top.file})
			continue
		}
		onPath[dep] = len(stack)
		stack = append(stack, frame{file: dep, remaining: depDeps})
	}

	return Result{Order: order, Errors: errs}
}

// trail lists the files of the given frames followed by the re-encountered file.
func trail(frames []frame, again fileid.Identity) []fileid.Identity {
	path := make([]fileid.Identity, 0, len(frames)+1)
	for _, f := range frames {
		path = append(path, f.file)
	}
	return append(path, again)
}
