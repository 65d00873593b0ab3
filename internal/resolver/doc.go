// Package resolver flattens a dependency graph into a linear compile order.
//
// Resolution is a depth-first walk over an explicit stack of frames, never
// recursion, so graphs with many thousands of files resolve without depth
// limits. Every file is expanded at most once. Cycles and references to
// missing files do not stop the walk: they are collected as Error values and
// returned next to the best order that could still be produced.
package resolver
