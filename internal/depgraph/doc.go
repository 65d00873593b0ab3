// Package depgraph discovers the transitive dependency graph of a project,
// starting from its entry file and following `// @after` declarations.
//
// # Construction
//
// The Builder visits files concurrently. Each dependency edge fans out into
// its own goroutine in an errgroup, and Build blocks until the whole fan-out
// has finished. File reads are bounded by a weighted semaphore so that very
// large projects do not open thousands of files at once.
//
// # Memoization
//
// The shared construction store is guarded by a mutex. The first branch to
// reach a file claims it atomically; every other branch that reaches the
// same file afterwards sees the claim and returns immediately. A file's
// dependency list is recorded before any of its dependencies are visited, so
// self references and back edges cannot recurse without bound.
//
// # Result
//
// The returned Graph is read-only. A file that could not be read is absent
// from it, which the resolver reports as "not found".
package depgraph
