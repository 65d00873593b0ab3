// Package source provides the file content collaborators used during graph
// construction. A Source turns a file identity into readable content or
// reports that the file does not exist.
//
// # Implementations
//
//   - **Disk:** reads identities as paths relative to the working directory
//     (or as absolute paths when the project root is absolute).
//   - **Memory:** a thread-safe virtual file system keyed by identity, used by
//     tests and by callers that want to resolve content that is not on disk.
//
// Both implementations report missing files with an error that matches
// ErrNotFound under errors.Is, which the graph builder treats as a
// first-class "absent" outcome rather than a failure.
package source
