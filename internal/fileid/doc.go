// internal/fileid/doc.go

/*
Package fileid gives every source file a single, stable graph identity.

A file may be referenced in many ways: relative to the file that mentions it,
through `..` segments, or by an absolute path. The Canonicalizer folds all of
these into one Identity: the file's path relative to the project root,
re-rooted under the root string the caller supplied and written with forward
slashes. Two references to the same file on disk always produce byte-identical
identities, which is what graph memoization and cycle detection key on.

Nothing in this package touches the file system beyond asking for the working
directory when turning a relative path into an absolute one.
*/
package fileid
