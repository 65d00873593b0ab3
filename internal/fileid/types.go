// internal/fileid/types.go
package fileid

import "path"

// Identity is the canonical, root-relative key of a file in the dependency graph.
type Identity string

// String returns the identity as a plain path string.
func (id Identity) String() string {
	return string(id)
}

// Dir returns the directory part of the identity, in identity form.
func (id Identity) Dir() string {
	return path.Dir(string(id))
}

// Ext returns the file name extension of the identity, including the dot.
func (id Identity) Ext() string {
	return path.Ext(string(id))
}

// Remap rewrites a raw reference before it is canonicalized. It lets callers
// plug in alternate resolution strategies without touching graph logic.
type Remap func(ref string) string

// NoRemap is the default Remap and returns the reference unchanged.
func NoRemap(ref string) string {
	return ref
}
