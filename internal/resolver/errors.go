package resolver

import (
	"fmt"
	"strings"

	"github.com/vk/aftersort/internal/fileid"
)

// Error is a resolution anomaly. The set of implementations is closed:
// EntryPointNotFound, NotFound and Cycle. Consumers switch over them
// exhaustively.
type Error interface {
	error
	resolutionError()
}

// Kind names an Error variant in reports.
type Kind string

const (
	KindEntryPointNotFound Kind = "entry_point_not_found"
	KindNotFound           Kind = "not_found"
	KindCycle              Kind = "cycle"
)

// KindOf returns the variant name of e.
func KindOf(e Error) Kind {
	switch e.(type) {
	case *EntryPointNotFound:
		return KindEntryPointNotFound
	case *NotFound:
		return KindNotFound
	case *Cycle:
		return KindCycle
	default:
		panic(fmt.Sprintf("resolver: unknown error variant %T", e))
	}
}

// EntryPointNotFound reports that none of the recognized entry file names
// exists in a project root.
type EntryPointNotFound struct {
	Root       string
	Candidates []string
}

func (e *EntryPointNotFound) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("no entry point found in %s", e.Root)
	}
	return fmt.Sprintf("no entry point found in %s (looked for %s)", e.Root, strings.Join(e.Candidates, ", "))
}

// NotFound reports a referenced file that does not exist. Importer is the
// file whose declaration referenced it; it is empty for a missing entry file.
type NotFound struct {
	File     fileid.Identity
	Importer fileid.Identity
}

// HasImporter reports whether the importing file is known.
func (e *NotFound) HasImporter() bool {
	return e.Importer != ""
}

func (e *NotFound) Error() string {
	if !e.HasImporter() {
		return fmt.Sprintf("file not found: %s", e.File)
	}
	return fmt.Sprintf("file not found: %s (referenced by %s)", e.File, e.Importer)
}

// Cycle reports that File was reached again while it was still being
// expanded. Path lists the files in traversal order from the first encounter
// of File to its re-encounter, so it starts and ends with File.
type Cycle struct {
	File fileid.Identity
	Path []fileid.Identity
}

func (e *Cycle) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", e.Trail())
}

// Trail renders the cycle path as `a -> b -> a`.
func (e *Cycle) Trail() string {
	parts := make([]string, len(e.Path))
	for i, p := range e.Path {
		parts[i] = string(p)
	}
	return strings.Join(parts, " -> ")
}

func (*EntryPointNotFound) resolutionError() {}
func (*NotFound) resolutionError()           {}
func (*Cycle) resolutionError()              {}
