// Package annotation extracts declared "after" dependencies from the leading
// comment block of a source file.
//
// Only the header counts: the reader walks blank lines and single-line
// comments from the top of the file and stops at the first substantive line.
// Inside that header every line of the form
//
//	// @after <reference>
//
// yields one raw reference, in declaration order.
package annotation

import (
	"bufio"
	"io"
	"iter"
	"strings"
	"sync"

	"github.com/vk/aftersort/internal/fileid"
	"github.com/vk/aftersort/internal/source"
)

// Marker introduces a dependency declaration.
const Marker = "// @after "

const (
	commentPrefix = "//"
	maxLineSize   = 1024 * 1024
)

// Refs is a lazy, finite, single-use sequence of raw references read from
// one file. The underlying file is closed once the sequence is exhausted,
// abandoned by the consumer, or Close is called.
type Refs struct {
	id      fileid.Identity
	rc      io.ReadCloser
	scanner *bufio.Scanner
	used    bool
	err     error
	once    sync.Once
}

// Read opens the file through src and returns its reference sequence. A
// missing file is reported by src and returned unchanged so callers can match
// it against source.ErrNotFound.
func Read(src source.Source, id fileid.Identity) (*Refs, error) {
	rc, err := src.Open(id)
	if err != nil {
		return nil, err
	}
	scanner := bufio.NewScanner(rc)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return &Refs{id: id, rc: rc, scanner: scanner}, nil
}

// All returns the sequence. Ranging over it a second time yields nothing.
func (r *Refs) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		if r.used {
			return
		}
		r.used = true
		defer r.Close()

		for r.scanner.Scan() {
			ref, ok, more := parseLine(r.scanner.Text())
			if !more {
				return
			}
			if ok && !yield(ref) {
				return
			}
		}
		r.err = r.scanner.Err()
	}
}

// Err returns the first read error encountered while scanning, if any.
func (r *Refs) Err() error {
	return r.err
}

// Close releases the underlying file. It is safe to call more than once.
func (r *Refs) Close() error {
	var err error
	r.once.Do(func() {
		err = r.rc.Close()
	})
	return err
}

// Collect reads every reference of a file into a slice.
func Collect(src source.Source, id fileid.Identity) ([]string, error) {
	refs, err := Read(src, id)
	if err != nil {
		return nil, err
	}
	defer refs.Close()

	var out []string
	for ref := range refs.All() {
		out = append(out, ref)
	}
	return out, refs.Err()
}

// parseLine classifies one line. ok reports a declaration; more is false once
// the header block has ended. Comments and declarations must start in the
// first column; an indented line ends the header.
func parseLine(line string) (ref string, ok bool, more bool) {
	line = strings.TrimSuffix(line, "\r")
	if strings.TrimSpace(line) == "" {
		return "", false, true
	}
	if !strings.HasPrefix(line, commentPrefix) {
		return "", false, false
	}
	if !strings.HasPrefix(line, Marker) {
		return "", false, true
	}
	ref = strings.TrimSpace(line[len(Marker):])
	return ref, ref != "", true
}
