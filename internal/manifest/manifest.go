// Package manifest writes the resolved compile order as an MSBuild item
// list that a project file can import.
//
// Only compilable files are written. Anything else that took part in the
// graph, such as a project file referenced for ordering, is filtered out
// here and nowhere earlier.
package manifest

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/vk/aftersort/internal/fileid"
)

// DefaultFileName is the manifest name used inside a project root.
const DefaultFileName = "compile.props"

// DefaultExtensions are the file extensions considered compilable.
var DefaultExtensions = []string{".fs", ".fsi"}

type project struct {
	XMLName   xml.Name  `xml:"Project"`
	ItemGroup itemGroup `xml:"ItemGroup"`
}

type itemGroup struct {
	Compile []compileItem `xml:"Compile"`
}

type compileItem struct {
	Include string `xml:"Include,attr"`
}

// Writer renders compile orders.
type Writer struct {
	extensions []string
}

// New creates a Writer for the given compilable extensions. With none given
// DefaultExtensions is used.
func New(extensions ...string) *Writer {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	return &Writer{extensions: extensions}
}

// Compilable reports whether the identity has a compilable extension.
func (w *Writer) Compilable(id fileid.Identity) bool {
	return slices.Contains(w.extensions, id.Ext())
}

// Items filters order down to compilable files, expressed relative to the
// project root.
func (w *Writer) Items(canon *fileid.Canonicalizer, order []fileid.Identity) []string {
	items := make([]string, 0, len(order))
	for _, id := range order {
		if !w.Compilable(id) {
			continue
		}
		items = append(items, canon.Relative(id))
	}
	return items
}

// Write serializes the items, in order, to out.
func (w *Writer) Write(out io.Writer, items []string) error {
	doc := project{}
	for _, item := range items {
		doc.ItemGroup.Compile = append(doc.ItemGroup.Compile, compileItem{Include: item})
	}

	if _, err := io.WriteString(out, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(out)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	_, err := io.WriteString(out, "\n")
	return err
}

// WriteFile writes the manifest for order to path, replacing it atomically.
func (w *Writer) WriteFile(path string, canon *fileid.Canonicalizer, order []fileid.Identity) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".manifest-*")
	if err != nil {
		return fmt.Errorf("failed to create manifest in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name())

	if err := w.Write(tmp, w.Items(canon, order)); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set manifest permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace manifest %s: %w", path, err)
	}
	return nil
}
