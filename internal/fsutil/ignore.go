package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFileName is the ignore file honored at the root of a walk.
const IgnoreFileName = ".gitignore"

// Matcher reports whether a slash separated path, relative to the root it
// was loaded for, is ignored.
type Matcher func(rel string) bool

// LoadIgnore compiles the ignore file at the top of rootPath. A root without
// one yields a Matcher that ignores nothing.
func LoadIgnore(rootPath string) (Matcher, error) {
	path := filepath.Join(rootPath, IgnoreFileName)
	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return func(string) bool { return false }, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return gi.MatchesPath, nil
}

// FilterIgnored drops the paths under rootPath that match the root's ignore
// file. Paths must be joined onto rootPath, as FindFilesByExtension returns
// them.
func FilterIgnored(rootPath string, paths []string) ([]string, error) {
	if _, err := os.Stat(filepath.Join(rootPath, IgnoreFileName)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return paths, nil
		}
		return nil, err
	}
	match, err := LoadIgnore(rootPath)
	if err != nil {
		return nil, err
	}

	kept := paths[:0:0]
	for _, p := range paths {
		rel, err := filepath.Rel(rootPath, p)
		if err != nil {
			return nil, err
		}
		if !match(filepath.ToSlash(rel)) {
			kept = append(kept, p)
		}
	}
	return kept, nil
}
