package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/vk/aftersort/internal/fileid"
)

// Descriptor names one project to resolve.
type Descriptor struct {
	// Name labels the project in logs and reports. Defaults to the base name
	// of the root directory.
	Name string
	// Root is the project root directory.
	Root string
	// Entry is the entry file relative to Root. When empty it is discovered
	// from the recognized entry names.
	Entry string
	// Output is the manifest path. When empty the manifest is written inside
	// Root under the default file name.
	Output string
}

// ParseArg parses a command line project argument of the form `dir` or
// `dir:entry`.
func ParseArg(arg string) (Descriptor, error) {
	if strings.TrimSpace(arg) == "" {
		return Descriptor{}, errors.New("project argument cannot be empty")
	}

	root, entry := arg, ""
	if i := strings.LastIndex(arg, ":"); i >= 0 && !isDriveColon(arg, i) {
		root, entry = arg[:i], arg[i+1:]
		if root == "" {
			return Descriptor{}, fmt.Errorf("project argument %q has no directory", arg)
		}
		if entry == "" {
			return Descriptor{}, fmt.Errorf("project argument %q has an empty entry file", arg)
		}
	}
	return Descriptor{Root: root, Entry: entry}.WithDefaults(""), nil
}

// isDriveColon reports whether the colon at i belongs to a Windows drive
// letter such as `C:\src`.
func isDriveColon(arg string, i int) bool {
	return i == 1 && len(arg) > 2 && (arg[2] == '\\' || arg[2] == '/')
}

// WithDefaults fills Name and Output. outputName is the manifest file name
// used when Output is empty; an empty outputName leaves Output unset.
func (d Descriptor) WithDefaults(outputName string) Descriptor {
	if d.Name == "" {
		d.Name = filepath.Base(fileid.Abs(d.Root))
	}
	if d.Output == "" && outputName != "" {
		d.Output = filepath.Join(d.Root, outputName)
	}
	return d
}
