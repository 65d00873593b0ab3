package config

import (
	"errors"
	"fmt"
)

// Auxiliary file policies.
const (
	// AuxiliaryTrack keeps non-compilable files in the graph; they are only
	// filtered out when the manifest is written.
	AuxiliaryTrack = "track"
	// AuxiliaryExclude drops references to non-compilable files while the
	// graph is built, so they never produce errors.
	AuxiliaryExclude = "exclude"
)

// Model is the unified, format-agnostic representation of a configuration
// file. Unset optional values are nil or empty so flags can fill them.
type Model struct {
	Workers           *int
	EntryNames        []string
	CompileExtensions []string
	Auxiliary         string
	OutputName        string
	FoldCase          *bool
	Projects          []Project
}

// Project is the format-agnostic representation of a `project` block.
// Paths are already resolved against the configuration file's directory.
type Project struct {
	Name   string
	Root   string
	Entry  string
	Output string
}

// Validate checks the model for values no run can use.
func (m *Model) Validate() error {
	var errs []error
	if m.Workers != nil && *m.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", *m.Workers))
	}
	if err := ValidateAuxiliary(m.Auxiliary); err != nil {
		errs = append(errs, err)
	}
	seen := make(map[string]struct{}, len(m.Projects))
	for _, p := range m.Projects {
		if p.Root == "" {
			errs = append(errs, fmt.Errorf("project %q has an empty root", p.Name))
		}
		if _, dup := seen[p.Name]; dup {
			errs = append(errs, fmt.Errorf("project %q is defined more than once", p.Name))
		}
		seen[p.Name] = struct{}{}
	}
	return errors.Join(errs...)
}

// ValidateAuxiliary checks an auxiliary policy name. Empty means default.
func ValidateAuxiliary(policy string) error {
	switch policy {
	case "", AuxiliaryTrack, AuxiliaryExclude:
		return nil
	default:
		return fmt.Errorf("invalid auxiliary policy %q: must be %q or %q", policy, AuxiliaryTrack, AuxiliaryExclude)
	}
}
