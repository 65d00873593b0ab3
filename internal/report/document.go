package report

import (
	"fmt"
	"io"

	"github.com/vk/aftersort/internal/fileid"
	"github.com/vk/aftersort/internal/project"
	"github.com/vk/aftersort/internal/resolver"
	"gopkg.in/yaml.v3"
)

// Document is the machine-readable result of a run.
type Document struct {
	OK       bool            `yaml:"ok" json:"ok"`
	Projects []ProjectReport `yaml:"projects" json:"projects"`
}

// ProjectReport describes one project. ManifestError is set when the
// manifest could not be written.
type ProjectReport struct {
	Name          string        `yaml:"name" json:"name"`
	Root          string        `yaml:"root" json:"root"`
	Entry         string        `yaml:"entry,omitempty" json:"entry,omitempty"`
	Manifest      string        `yaml:"manifest,omitempty" json:"manifest,omitempty"`
	Order         []string      `yaml:"order" json:"order"`
	Errors        []ErrorReport `yaml:"errors,omitempty" json:"errors,omitempty"`
	Orphans       []string      `yaml:"orphans,omitempty" json:"orphans,omitempty"`
	ManifestError string        `yaml:"manifest_error,omitempty" json:"manifest_error,omitempty"`
}

// ErrorReport is the flattened form of a resolver.Error.
type ErrorReport struct {
	Kind     resolver.Kind `yaml:"kind" json:"kind"`
	Message  string        `yaml:"message" json:"message"`
	File     string        `yaml:"file,omitempty" json:"file,omitempty"`
	Importer string        `yaml:"importer,omitempty" json:"importer,omitempty"`
	Path     []string      `yaml:"path,omitempty" json:"path,omitempty"`
}

// FromOutcome converts one outcome. manifestPath is empty when no manifest
// was written.
func FromOutcome(o project.Outcome, manifestPath string) ProjectReport {
	pr := ProjectReport{
		Name:     o.Project.Name,
		Root:     o.Project.Root,
		Entry:    string(o.Entry),
		Manifest: manifestPath,
		Order:    toStrings(o.Result.Order),
		Orphans:  toStrings(o.Orphans),
	}
	for _, err := range o.Result.Errors {
		pr.Errors = append(pr.Errors, errorReport(err))
	}
	if o.ManifestErr != nil {
		pr.ManifestError = o.ManifestErr.Error()
	}
	return pr
}

// FromOutcomes converts a run. manifests maps project names to written
// manifest paths.
func FromOutcomes(outcomes []project.Outcome, manifests map[string]string) Document {
	doc := Document{OK: true, Projects: make([]ProjectReport, 0, len(outcomes))}
	for _, o := range outcomes {
		pr := FromOutcome(o, manifests[o.Project.Name])
		if !o.OK() {
			doc.OK = false
		}
		doc.Projects = append(doc.Projects, pr)
	}
	return doc
}

func errorReport(err resolver.Error) ErrorReport {
	er := ErrorReport{Kind: resolver.KindOf(err), Message: err.Error()}
	switch e := err.(type) {
	case *resolver.EntryPointNotFound:
		er.File = e.Root
	case *resolver.NotFound:
		er.File = string(e.File)
		er.Importer = string(e.Importer)
	case *resolver.Cycle:
		er.File = string(e.File)
		er.Path = toStrings(e.Path)
	}
	return er
}

func toStrings(ids []fileid.Identity) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = string(id)
	}
	return out
}

// WriteYAML writes the document as YAML.
func WriteYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return enc.Close()
}
