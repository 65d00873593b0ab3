package hclconfig

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/aftersort/internal/config"
	"github.com/vk/aftersort/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	environ func() []string
	getwd   func() (string, error)
}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new HCL configuration loader reading the process
// environment and working directory.
func NewLoader() *Loader {
	return &Loader{environ: os.Environ, getwd: os.Getwd}
}

// fileRoot decodes every supported top-level attribute and block.
type fileRoot struct {
	Workers           *int       `hcl:"workers,optional"`
	EntryNames        []string   `hcl:"entry_names,optional"`
	CompileExtensions []string   `hcl:"compile_extensions,optional"`
	Auxiliary         *string    `hcl:"auxiliary,optional"`
	Output            *string    `hcl:"output,optional"`
	CaseInsensitive   *bool      `hcl:"case_insensitive,optional"`
	Projects          []*project `hcl:"project,block"`
}

type project struct {
	Name   string  `hcl:"name,label"`
	Root   string  `hcl:"root"`
	Entry  *string `hcl:"entry,optional"`
	Output *string `hcl:"output,optional"`
}

// Load parses the file at path and translates it into a validated model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	evalCtx, err := l.evalContext()
	if err != nil {
		return nil, err
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalCtx, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	model := translate(root, filepath.Dir(path))
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}

	logger.Debug("HCL loader finished.", "projects", len(model.Projects))
	return model, nil
}

func (l *Loader) evalContext() (*hcl.EvalContext, error) {
	cwd, err := l.getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	env := make(map[string]cty.Value)
	for _, kv := range l.environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		env[name] = cty.StringVal(value)
	}

	envVal := cty.MapValEmpty(cty.String)
	if len(env) > 0 {
		envVal = cty.MapVal(env)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": envVal,
			"cwd": cty.StringVal(cwd),
		},
	}, nil
}

func translate(root fileRoot, baseDir string) *config.Model {
	model := &config.Model{
		Workers:           root.Workers,
		EntryNames:        root.EntryNames,
		CompileExtensions: root.CompileExtensions,
		FoldCase:          root.CaseInsensitive,
	}
	if root.Auxiliary != nil {
		model.Auxiliary = *root.Auxiliary
	}
	if root.Output != nil {
		model.OutputName = *root.Output
	}
	for _, p := range root.Projects {
		cp := config.Project{Name: p.Name, Root: p.Root}
		if cp.Root != "" {
			cp.Root = resolve(baseDir, cp.Root)
		}
		if p.Entry != nil {
			cp.Entry = *p.Entry
		}
		if p.Output != nil {
			cp.Output = resolve(cp.Root, *p.Output)
		}
		model.Projects = append(model.Projects, cp)
	}
	return model
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
