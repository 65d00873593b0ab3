package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/aftersort/internal/project"
)

func TestParse_Help(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
	}{
		{name: "help flag", args: []string{"-h"}},
		{name: "no arguments", args: nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out := &bytes.Buffer{}

			cfg, shouldExit, err := Parse(tc.args, out)

			require.NoError(t, err)
			assert.True(t, shouldExit)
			assert.Nil(t, cfg)
			assert.Contains(t, out.String(), "Usage:")
		})
	}
}

func TestParse_FullFlags(t *testing.T) {
	t.Parallel()

	// Arrange
	args := []string{
		"-c", "aftersort.hcl",
		"--env-file", ".env",
		"--log-format", "JSON",
		"--log-level", "debug",
		"--workers", "16",
		"--entry-names", "Main.fs, App.fs",
		"--entry-names", "Start.fs",
		"--compile-ext", ".fs,.fsi",
		"--output", "order.props",
		"--auxiliary", "exclude",
		"--report", "out/report.yaml",
		"--notify-url", "http://localhost:3000",
		"--color", "always",
		"--orphans",
		"--dry-run",
		"--fold-case",
		"src/core", "src/web:Web.fs",
	}

	// Act
	cfg, shouldExit, err := Parse(args, &bytes.Buffer{})

	// Assert
	require.NoError(t, err)
	require.False(t, shouldExit)
	assert.Equal(t, "aftersort.hcl", cfg.ConfigPath)
	assert.Equal(t, ".env", cfg.EnvFile)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 16, cfg.Workers)
	assert.Equal(t, []string{"Main.fs", "App.fs", "Start.fs"}, cfg.EntryNames)
	assert.Equal(t, []string{".fs", ".fsi"}, cfg.CompileExtensions)
	assert.Equal(t, "order.props", cfg.OutputName)
	assert.Equal(t, "exclude", cfg.Auxiliary)
	assert.Equal(t, "out/report.yaml", cfg.ReportPath)
	assert.Equal(t, "http://localhost:3000", cfg.NotifyURL)
	assert.True(t, cfg.Color)
	assert.True(t, cfg.Orphans)
	assert.True(t, cfg.DryRun)
	assert.True(t, cfg.FoldCase)
	require.Len(t, cfg.Projects, 2)
	assert.Equal(t, project.Descriptor{Name: "core", Root: "src/core"}, cfg.Projects[0])
	assert.Equal(t, project.Descriptor{Name: "web", Root: "src/web", Entry: "Web.fs"}, cfg.Projects[1])
}

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	cfg, _, err := Parse([]string{"."}, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Zero(t, cfg.Workers)
	assert.Nil(t, cfg.EntryNames)
	assert.False(t, cfg.Color, "a buffer is never a terminal")
	assert.False(t, cfg.DryRun)
	assert.False(t, cfg.FoldCase)
}

func TestParse_UsageErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{name: "unknown flag", args: []string{"--nope", "."}, wantMsg: "flag provided but not defined"},
		{name: "bad log format", args: []string{"--log-format", "xml", "."}, wantMsg: "invalid log-format"},
		{name: "bad log level", args: []string{"--log-level", "trace", "."}, wantMsg: "invalid log-level"},
		{name: "bad color", args: []string{"--color", "rainbow", "."}, wantMsg: "invalid color"},
		{name: "bad auxiliary", args: []string{"--auxiliary", "drop", "."}, wantMsg: "invalid auxiliary policy"},
		{name: "negative workers", args: []string{"--workers", "-2", "."}, wantMsg: "workers must be positive"},
		{name: "empty entry", args: []string{"src:"}, wantMsg: "empty entry file"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, shouldExit, err := Parse(tc.args, &bytes.Buffer{})

			require.Error(t, err)
			assert.False(t, shouldExit)
			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
