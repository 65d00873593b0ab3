package resolution

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/aftersort/internal/app"
	"github.com/vk/aftersort/internal/cli"
	"github.com/vk/aftersort/internal/hclconfig"
	"github.com/vk/aftersort/internal/testutil"
)

// harnessResult holds the outcomes of an end-to-end run.
type harnessResult struct {
	Root      string
	Output    string
	LogOutput string
	Err       error
}

// runIntegrationTest writes files into a temporary project and runs the
// application on it with the given extra flags.
func runIntegrationTest(t *testing.T, files map[string]string, flags ...string) *harnessResult {
	t.Helper()

	root := testutil.WriteTree(t, files)
	args := append([]string{"--log-level", "debug", "--color", "never"}, flags...)
	args = append(args, root)

	cfg, shouldExit, err := cli.Parse(args, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, shouldExit)

	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	runErr := app.NewApp(out, logs, cfg, hclconfig.NewLoader()).Run(context.Background())
	testutil.LogOutput(t, logs)

	return &harnessResult{
		Root:      root,
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       runErr,
	}
}

var includeRe = regexp.MustCompile(`<Compile Include="([^"]+)">`)

// readOrder returns the files listed in the project's manifest, in order.
func readOrder(t *testing.T, root string) []string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(root, "compile.props"))
	require.NoError(t, err)

	var order []string
	for _, m := range includeRe.FindAllStringSubmatch(string(data), -1) {
		order = append(order, m[1])
	}
	return order
}

// requireDependencyOrder fails unless every file appears after the files
// it declares.
func requireDependencyOrder(t *testing.T, order []string, deps map[string][]string) {
	t.Helper()

	pos := make(map[string]int, len(order))
	for i, f := range order {
		pos[f] = i
	}
	for file, fileDeps := range deps {
		for _, dep := range fileDeps {
			require.Less(t, pos[dep], pos[file], "%s must come before %s", dep, file)
		}
	}
}
