package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/vk/aftersort/internal/app"
	"github.com/vk/aftersort/internal/project"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// listFlag collects a comma separated flag that may also be repeated.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, ",")
}

func (l *listFlag) Set(v string) error {
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			*l = append(*l, item)
		}
	}
	return nil
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("aftersort", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
aftersort - Computes a compilation order from "// @after <file>" declarations.

Usage:
  aftersort [options] [PROJECT...]

Arguments:
  PROJECT
    A project root directory, or DIR:ENTRY to name the entry file explicitly.
    When no entry is given the first of the recognized entry names is used.

Options:
`)
		flagSet.PrintDefaults()
	}

	var entryNames, compileExts listFlag
	configFlag := flagSet.String("config", "", "Path to an HCL configuration file.")
	cFlag := flagSet.String("c", "", "Path to an HCL configuration file (shorthand).")
	envFileFlag := flagSet.String("env-file", "", "Dotenv file loaded before the configuration file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", 0, "Maximum number of files read concurrently. 0 uses the default.")
	flagSet.Var(&entryNames, "entry-names", "Recognized entry file names, in priority order (comma separated).")
	flagSet.Var(&compileExts, "compile-ext", "Extensions written to the manifest (comma separated).")
	outputFlag := flagSet.String("output", "", "Manifest file name written in each project root.")
	auxiliaryFlag := flagSet.String("auxiliary", "", "Policy for non-compilable references. Options: 'track' or 'exclude'.")
	reportFlag := flagSet.String("report", "", "Write a YAML report of every project to this path.")
	notifyFlag := flagSet.String("notify-url", "", "Publish results to this socket.io server.")
	colorFlag := flagSet.String("color", "auto", "Colorize output. Options: 'auto', 'always', 'never'.")
	orphansFlag := flagSet.Bool("orphans", false, "List source files not reachable from the entry point.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Resolve and report without writing manifests.")
	foldCaseFlag := flagSet.Bool("fold-case", false, "Treat file names as case-insensitive within a project root.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("Arguments parsed successfully.")

	configPath := *configFlag
	if configPath == "" {
		configPath = *cFlag
	}

	var projects []project.Descriptor
	for _, arg := range flagSet.Args() {
		d, err := project.ParseArg(arg)
		if err != nil {
			return nil, false, usageError("%s", err.Error())
		}
		projects = append(projects, d)
	}

	if configPath == "" && len(projects) == 0 {
		slog.Debug("No projects or config file provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	color, err := resolveColor(strings.ToLower(*colorFlag), output)
	if err != nil {
		return nil, false, err
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		ConfigPath:        configPath,
		EnvFile:           *envFileFlag,
		Projects:          projects,
		LogFormat:         logFormat,
		LogLevel:          logLevel,
		Workers:           *workersFlag,
		EntryNames:        entryNames,
		CompileExtensions: compileExts,
		Auxiliary:         strings.ToLower(*auxiliaryFlag),
		OutputName:        *outputFlag,
		FoldCase:          *foldCaseFlag,
		ReportPath:        *reportFlag,
		NotifyURL:         *notifyFlag,
		Color:             color,
		Orphans:           *orphansFlag,
		DryRun:            *dryRunFlag,
	})
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// resolveColor maps the --color mode to a decision. "auto" enables color
// only when output is a terminal and NO_COLOR is unset.
func resolveColor(mode string, output io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		f, ok := output.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, usageError("invalid color: must be 'auto', 'always', or 'never'")
	}
}
