package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/vk/aftersort/internal/app"
	"github.com/vk/aftersort/internal/cli"
	"github.com/vk/aftersort/internal/hclconfig"
)

// main is the entrypoint for the aftersort application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// The real main function handles errors and exit codes.
	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			stop()
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error
// handling. Configuration failures become usage errors.
func run(ctx context.Context, outW, errW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	loader := hclconfig.NewLoader()
	aftersortApp := app.NewApp(outW, errW, appConfig, loader)

	err = aftersortApp.Run(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, app.ErrInvalidConfig):
		return &cli.ExitError{Code: 2, Message: err.Error()}
	case errors.Is(err, app.ErrUnresolved):
		return &cli.ExitError{Code: 1, Message: err.Error()}
	default:
		return err
	}
}
