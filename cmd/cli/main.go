package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/manifold/internal/app"
	"github.com/specialistvlad/manifold/internal/cli"
	"github.com/specialistvlad/manifold/internal/config"
	"github.com/specialistvlad/manifold/internal/hcl"
	"github.com/specialistvlad/manifold/internal/yamlconf"
)

// main is the entrypoint for the manifold application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW, logW io.Writer, args []string) error {
	appConfig, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	loader := config.NewDispatcher(hcl.NewLoader(), yamlconf.NewLoader())

	ctx := context.Background()
	manifoldApp, err := app.NewApp(ctx, outW, logW, appConfig, loader, nil)
	if err != nil {
		return &cli.ExitError{Code: 1, Message: err.Error()}
	}

	return manifoldApp.Run(ctx)
}
