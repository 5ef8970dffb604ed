package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/abdul-hamid-achik/patchkit/internal/config"
	"github.com/abdul-hamid-achik/patchkit/internal/debug"
	"github.com/abdul-hamid-achik/patchkit/internal/logger"
	"github.com/abdul-hamid-achik/patchkit/internal/patch"
	"github.com/abdul-hamid-achik/patchkit/internal/tools"
	"github.com/abdul-hamid-achik/patchkit/internal/ui"
	"github.com/abdul-hamid-achik/patchkit/internal/workspace"
)

var Version = "dev"

func main() {
	// Ensure log file is closed on exit
	defer logger.CloseLogFile()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	opts, err := parseFlags()
	if err != nil {
		return err
	}

	// Handle version flag (before logging to avoid log file for simple version checks)
	if opts.Version {
		fmt.Printf("patchkit version %s\n", Version)
		return nil
	}

	// Initialize logging - log session start (after version check to avoid creating logs for --version)
	logger.Debug("patchkit session started, args=%v", os.Args[1:])

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	output := ui.NewOutputHandler(cfg.Output.Color, cfg.Output.Highlight, cfg.Output.Theme)

	if opts.Init {
		if err := cfg.Init(); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		output.Success(fmt.Sprintf("wrote %s", cfg.ConfigPath()))
		return nil
	}

	logger.SetLevelFromString(cfg.LogLevel)

	// Initialize debug tracing if enabled
	if os.Getenv("PATCHKIT_DEBUG") == "1" {
		if err := debug.Init(); err != nil {
			logger.Warn("failed to initialize debug tracing: %v", err)
		}
		defer debug.Close()
	}

	// Command-line flags override config file values
	if opts.Root != "" {
		cfg.Sandbox.Root = opts.Root
	}
	if opts.Mode != "" {
		cfg.Sandbox.Mode = opts.Mode
	}
	if opts.Window > 0 {
		cfg.Patch.ResyncWindow = opts.Window
	}

	mode, err := workspace.ParseMode(cfg.Sandbox.Mode)
	if err != nil {
		return err
	}

	ws, err := workspace.New(cfg.Sandbox.Root, mode)
	if err != nil {
		return err
	}
	logger.Info("workspace root=%s mode=%s", ws.Root(), mode)

	applierOpts := []patch.Option{
		patch.WithResyncWindow(cfg.Patch.ResyncWindow),
	}
	if opts.Verbose && !opts.Quiet {
		applierOpts = append(applierOpts, patch.WithObserver(func(c patch.Change, before, after string) {
			output.Diff(tools.RenderUnifiedDiff(c.Path, before, after, cfg.Output.DiffContext))
		}))
	}
	applier := patch.New(ws, applierOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	patchText, err := readPatch(opts)
	if err != nil {
		return err
	}
	if strings.TrimSpace(patchText) == "" {
		output.Warning("empty patch, nothing to apply")
		return nil
	}

	result, err := applier.Apply(ctx, patchText)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("interrupted")
		}
		return err
	}

	if !opts.Quiet {
		output.Report(result)
	}
	return nil
}
