package main

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Options holds all the command-line flag values.
type Options struct {
	Root      string
	Mode      string
	Window    int
	File      string
	Clipboard bool
	Verbose   bool
	Quiet     bool
	Init      bool
	Version   bool
}

// parseFlags defines and parses command-line flags using pflag.
func parseFlags() (*Options, error) {
	opts := &Options{}

	pflag.StringVarP(&opts.Root, "root", "C", "", "Workspace root directory patches apply inside (default: current directory).")
	pflag.StringVarP(&opts.Mode, "mode", "m", "", "Sandbox mode: read-only, workspace-write or full-access.")
	pflag.IntVarP(&opts.Window, "window", "w", 0, "Forward resync window for matching context lines.")
	pflag.StringVarP(&opts.File, "file", "f", "", "Read the patch from a file instead of stdin.")
	pflag.BoolVarP(&opts.Clipboard, "clipboard", "c", false, "Read the patch from the clipboard.")
	pflag.BoolVarP(&opts.Verbose, "verbose", "v", false, "Print a unified diff preview for each changed file.")
	pflag.BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress the report; errors only.")
	pflag.BoolVar(&opts.Init, "init", false, "Write the default config to .patchkit/config.yaml and exit.")
	pflag.BoolVar(&opts.Version, "version", false, "Print version and exit.")

	pflag.Usage = func() {
		fmt.Println("Usage: patchkit [flags]")
		fmt.Println("\nApply a patch envelope from stdin (pipe), a file or the clipboard to files under the workspace root.")
		fmt.Println("\nExample: pbpaste | patchkit -C ~/src/demo")
		fmt.Println("\nFlags:")
		pflag.PrintDefaults()
	}

	pflag.Parse()

	if err := validateOptions(opts, pflag.CommandLine.Changed("window")); err != nil {
		return nil, err
	}

	return opts, nil
}

// validateOptions rejects flag combinations parsing alone cannot catch.
// windowSet reports whether --window was given explicitly; the zero default
// defers to the config file.
func validateOptions(opts *Options, windowSet bool) error {
	if opts.File != "" && opts.Clipboard {
		return fmt.Errorf("--file and --clipboard are mutually exclusive")
	}
	if opts.Verbose && opts.Quiet {
		return fmt.Errorf("--verbose and --quiet are mutually exclusive")
	}
	if windowSet && opts.Window <= 0 {
		return fmt.Errorf("--window must be positive, got %d", opts.Window)
	}
	return nil
}
