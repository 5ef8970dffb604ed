package main

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
)

// readPatch resolves the patch text from the available sources:
// an explicit file, the clipboard flag, piped stdin, then the
// clipboard as a fallback when stdin is a terminal.
func readPatch(opts *Options) (string, error) {
	if opts.File != "" {
		data, err := os.ReadFile(opts.File)
		if err != nil {
			return "", fmt.Errorf("failed to read patch file: %w", err)
		}
		return string(data), nil
	}

	if opts.Clipboard {
		return readClipboard()
	}

	stat, err := os.Stdin.Stat()
	if err != nil {
		return "", fmt.Errorf("failed to stat stdin: %w", err)
	}
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}

	return readClipboard()
}

func readClipboard() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	return text, nil
}
