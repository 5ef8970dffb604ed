package main

import (
	"strings"
	"testing"
)

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		windowSet bool
		wantErr   string
	}{
		{
			name: "defaults pass",
			opts: Options{},
		},
		{
			name:    "file and clipboard are exclusive",
			opts:    Options{File: "fix.patch", Clipboard: true},
			wantErr: "mutually exclusive",
		},
		{
			name:    "verbose and quiet are exclusive",
			opts:    Options{Verbose: true, Quiet: true},
			wantErr: "mutually exclusive",
		},
		{
			name:      "explicit positive window passes",
			opts:      Options{Window: 40},
			windowSet: true,
		},
		{
			name: "unset window defers to config",
			opts: Options{Window: 0},
		},
		{
			name:      "explicit zero window rejected",
			opts:      Options{Window: 0},
			windowSet: true,
			wantErr:   "--window must be positive",
		},
		{
			name:      "explicit negative window rejected",
			opts:      Options{Window: -5},
			windowSet: true,
			wantErr:   "--window must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOptions(&tt.opts, tt.windowSet)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("validateOptions() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("validateOptions() error = nil, want %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validateOptions() error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}
