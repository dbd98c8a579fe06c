// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"git.sr.ht/~wombelix/cfnparams/internal/params"
)

func TestExecute(t *testing.T) {
	ts := setupTest(t)
	defer ts.cleanup()

	tests := []struct {
		name       string
		args       []string
		wantErr    bool
		wantUsage  bool
		wantStdout string
	}{
		{
			name:       "show_version",
			args:       []string{"--version"},
			wantStdout: "cfnparams version dev",
		},
		{
			name:       "show_help",
			args:       []string{"--help"},
			wantStdout: UsageLine,
		},
		{
			name:      "no_action",
			args:      []string{},
			wantErr:   true,
			wantUsage: true,
		},
		{
			name:      "invalid_action",
			args:      []string{"delete", "--Env", "prod"},
			wantErr:   true,
			wantUsage: true,
		},
		{
			name:      "invalid_flag",
			args:      []string{"--invalid"},
			wantErr:   true,
			wantUsage: true,
		},
		{
			name:       "valid_action_create",
			args:       []string{"create", "--Env", "prod"},
			wantStdout: `"ParameterValue": "prod"`,
		},
		{
			name:       "valid_action_update",
			args:       []string{"update", "--Env", "keep"},
			wantStdout: `"UsePreviousValue": true`,
		},
		{
			name:       "create_short_help",
			args:       []string{"create", "-h"},
			wantStdout: UsageLine,
		},
		{
			name:       "update_long_help",
			args:       []string{"update", "--help"},
			wantStdout: UsageLine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ts.run(tt.args...)

			if (err != nil) != tt.wantErr {
				t.Fatalf("Execute() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantUsage && !errors.Is(err, params.ErrUsage) {
				t.Errorf("Execute() error = %v, want usage error", err)
			}
			if tt.wantErr && ts.stdout.Len() != 0 {
				t.Errorf("Execute() wrote %q to stdout on error", ts.stdout.String())
			}
			if !strings.Contains(ts.stdout.String(), tt.wantStdout) {
				t.Errorf("Execute() stdout = %q, want it to contain %q", ts.stdout.String(), tt.wantStdout)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: ExitOK},
		{name: "usage", err: fmt.Errorf("%w: missing action", params.ErrUsage), want: ExitUsage},
		{name: "wrapped usage", err: fmt.Errorf("outer: %w", fmt.Errorf("%w: x", params.ErrUsage)), want: ExitUsage},
		{name: "other", err: errors.New("failed to load config"), want: ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPrintUsage(t *testing.T) {
	var output bytes.Buffer
	printUsage(&output)

	essentialParts := []string{
		"Usage:",
		"cfnparams",
		"create",
		"update",
		"--iam",
		"--help",
		"--version",
		"keep",
		"CFNPARAMS_LOG_LEVEL",
		".cfnparams.yaml",
	}

	for _, part := range essentialParts {
		if !strings.Contains(output.String(), part) {
			t.Errorf("printUsage() output missing %q", part)
		}
	}
}
