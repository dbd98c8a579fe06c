// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"git.sr.ht/~wombelix/cfnparams/internal/aws"
	"git.sr.ht/~wombelix/cfnparams/internal/config"
)

// testSetup provides common test setup functionality
type testSetup struct {
	stdout  *bytes.Buffer
	stderr  *bytes.Buffer
	tmpDir  string
	workDir string
	cleanup func()
}

// setupTest points HOME at an empty temp directory and changes into a work
// directory below it, so no real configuration is picked up.
func setupTest(t *testing.T) *testSetup {
	tmpDir, err := os.MkdirTemp("", "cfnparams-test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	workDir := filepath.Join(tmpDir, "work")
	if err := os.MkdirAll(workDir, 0755); err != nil {
		t.Fatalf("Failed to create work dir: %v", err)
	}

	origHome := os.Getenv("HOME")
	origRegion, hadRegion := os.LookupEnv("AWS_REGION")
	origNewClient := aws.NewClient
	origWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	os.Setenv("HOME", tmpDir)
	os.Unsetenv("AWS_REGION")
	if err := os.Chdir(workDir); err != nil {
		t.Fatalf("Failed to change to work directory: %v", err)
	}

	ts := &testSetup{
		stdout:  &bytes.Buffer{},
		stderr:  &bytes.Buffer{},
		tmpDir:  tmpDir,
		workDir: workDir,
	}
	rootCmd.SetOut(ts.stdout)
	rootCmd.SetErr(ts.stderr)

	ts.cleanup = func() {
		os.Chdir(origWd)
		os.RemoveAll(tmpDir)
		os.Setenv("HOME", origHome)
		if hadRegion {
			os.Setenv("AWS_REGION", origRegion)
		} else {
			os.Unsetenv("AWS_REGION")
		}
		aws.NewClient = origNewClient
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	}

	return ts
}

// run executes the root command with args on freshly reset flags.
func (ts *testSetup) run(args ...string) error {
	ts.stdout.Reset()
	ts.stderr.Reset()

	rootCmd.ResetFlags()
	showVersion = false
	initRootFlags()

	rootCmd.SetArgs(args)
	return Execute()
}

// setupMockClient makes aws.NewClient return a client backed by mockClient
// and records the regions and roles it was called with.
func (ts *testSetup) setupMockClient(mockClient *aws.MockSSMClient) *[]string {
	var calls []string
	aws.NewClient = func(ctx context.Context, region, role string) (*aws.Client, error) {
		calls = append(calls, region+"|"+role)
		return &aws.Client{SSMClient: mockClient}, nil
	}
	return &calls
}

// setupConfigFile writes a local configuration file
func (ts *testSetup) setupConfigFile(t *testing.T, content string) {
	if err := os.WriteFile(filepath.Join(ts.workDir, config.FileName), []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}
