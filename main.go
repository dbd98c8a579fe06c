// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"log/slog"
	"os"

	"git.sr.ht/~wombelix/cfnparams/cmd"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cmd.Execute()
	code := cmd.ExitCode(err)
	switch code {
	case cmd.ExitOK:
	case cmd.ExitUsage:
		fmt.Fprintf(os.Stderr, "%s\nError: %v\n", cmd.UsageLine, err)
	default:
		slog.Error("Error executing command", "error", err)
	}
	return code
}
