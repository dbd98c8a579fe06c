// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"git.sr.ht/~wombelix/cfnparams/internal/params"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update [--iam] [--<key> <value> ...]",
	Short: "Generate parameters for an existing stack",
	Long: `Generate parameters for an existing stack.

A parameter given the value "keep" is emitted with UsePreviousValue, so the
value already deployed is retained.`,
	DisableFlagParsing: true,
	RunE:               newGenerateRunE(params.ActionUpdate),
}
