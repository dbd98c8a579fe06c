// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"git.sr.ht/~wombelix/cfnparams/internal/params"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:   "create [--iam] [--<key> <value> ...]",
	Short: "Generate parameters for a new stack",
	Long: `Generate parameters for a new stack.

Every --<key> <value> pair is emitted as a ParameterValue, including the
value "keep".`,
	DisableFlagParsing: true,
	RunE:               newGenerateRunE(params.ActionCreate),
}
