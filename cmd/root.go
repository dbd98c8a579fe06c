// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package cmd implements the command-line interface for cfnparams.
//
// It uses the cobra library for the root command and the create and update
// subcommands. The subcommands accept arbitrary --key value flags, so cobra
// flag parsing is disabled for them and the raw tokens are handed to the
// params package.
//
// Flags supported by the root command:
//   - --version: Display version information
//   - --help: Show help and usage information
//
// The log level is read from the CFNPARAMS_LOG_LEVEL environment variable.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"git.sr.ht/~wombelix/cfnparams/internal/logger"
	"git.sr.ht/~wombelix/cfnparams/internal/params"
	"github.com/spf13/cobra"
)

// Exit codes returned by ExitCode.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// UsageLine is printed together with usage errors.
const UsageLine = "Usage: cfnparams {create|update} [--iam] [--<key> <value> ...]"

var (
	// Build information, set via ldflags during build
	version = "dev"
	commit  = "none"
	date    = "unknown"

	showVersion bool

	// rootCmd represents the base command when called without any subcommands.
	rootCmd = &cobra.Command{
		Use:   "cfnparams",
		Short: "Generate CloudFormation parameters from command-line flags",
		Long: `cfnparams turns arbitrary --key value flags into the JSON document
accepted by "aws cloudformation create-stack/update-stack --cli-input-json".`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return nil
			}
			if _, err := params.ParseAction(args[0]); err != nil {
				return err
			}
			return fmt.Errorf("%w: unexpected arguments %v", params.ErrUsage, args)
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.InitLogger(os.Getenv(logger.EnvLogLevel))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				fmt.Fprintf(cmd.OutOrStdout(), "cfnparams version %s (commit %s, built on %s)\n", version, commit, date)
				return nil
			}
			_, err := params.ParseAction("")
			return err
		},
	}
)

func init() {
	initRootFlags()

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", params.ErrUsage, err)
	})
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		printUsage(cmd.OutOrStdout())
	})

	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(updateCmd)
}

func initRootFlags() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show version information")
}

// Execute runs the root command. It is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps an error returned by Execute to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, params.ErrUsage):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// printUsage writes the help text for all commands.
func printUsage(w io.Writer) {
	fmt.Fprintf(w, `%s

Generate the parameter document for "aws cloudformation create-stack" or
"aws cloudformation update-stack --cli-input-json".

Actions:
  create    Every --<key> <value> pair becomes a ParameterValue
  update    Like create, but a value of "keep" sets UsePreviousValue

Options:
  --iam             Add CAPABILITY_IAM to Capabilities
  --<key> <value>   Stack parameter, also accepted as --<key>=<value>
  -h, --help        Show this help message
  --version         Show version information

Configuration (~/.cfnparams.yaml, ./.cfnparams.yaml):
  parameters        Default parameters for keys not given on the command line
  capabilities      Capabilities added to every document
  file              Write the document to this file instead of stdout
  resolve_ssm       Resolve values of the form ssm:/path from SSM Parameter Store
  region, role      AWS region and IAM role used to resolve ssm: values

Environment:
  CFNPARAMS_LOG_LEVEL   Log level (debug, info, warn, error) (default "info")
  AWS_REGION            Region used when the configuration sets none

Example:
  cfnparams update --iam --Env prod --DbPassword keep
`, UsageLine)
}
