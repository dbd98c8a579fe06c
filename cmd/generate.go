// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.sr.ht/~wombelix/cfnparams/internal/aws"
	"git.sr.ht/~wombelix/cfnparams/internal/config"
	"git.sr.ht/~wombelix/cfnparams/internal/params"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// newGenerateRunE returns the RunE shared by the create and update commands.
func newGenerateRunE(action params.Action) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		req, err := params.ParseArgs(action, args)
		if errors.Is(err, pflag.ErrHelp) {
			return cmd.Help()
		}
		if err != nil {
			return err
		}
		slog.Debug("Parsed arguments", "action", req.Action, "iam", req.IAM, "keys", pairKeys(req.Pairs))

		// An unreadable or invalid config file is fatal
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		doc := params.Build(req)
		doc.Merge(cfg.DefaultPairs())
		doc.AddCapabilities(cfg.CapabilityValues()...)

		if cfg.ResolveSSMEnabled() {
			if err := doc.ResolveValues(cmd.Context(), aws.SSMValuePrefix, ssmLookup(cfg)); err != nil {
				return err
			}
		}

		return writeDocument(cmd, doc, cfg.File)
	}
}

// ssmLookup returns a lookup function backed by SSM Parameter Store. The
// client is only created once a value actually needs resolving.
func ssmLookup(cfg *config.Config) func(context.Context, string) (string, error) {
	var client *aws.Client
	return func(ctx context.Context, path string) (string, error) {
		if client == nil {
			region := cfg.Region
			if region == "" {
				region = os.Getenv("AWS_REGION")
			}
			if region == "" {
				return "", fmt.Errorf("AWS region must be specified via config file or AWS_REGION environment variable")
			}

			c, err := aws.NewClient(ctx, region, cfg.Role)
			if err != nil {
				return "", fmt.Errorf("failed to create AWS client: %w", err)
			}
			client = c
		}

		slog.Debug("Resolving SSM parameter", "path", path)
		return client.ResolveReference(ctx, path)
	}
}

// writeDocument writes the document to file, or to the command output if
// file is empty.
func writeDocument(cmd *cobra.Command, doc *params.Document, file string) error {
	if file == "" {
		return doc.Write(cmd.OutOrStdout())
	}

	out, err := doc.Render()
	if err != nil {
		return err
	}

	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	// Resolved ssm: values may be secrets
	if err := os.WriteFile(file, out, 0600); err != nil {
		return fmt.Errorf("failed to write to file: %w", err)
	}

	slog.Info("Parameters written", "file", file, "parameters", len(doc.Parameters))
	return nil
}

func pairKeys(pairs []params.Pair) []string {
	keys := make([]string, 0, len(pairs))
	for _, p := range pairs {
		keys = append(keys, p.Key)
	}
	return keys
}
