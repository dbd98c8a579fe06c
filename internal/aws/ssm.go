// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package aws resolves ssm: parameter values from AWS SSM Parameter Store.
package aws

import (
	"context"
	"errors"
	"fmt"

	"git.sr.ht/~wombelix/cfnparams/internal/validation"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	ssmtypes "github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
)

// SSMValuePrefix marks a parameter value as a reference to an SSM parameter.
const SSMValuePrefix = "ssm:"

var (
	// ErrNotFound is returned when the referenced parameter does not exist.
	ErrNotFound = errors.New("parameter not found")
	// ErrAccessDenied is returned when the caller may not read the parameter.
	ErrAccessDenied = errors.New("access denied")
)

// SSMAPI defines the SSM operations used by Client
type SSMAPI interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// Client represents an AWS SSM client
type Client struct {
	SSMClient SSMAPI
}

// NewClientFunc is the type for the client creation function
type NewClientFunc func(ctx context.Context, region, role string) (*Client, error)

// DefaultNewClient loads the default AWS configuration for region and, if
// role is set, assumes that role through STS.
var DefaultNewClient NewClientFunc = func(ctx context.Context, region, role string) (*Client, error) {
	if region == "" {
		return nil, fmt.Errorf("region is required")
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if role != "" {
		stsClient := sts.NewFromConfig(cfg)
		provider := stscreds.NewAssumeRoleProvider(stsClient, role)
		cfg.Credentials = aws.NewCredentialsCache(provider)
	}

	return &Client{
		SSMClient: ssm.NewFromConfig(cfg),
	}, nil
}

// NewClient is the function used to create new AWS SSM clients.
// Tests replace it with a constructor returning a mock.
var NewClient = DefaultNewClient

// GetParameter returns the decrypted value of the named parameter.
func (c *Client) GetParameter(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("parameter name is required")
	}

	input := &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	}

	output, err := c.SSMClient.GetParameter(ctx, input)
	if err != nil {
		var pnf *ssmtypes.ParameterNotFound
		if errors.As(err, &pnf) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		var ae smithy.APIError
		if errors.As(err, &ae) && ae.ErrorCode() == "AccessDeniedException" {
			return "", fmt.Errorf("%w: insufficient permissions to read parameter %s", ErrAccessDenied, name)
		}
		return "", fmt.Errorf("failed to get parameter %s: %w", name, err)
	}

	if output.Parameter == nil || output.Parameter.Value == nil {
		return "", fmt.Errorf("parameter %s has no value", name)
	}

	return *output.Parameter.Value, nil
}

// ResolveReference validates the SSM path taken from an ssm: value and
// returns the parameter value.
func (c *Client) ResolveReference(ctx context.Context, path string) (string, error) {
	if err := validation.ValidateParameterPath(path); err != nil {
		return "", err
	}
	return c.GetParameter(ctx, path)
}
