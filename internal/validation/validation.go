// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package validation checks the AWS identifiers cfnparams accepts from its
// configuration file and from ssm: parameter references.
package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

var (
	parameterPathRegex = regexp.MustCompile(`^/[a-zA-Z0-9_.-]+(/[a-zA-Z0-9_.-]+)*$`)
	regionRegex        = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d$`)
	roleArnRegex       = regexp.MustCompile(`^arn:aws:iam::\d{12}:role/[a-zA-Z0-9+=,.@_-]+(/[a-zA-Z0-9+=,.@_-]+)*$`)
)

// ValidateParameterPath checks an SSM parameter path referenced by an
// ssm: value. It must start with '/', must not end with '/' and must not
// contain empty segments.
func ValidateParameterPath(path string) error {
	if path == "" {
		return fmt.Errorf("parameter path cannot be empty")
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("parameter path must start with '/'")
	}
	if strings.HasSuffix(path, "/") {
		return fmt.Errorf("parameter path must not end with '/'")
	}
	if strings.Contains(path, "//") {
		return fmt.Errorf("parameter path must not contain consecutive '/'")
	}
	if !parameterPathRegex.MatchString(path) {
		return fmt.Errorf("invalid parameter path format: %s", path)
	}
	return nil
}

// ValidateRegion checks an AWS region name such as eu-central-1.
// The empty string is valid.
func ValidateRegion(region string) error {
	if region == "" {
		return nil
	}
	if !regionRegex.MatchString(region) {
		return fmt.Errorf("invalid region format: %s", region)
	}
	return nil
}

// ValidateRoleARN checks an IAM role ARN. The empty string is valid.
func ValidateRoleARN(arn string) error {
	if arn == "" {
		return nil
	}
	if !roleArnRegex.MatchString(arn) {
		return fmt.Errorf("invalid role ARN format: %s", arn)
	}
	return nil
}

// ValidateCapability checks that name is a capability known to
// CloudFormation and returns it typed.
func ValidateCapability(name string) (types.Capability, error) {
	c := types.Capability(name)
	if !slices.Contains(c.Values(), c) {
		return "", fmt.Errorf("invalid capability %q (must be one of %v)", name, c.Values())
	}
	return c, nil
}
