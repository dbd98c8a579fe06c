// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package config provides configuration management for the cfnparams tool.
//
// It handles loading and merging of YAML configuration files from multiple
// locations with a defined precedence order. The package supports both global
// (user home directory) and local (current directory) configurations, with
// local settings taking precedence over global ones.
//
// Configuration files are named .cfnparams.yaml. They can define default
// stack parameters, extra capabilities, an output file and the AWS settings
// used to resolve ssm: parameter values.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~wombelix/cfnparams/internal/params"
	"git.sr.ht/~wombelix/cfnparams/internal/validation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the configuration file in the home and the
// current directory.
const FileName = ".cfnparams.yaml"

// Common errors returned by the package
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config represents the configuration of cfnparams.
type Config struct {
	// Region is the AWS region used to resolve ssm: values
	Region string `yaml:"region,omitempty"`
	// Role is the AWS IAM role assumed to resolve ssm: values
	Role string `yaml:"role,omitempty"`
	// ResolveSSM enables resolution of ssm: values
	ResolveSSM *bool `yaml:"resolve_ssm,omitempty"`
	// Capabilities are added to every generated document
	Capabilities []string `yaml:"capabilities,omitempty" validate:"omitempty,unique,dive,required"`
	// File is the path the document is written to instead of stdout
	File string `yaml:"file,omitempty"`
	// Parameters are defaults for keys not given on the command line
	Parameters []ParamConfig `yaml:"parameters,omitempty" validate:"omitempty,unique=Key,dive"`
}

// ParamConfig is a default stack parameter.
type ParamConfig struct {
	// Key is the parameter name (required)
	Key string `yaml:"key" validate:"required"`
	// Value is the parameter value; "keep" retains the deployed value on update
	Value string `yaml:"value"`
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := validation.ValidateRegion(c.Region); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := validation.ValidateRoleARN(c.Role); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for _, name := range c.Capabilities {
		if _, err := validation.ValidateCapability(name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	return nil
}

// ResolveSSMEnabled reports whether ssm: values should be resolved.
func (c *Config) ResolveSSMEnabled() bool {
	return c.ResolveSSM != nil && *c.ResolveSSM
}

// CapabilityValues returns the configured capabilities as SDK values.
// The configuration must have been validated.
func (c *Config) CapabilityValues() []types.Capability {
	caps := make([]types.Capability, 0, len(c.Capabilities))
	for _, name := range c.Capabilities {
		caps = append(caps, types.Capability(name))
	}
	return caps
}

// DefaultPairs returns the configured default parameters.
func (c *Config) DefaultPairs() []params.Pair {
	pairs := make([]params.Pair, 0, len(c.Parameters))
	for _, p := range c.Parameters {
		pairs = append(pairs, params.Pair{Key: p.Key, Value: p.Value})
	}
	return pairs
}

// LoadConfig loads configuration from files with precedence:
// 1. Current directory (.cfnparams.yaml)
// 2. Home directory (~/.cfnparams.yaml)
//
// If no configuration files are found, returns an empty configuration.
func LoadConfig() (*Config, error) {
	var cfg Config

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, FileName)
		if fileExists(homeConfig) {
			if err := loadFile(homeConfig, &cfg); err != nil {
				return nil, fmt.Errorf("failed to load global config %s: %w", homeConfig, err)
			}
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("invalid global config %s: %w", homeConfig, err)
			}
		}
	}

	if fileExists(FileName) {
		localCfg := Config{}
		if err := loadFile(FileName, &localCfg); err != nil {
			return nil, fmt.Errorf("failed to load local config %s: %w", FileName, err)
		}
		if err := localCfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid local config %s: %w", FileName, err)
		}
		mergeConfig(&cfg, &localCfg)
	}

	return &cfg, nil
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

// loadFile loads and unmarshals a YAML configuration file. Unknown keys
// are rejected.
func loadFile(filename string, cfg *Config) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", sanitizeForLog(filename), err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse YAML in %s: %w", sanitizeForLog(filename), err)
	}
	return nil
}

// mergeConfig merges local configuration into global configuration.
// Local settings take precedence over global settings. Slices are
// replaced, not merged.
func mergeConfig(global, local *Config) {
	if local.Region != "" {
		global.Region = local.Region
	}
	if local.Role != "" {
		global.Role = local.Role
	}
	if local.File != "" {
		global.File = local.File
	}
	if local.ResolveSSM != nil {
		global.ResolveSSM = local.ResolveSSM
	}
	if len(local.Capabilities) > 0 {
		global.Capabilities = local.Capabilities
	}
	if len(local.Parameters) > 0 {
		global.Parameters = local.Parameters
	}
}

// sanitizeForLog removes control characters that could be used for log injection (CWE-117 mitigation)
func sanitizeForLog(s string) string {
	s = strings.ReplaceAll(s, "\n", "")
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\t", "")
	return strings.ReplaceAll(s, "\x1b", "")
}
