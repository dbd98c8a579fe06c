// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

// Package params maps raw command-line tokens to a CloudFormation
// parameter document.
//
// The command line has no predefined schema: apart from the action and the
// --iam capability flag, every "--name value" pair becomes a stack parameter.
// The tokens are walked once, in order, and the pairs keep the order in
// which they were given.
package params

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ErrUsage is wrapped by every error caused by malformed command-line input.
var ErrUsage = errors.New("usage error")

// Action is the stack operation the parameter document is generated for.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
)

// UsePreviousValue is the sentinel value that, under the update action,
// keeps the value already deployed for a parameter.
const UsePreviousValue = "keep"

const (
	flagPrefix = "--"
	iamFlag    = "iam"
	helpFlag   = "help"
)

// Pair is a single "--key value" pair taken from the command line.
type Pair struct {
	Key   string
	Value string
}

// Request is the result of walking the command-line tokens.
type Request struct {
	Action Action
	IAM    bool
	Pairs  []Pair
}

// ParseAction returns the Action named by s.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionCreate, ActionUpdate:
		return Action(s), nil
	case "":
		return "", fmt.Errorf("%w: missing action (must be 'create' or 'update')", ErrUsage)
	default:
		return "", fmt.Errorf("%w: invalid action %q (must be 'create' or 'update')", ErrUsage, s)
	}
}

// ParseArgs walks the tokens following the action and collects the --iam
// flag and all parameter pairs.
//
// Parameters are given either as "--key value" or "--key=value". A value
// must not start with "--"; values with a single leading dash are accepted.
// Keys are kept verbatim and may be given only once.
//
// "-h", or "--help" without a value, returns pflag.ErrHelp.
func ParseArgs(action Action, args []string) (*Request, error) {
	if _, err := ParseAction(string(action)); err != nil {
		return nil, err
	}

	req := &Request{
		Action: action,
		Pairs:  make([]Pair, 0, len(args)/2),
	}
	seen := make(map[string]bool, len(args)/2)

	for i := 0; i < len(args); i++ {
		tok := args[i]
		if tok == "-h" {
			return nil, pflag.ErrHelp
		}
		if !strings.HasPrefix(tok, flagPrefix) {
			return nil, fmt.Errorf("%w: unexpected argument %q (parameters must be given as --key value)", ErrUsage, tok)
		}

		name, value, hasValue := strings.Cut(strings.TrimPrefix(tok, flagPrefix), "=")
		if name == "" {
			return nil, fmt.Errorf("%w: malformed flag %q", ErrUsage, tok)
		}

		if name == iamFlag {
			if hasValue {
				return nil, fmt.Errorf("%w: flag --%s does not take a value", ErrUsage, iamFlag)
			}
			req.IAM = true
			continue
		}

		if !hasValue {
			if i+1 >= len(args) || strings.HasPrefix(args[i+1], flagPrefix) {
				if name == helpFlag {
					return nil, pflag.ErrHelp
				}
				return nil, fmt.Errorf("%w: flag --%s requires a value", ErrUsage, name)
			}
			i++
			value = args[i]
		}

		if seen[name] {
			return nil, fmt.Errorf("%w: flag --%s given more than once", ErrUsage, name)
		}
		seen[name] = true
		req.Pairs = append(req.Pairs, Pair{Key: name, Value: value})
	}

	return req, nil
}
