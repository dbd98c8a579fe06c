// SPDX-FileCopyrightText: 2025 Dominik Wombacher <dominik@wombacher.cc>
//
// SPDX-License-Identifier: MIT

package params

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
	"github.com/tidwall/pretty"
)

// renderOptions produces sorted keys and a four space indent. Width 0 keeps
// every array element on its own line.
var renderOptions = &pretty.Options{
	Width:    0,
	Prefix:   "",
	Indent:   "    ",
	SortKeys: true,
}

// ParameterEntry is one element of the "Parameters" array. Exactly one of
// Value and UsePreviousValue is set.
type ParameterEntry struct {
	Key              string  `json:"ParameterKey"`
	Value            *string `json:"ParameterValue,omitempty"`
	UsePreviousValue bool    `json:"UsePreviousValue,omitempty"`
}

// Document is the JSON document passed to the deployment API.
type Document struct {
	Capabilities []types.Capability `json:"Capabilities"`
	Parameters   []ParameterEntry   `json:"Parameters"`

	action Action
}

// Build creates the document for a parsed request.
func Build(req *Request) *Document {
	doc := &Document{
		Capabilities: []types.Capability{},
		Parameters:   make([]ParameterEntry, 0, len(req.Pairs)),
		action:       req.Action,
	}
	for _, p := range req.Pairs {
		doc.Parameters = append(doc.Parameters, doc.entry(p))
	}
	if req.IAM {
		doc.AddCapabilities(types.CapabilityCapabilityIam)
	}
	return doc
}

func (d *Document) entry(p Pair) ParameterEntry {
	if d.action == ActionUpdate && p.Value == UsePreviousValue {
		return ParameterEntry{Key: p.Key, UsePreviousValue: true}
	}
	value := p.Value
	return ParameterEntry{Key: p.Key, Value: &value}
}

// Has reports whether the document contains a parameter named key.
func (d *Document) Has(key string) bool {
	return slices.ContainsFunc(d.Parameters, func(e ParameterEntry) bool {
		return e.Key == key
	})
}

// Merge appends the given defaults for every key not already present.
// The sentinel rule applies to defaults the same way it does to
// command-line pairs.
func (d *Document) Merge(defaults []Pair) {
	for _, p := range defaults {
		if d.Has(p.Key) {
			continue
		}
		d.Parameters = append(d.Parameters, d.entry(p))
	}
}

// AddCapabilities adds capabilities that are not yet present, keeping the
// order in which they were first added.
func (d *Document) AddCapabilities(caps ...types.Capability) {
	for _, c := range caps {
		if !slices.Contains(d.Capabilities, c) {
			d.Capabilities = append(d.Capabilities, c)
		}
	}
}

// ResolveValues replaces every literal value starting with prefix by the
// result of lookup, called with the remainder of the value. Entries that
// keep their previous value are left alone.
func (d *Document) ResolveValues(ctx context.Context, prefix string, lookup func(context.Context, string) (string, error)) error {
	for i := range d.Parameters {
		e := &d.Parameters[i]
		if e.Value == nil || !strings.HasPrefix(*e.Value, prefix) {
			continue
		}
		resolved, err := lookup(ctx, strings.TrimPrefix(*e.Value, prefix))
		if err != nil {
			return fmt.Errorf("failed to resolve parameter %s: %w", e.Key, err)
		}
		e.Value = &resolved
	}
	return nil
}

// Render returns the document as indented JSON with sorted keys and a
// trailing newline.
func (d *Document) Render() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(d); err != nil {
		return nil, fmt.Errorf("failed to encode parameters: %w", err)
	}
	return pretty.PrettyOptions(buf.Bytes(), renderOptions), nil
}

// Write renders the document to w.
func (d *Document) Write(w io.Writer) error {
	out, err := d.Render()
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write parameters: %w", err)
	}
	return nil
}
