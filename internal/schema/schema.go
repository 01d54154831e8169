// Package schema defines the ordered questionnaire fields and the mapping
// from a submission record to a spreadsheet row.
//
// Field order defines column order in the backing sheet. Adding, removing or
// reordering fields is a breaking change for rows already written and must be
// coordinated with the sheet by hand.
package schema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/trailblazer/trailblazer/internal/types"
)

// Kind classifies how a field is captured and validated.
type Kind string

const (
	KindText         Kind = "text"
	KindConsent      Kind = "consent"
	KindSubmissionID Kind = "submission_id"
)

// FieldDefinition describes one questionnaire field.
type FieldDefinition struct {
	Name     string `json:"name" yaml:"name"`
	Label    string `json:"label" yaml:"label"`
	Required bool   `json:"required" yaml:"required"`
	Kind     Kind   `json:"kind" yaml:"kind"`
}

// Schema is an immutable ordered list of field definitions.
type Schema struct {
	fields []FieldDefinition
	index  map[string]int
}

var (
	ErrEmptyFieldName     = errors.New("field name must not be empty")
	ErrDuplicateFieldName = errors.New("duplicate field name")
)

// New builds a Schema from defs, preserving order.
func New(defs []FieldDefinition) (*Schema, error) {
	s := &Schema{
		fields: make([]FieldDefinition, len(defs)),
		index:  make(map[string]int, len(defs)),
	}
	for i, d := range defs {
		if strings.TrimSpace(d.Name) == "" {
			return nil, fmt.Errorf("field %d: %w", i, ErrEmptyFieldName)
		}
		if _, dup := s.index[d.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateFieldName, d.Name)
		}
		if d.Kind == "" {
			d.Kind = KindText
		}
		s.fields[i] = d
		s.index[d.Name] = i
	}
	return s, nil
}

// MustNew is like New but panics on an invalid definition list.
func MustNew(defs []FieldDefinition) *Schema {
	s, err := New(defs)
	if err != nil {
		panic(err)
	}
	return s
}

// Fields returns a copy of the ordered field definitions.
func (s *Schema) Fields() []FieldDefinition {
	out := make([]FieldDefinition, len(s.fields))
	copy(out, s.fields)
	return out
}

// Len returns the number of fields, which is also the row width.
func (s *Schema) Len() int {
	return len(s.fields)
}

// Names returns field names in schema order.
func (s *Schema) Names() []string {
	out := make([]string, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Name
	}
	return out
}

// Labels returns field labels in schema order. Used as the sheet header row.
func (s *Schema) Labels() types.Row {
	out := make(types.Row, len(s.fields))
	for i, f := range s.fields {
		out[i] = f.Label
	}
	return out
}

// Lookup returns the definition for name.
func (s *Schema) Lookup(name string) (FieldDefinition, bool) {
	i, ok := s.index[name]
	if !ok {
		return FieldDefinition{}, false
	}
	return s.fields[i], true
}

// SubmissionIDField returns the name of the submission id column, if any.
func (s *Schema) SubmissionIDField() (string, bool) {
	for _, f := range s.fields {
		if f.Kind == KindSubmissionID {
			return f.Name, true
		}
	}
	return "", false
}

// RowOptions controls how a record is rendered into cells.
type RowOptions struct {
	// IncludeLabels prefixes every non-empty cell with its field label.
	IncludeLabels bool
}

// Row maps rec onto the schema. The result always has exactly Len() cells in
// schema order; keys missing from rec become empty cells and extra keys are
// ignored.
func (s *Schema) Row(rec types.SubmissionRecord, opts RowOptions) types.Row {
	row := make(types.Row, len(s.fields))
	for i, f := range s.fields {
		v := cell(rec[f.Name])
		if opts.IncludeLabels && v != "" {
			v = f.Label + ": " + v
		}
		row[i] = v
	}
	return row
}

func cell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "TRUE"
		}
		return "FALSE"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case []any:
		// multi-select controls
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if c := cell(item); c != "" {
				parts = append(parts, c)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", val)
	}
}
