// Package form implements the client side of the submission pipeline:
// reading control values, enforcing required and consent rules, and handing
// the collected record to a Submitter.
package form

import (
	"strings"

	"github.com/trailblazer/trailblazer/internal/schema"
	"github.com/trailblazer/trailblazer/internal/types"
	"github.com/trailblazer/trailblazer/internal/validation"
)

// MaxAnswerLength bounds free-text answers, in runes.
const MaxAnswerLength = 10000

// Control types. Collect treats every type but TypeCheckbox as text.
const (
	TypeText     = "text"
	TypeTextarea = "textarea"
	TypeCheckbox = "checkbox"
	TypeSelect   = "select"
)

// Control is one form element.
type Control struct {
	Name    string `json:"name" yaml:"name"`
	Type    string `json:"type" yaml:"type"`
	Value   string `json:"value,omitempty" yaml:"value,omitempty"`
	Checked bool   `json:"checked,omitempty" yaml:"checked,omitempty"`
}

// State is the current content of a form, controls in document order.
type State struct {
	Controls []Control `json:"controls" yaml:"controls"`
}

// Control returns the first control named name.
func (s *State) Control(name string) (*Control, bool) {
	for i := range s.Controls {
		if s.Controls[i].Name == name {
			return &s.Controls[i], true
		}
	}
	return nil, false
}

// Set assigns a text value, appending a text control when none exists.
func (s *State) Set(name, value string) {
	if c, ok := s.Control(name); ok {
		c.Value = value
		return
	}
	s.Controls = append(s.Controls, Control{Name: name, Type: TypeText, Value: value})
}

// Check sets a checkbox, appending one when none exists.
func (s *State) Check(name string, checked bool) {
	if c, ok := s.Control(name); ok {
		c.Checked = checked
		return
	}
	s.Controls = append(s.Controls, Control{Name: name, Type: TypeCheckbox, Checked: checked})
}

// Reset clears every value and checkbox, keeping the controls.
func (s *State) Reset() {
	for i := range s.Controls {
		s.Controls[i].Value = ""
		s.Controls[i].Checked = false
	}
}

// Validate checks state against the schema and returns every violation.
// Required text fields must be non-blank and consent fields must be checked.
func Validate(sc *schema.Schema, state *State) []validation.ValidationError {
	c := &validation.Collector{}

	for _, f := range sc.Fields() {
		ctrl, ok := state.Control(f.Name)

		switch f.Kind {
		case schema.KindConsent:
			if f.Required {
				c.Add(validation.ValidateConsent(f.Name, ok && ctrl.Checked))
			}
		case schema.KindSubmissionID:
			if ok && ctrl.Value != "" {
				c.Add(validation.ValidateULID(f.Name, ctrl.Value))
			}
		default:
			value := ""
			if ok {
				value = ctrl.Value
			}
			if f.Required {
				if err := validation.ValidateRequired(f.Name, value); err != nil {
					c.Add(err)
					continue
				}
			}
			c.Add(validation.ValidateUTF8(f.Name, value))
			c.Add(validation.ValidateNoNullBytes(f.Name, value))
			c.Add(validation.ValidateMaxLength(f.Name, value, MaxAnswerLength))
		}
	}

	if !c.HasErrors() {
		return nil
	}
	return c.Errors()
}

// Collect reads every named control into a record. Checkboxes become
// booleans, everything else a string. Unnamed controls are skipped.
func Collect(state *State) types.SubmissionRecord {
	rec := make(types.SubmissionRecord, len(state.Controls))
	for _, ctrl := range state.Controls {
		if strings.TrimSpace(ctrl.Name) == "" {
			continue
		}
		if ctrl.Type == TypeCheckbox {
			rec[ctrl.Name] = ctrl.Checked
			continue
		}
		rec[ctrl.Name] = ctrl.Value
	}
	return rec
}
