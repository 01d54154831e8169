package form

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/trailblazer/trailblazer/internal/schema"
)

// LoadAnswers reads a YAML (or JSON) document mapping field names to answers.
func LoadAnswers(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answers file: %w", err)
	}

	answers := map[string]any{}
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return nil, fmt.Errorf("parsing answers file: %w", err)
	}
	return answers, nil
}

// StateFromAnswers lays out one control per schema field, in schema order,
// filled from answers. Consent fields become checkboxes; list answers become
// multi-select controls whose value is joined with ", ". Keys outside the
// schema are dropped.
func StateFromAnswers(sc *schema.Schema, answers map[string]any) *State {
	state := &State{Controls: make([]Control, 0, sc.Len())}

	for _, f := range sc.Fields() {
		v := answers[f.Name]
		if f.Kind == schema.KindConsent {
			checked, _ := v.(bool)
			state.Controls = append(state.Controls, Control{Name: f.Name, Type: TypeCheckbox, Checked: checked})
			continue
		}
		typ := TypeTextarea
		if _, multi := v.([]any); multi {
			typ = TypeSelect
		}
		state.Controls = append(state.Controls, Control{Name: f.Name, Type: typ, Value: answerString(v)})
	}

	return state
}

func answerString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		// unquoted YAML dates
		if val.Hour() == 0 && val.Minute() == 0 && val.Second() == 0 {
			return val.Format(time.DateOnly)
		}
		return val.Format(time.RFC3339)
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s := answerString(item); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", val)
	}
}
