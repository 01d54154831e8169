package form

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/trailblazer/trailblazer/internal/schema"
	"github.com/trailblazer/trailblazer/internal/types"
	"github.com/trailblazer/trailblazer/internal/validation"
)

// mockSubmitter records calls and returns a canned result.
type mockSubmitter struct {
	calls   int
	lastRec types.SubmissionRecord
	ack     *types.Ack
	err     error
}

func (m *mockSubmitter) Submit(ctx context.Context, rec types.SubmissionRecord) (*types.Ack, error) {
	m.calls++
	m.lastRec = rec
	if m.err != nil {
		return nil, m.err
	}
	return m.ack, nil
}

func TestSubmit_InvalidDoesNotCallSubmitter(t *testing.T) {
	sub := &mockSubmitter{}
	state := validState()
	state.Set(schema.FieldGameTitle, "")

	out := New(schema.Default(), sub, state).Submit(context.Background())

	if out.Kind != OutcomeInvalid {
		t.Errorf("Kind = %q, want %q", out.Kind, OutcomeInvalid)
	}
	if sub.calls != 0 {
		t.Errorf("submitter called %d times, want 0", sub.calls)
	}
	if len(out.Errors) != 1 || out.Errors[0].Code != validation.CodeMissingField {
		t.Errorf("Errors = %v, want MissingField(gameTitle)", out.Errors)
	}
	if out.Message != MessageInvalid {
		t.Errorf("Message = %q, want %q", out.Message, MessageInvalid)
	}
}

func TestSubmit_SuccessResetsForm(t *testing.T) {
	sub := &mockSubmitter{ack: &types.Ack{Message: "Form submission successful!"}}
	f := New(schema.Default(), sub, validState())

	out := f.Submit(context.Background())

	if out.Kind != OutcomeSubmitted {
		t.Fatalf("Kind = %q, want %q (err=%v)", out.Kind, OutcomeSubmitted, out.Err)
	}
	if sub.calls != 1 {
		t.Errorf("submitter called %d times, want 1", sub.calls)
	}
	if sub.lastRec.String(schema.FieldGameTitle) != "Nova" {
		t.Errorf("sent gameTitle = %q, want Nova", sub.lastRec.String(schema.FieldGameTitle))
	}
	if !sub.lastRec.Bool(schema.FieldDataUsage) {
		t.Error("sent dataUsage = false, want true")
	}
	if id := sub.lastRec.String(schema.FieldSubmissionID); validation.ValidateULID("id", id) != nil {
		t.Errorf("sent submissionId = %q, want a ULID", id)
	}
	if c, _ := f.State().Control(schema.FieldGameTitle); c.Value != "" {
		t.Errorf("gameTitle after success = %q, want reset", c.Value)
	}
}

func TestSubmit_FailureKeepsFormAndSubmissionID(t *testing.T) {
	sub := &mockSubmitter{err: errors.New("unreachable")}
	f := New(schema.Default(), sub, validState())

	first := f.Submit(context.Background())
	if first.Kind != OutcomeFailed {
		t.Fatalf("Kind = %q, want %q", first.Kind, OutcomeFailed)
	}
	if first.Message != MessageFailed {
		t.Errorf("Message = %q, want %q", first.Message, MessageFailed)
	}
	if c, _ := f.State().Control(schema.FieldGameTitle); c.Value != "Nova" {
		t.Errorf("gameTitle after failure = %q, want Nova", c.Value)
	}
	firstID := sub.lastRec.String(schema.FieldSubmissionID)

	f.Submit(context.Background())
	if sub.calls != 2 {
		t.Fatalf("submitter called %d times, want 2", sub.calls)
	}
	if got := sub.lastRec.String(schema.FieldSubmissionID); got != firstID {
		t.Errorf("retry submissionId = %q, want reused %q", got, firstID)
	}
}

func TestSubmit_MalformedSubmissionIDReplaced(t *testing.T) {
	sub := &mockSubmitter{ack: &types.Ack{Message: "Form submission successful!"}}
	state := validState()
	state.Set(schema.FieldSubmissionID, "not-a-ulid")

	out := New(schema.Default(), sub, state).Submit(context.Background())

	if out.Kind != OutcomeSubmitted {
		t.Fatalf("Kind = %q, want %q (errors=%v)", out.Kind, OutcomeSubmitted, out.Errors)
	}
	id := sub.lastRec.String(schema.FieldSubmissionID)
	if id == "not-a-ulid" || validation.ValidateULID("id", id) != nil {
		t.Errorf("sent submissionId = %q, want a fresh ULID", id)
	}
}

func TestSubmit_ValidSubmissionIDKept(t *testing.T) {
	const id = "01HZX3B5K7M9Q2R4T6V8W0Y1Z3"
	sub := &mockSubmitter{ack: &types.Ack{}}
	state := validState()
	state.Set(schema.FieldSubmissionID, id)

	New(schema.Default(), sub, state).Submit(context.Background())

	if got := sub.lastRec.String(schema.FieldSubmissionID); got != id {
		t.Errorf("sent submissionId = %q, want %q", got, id)
	}
}

func TestStateFromAnswers_SchemaOrder(t *testing.T) {
	state := StateFromAnswers(schema.Default(), map[string]any{
		"platforms": []any{"PC", "PS5"},
		"dataUsage": true,
		"unknown":   "dropped",
	})

	if len(state.Controls) != schema.Default().Len() {
		t.Fatalf("len(Controls) = %d, want %d", len(state.Controls), schema.Default().Len())
	}
	for i, name := range schema.Default().Names() {
		if state.Controls[i].Name != name {
			t.Errorf("Controls[%d].Name = %q, want %q", i, state.Controls[i].Name, name)
		}
	}
	if c, _ := state.Control("platforms"); c.Value != "PC, PS5" || c.Type != TypeSelect {
		t.Errorf("platforms = %+v, want select with %q", c, "PC, PS5")
	}
	if c, _ := state.Control(schema.FieldGameTitle); c.Type != TypeTextarea {
		t.Errorf("gameTitle type = %q, want %q", c.Type, TypeTextarea)
	}
	if c, _ := state.Control(schema.FieldDataUsage); c.Type != TypeCheckbox || !c.Checked {
		t.Errorf("dataUsage = %+v, want checked checkbox", c)
	}
	if _, ok := state.Control("unknown"); ok {
		t.Error("unknown key should not become a control")
	}
}

func TestLoadAnswers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.yaml")
	content := "gameTitle: Nova\ngenre: RPG\nreleaseDate: 2021-03-04\ndataUsage: true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write answers: %v", err)
	}

	answers, err := LoadAnswers(path)
	if err != nil {
		t.Fatalf("LoadAnswers error = %v", err)
	}

	state := StateFromAnswers(schema.Default(), answers)
	if c, _ := state.Control("releaseDate"); c.Value != "2021-03-04" {
		t.Errorf("releaseDate = %q, want 2021-03-04", c.Value)
	}
	if errs := Validate(schema.Default(), state); len(errs) != 0 {
		t.Errorf("Validate(loaded) = %v, want none", errs)
	}
}

func TestLoadAnswers_MissingFile(t *testing.T) {
	if _, err := LoadAnswers(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadAnswers(missing) = nil error, want error")
	}
}
