package main

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/trailblazer/trailblazer/internal/form"
	"github.com/trailblazer/trailblazer/internal/schema"
	"github.com/trailblazer/trailblazer/internal/transport"
)

var (
	submitURL     string
	submitAnswers string
	submitAgree   bool
	submitTimeout time.Duration
)

// errNotSubmitted is returned after the outcome has already been printed.
var errNotSubmitted = errors.New("form not submitted")

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Fill the questionnaire from an answers file and submit it",
	Long: `Reads answers (YAML or JSON, keyed by field name), validates them against
the questionnaire and posts them to the submission endpoint. Run
"trailblazer fields" to list the field names.`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringVar(&submitURL, "url", "http://localhost:8080",
		"Base URL of the submission endpoint")
	submitCmd.Flags().StringVarP(&submitAnswers, "answers", "f", "",
		"Answers file (YAML or JSON)")
	submitCmd.Flags().BoolVar(&submitAgree, "agree", false,
		"Consent to storing the submitted data")
	submitCmd.Flags().DurationVar(&submitTimeout, "timeout", 30*time.Second,
		"Request timeout")
	_ = submitCmd.MarkFlagRequired("answers")
}

func runSubmit(cmd *cobra.Command, args []string) error {
	sc := schema.Default()

	answers, err := form.LoadAnswers(submitAnswers)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	for _, key := range sortedKeys(answers) {
		if _, ok := sc.Lookup(key); !ok {
			fmt.Fprintf(errOut, "ignoring unknown field %q (see \"trailblazer fields\")\n", key)
		}
	}

	state := form.StateFromAnswers(sc, answers)
	if submitAgree {
		state.Check(schema.FieldDataUsage, true)
	}

	client := transport.NewClient(submitURL, submitTimeout)
	outcome := form.New(sc, client, state).Submit(cmd.Context())

	switch outcome.Kind {
	case form.OutcomeInvalid:
		fmt.Fprintln(errOut, outcome.Message)
		for _, ve := range outcome.Errors {
			fmt.Fprintf(errOut, "  - %s: %s\n", ve.Field, ve.Message)
		}
		return errNotSubmitted
	case form.OutcomeFailed:
		fmt.Fprintln(errOut, outcome.Message)
		if transport.IsTransportError(outcome.Err) {
			fmt.Fprintf(errOut, "  %s: %v\n", client.Endpoint(), outcome.Err)
		} else {
			fmt.Fprintf(errOut, "  %v\n", outcome.Err)
		}
		return errNotSubmitted
	}

	fmt.Fprintln(out, outcome.Message)
	if outcome.Ack != nil && outcome.Ack.SubmissionID != "" {
		fmt.Fprintf(out, "Submission ID: %s\n", outcome.Ack.SubmissionID)
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
