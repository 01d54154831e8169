package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trailblazer/trailblazer/internal/schema"
)

var (
	fieldsJSONOutput bool
	fieldsNamesOnly  bool
)

var fieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List the questionnaire fields in column order",
	Args:  cobra.NoArgs,
	RunE:  runFields,
}

func init() {
	fieldsCmd.Flags().BoolVar(&fieldsJSONOutput, "json", false, "Output in JSON format")
	fieldsCmd.Flags().BoolVar(&fieldsNamesOnly, "names", false, "Print field names only, one per line")
}

func runFields(cmd *cobra.Command, args []string) error {
	sc := schema.Default()

	if fieldsJSONOutput {
		return printJSON(cmd.OutOrStdout(), map[string]any{
			"fields": sc.Fields(),
			"total":  sc.Len(),
		})
	}

	if fieldsNamesOnly {
		for _, name := range sc.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}

	w := newTabWriter(cmd.OutOrStdout())
	fmt.Fprintln(w, "COLUMN\tNAME\tLABEL\tREQUIRED\tKIND")
	for i, f := range sc.Fields() {
		required := ""
		if f.Required {
			required = "yes"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, f.Name, f.Label, required, f.Kind)
	}
	return w.Flush()
}

// printJSON marshals v to JSON and writes to the given writer.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// newTabWriter returns a configured tabwriter for aligned columns.
func newTabWriter(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}
