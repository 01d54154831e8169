package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trailblazer/trailblazer/internal/config"
	"github.com/trailblazer/trailblazer/internal/schema"
)

var initSheetCmd = &cobra.Command{
	Use:   "init-sheet",
	Short: "Append the header row of field labels to the configured sheet",
	Long: `Appends one row holding every field label in column order. Run it once
against an empty sheet; running it again appends another header row.`,
	Args: cobra.NoArgs,
	RunE: runInitSheet,
}

func runInitSheet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	connector, closeBackend, err := newConnector(cfg)
	if err != nil {
		return err
	}
	defer closeBackend()

	ctx := cmd.Context()
	appender, err := connector.Connect(ctx)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", connector.Name(), err)
	}

	receipt, err := appender.Append(ctx, schema.Default().Labels())
	if err != nil {
		return fmt.Errorf("append header row: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Header row written to %s (%d cells)\n", receipt.UpdatedRange, receipt.UpdatedCells)
	return nil
}
