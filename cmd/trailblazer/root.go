package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/trailblazer/trailblazer/internal/api"
	"github.com/trailblazer/trailblazer/internal/config"
	"github.com/trailblazer/trailblazer/internal/schema"
	"github.com/trailblazer/trailblazer/internal/sheet"
)

// Version is set at build time via ldflags: -ldflags "-X main.Version=1.0.0"
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:          "trailblazer",
	Short:        "Trailblazer - game questionnaire submission service",
	RunE:         runServe,
	SilenceUsage: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the submission endpoint",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(fieldsCmd)
	rootCmd.AddCommand(initSheetCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("configuration loaded")

	// 2. Initialize logger
	slog.SetDefault(newLogger(os.Stdout, cfg.Log))
	slog.Info("logger initialized", "level", cfg.Log.Level, "format", cfg.Log.Format)

	// 3. Initialize backend
	connector, closeBackend, err := newConnector(cfg)
	if err != nil {
		return err
	}
	slog.Info("backend initialized", "backend", connector.Name())

	// 4. Initialize HTTP router
	handler := api.NewHandler(connector, schema.Default(), api.Options{
		IncludeLabels: cfg.Sheets.IncludeLabels,
		Timeout:       time.Duration(cfg.Sheets.Timeout),
		Version:       Version,
	})
	router := api.NewRouter(handler, cfg.Server.FunctionPath)
	slog.Info("router initialized", "function_path", cfg.Server.FunctionPath)

	// 5. Configure HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	}

	// 6. Start HTTP server in goroutine
	go func() {
		slog.Info("server starting", "address", addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			cancel()
		}
	}()

	// 7. Block until signal received
	<-ctx.Done()
	slog.Info("shutdown initiated")

	// 8. Graceful shutdown: drain in-flight submissions, then close the backend
	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout))
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if err := closeBackend(); err != nil {
		slog.Error("backend close error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// newConnector builds the configured backend. The returned close func
// releases any local resources and is always non-nil.
func newConnector(cfg *config.Config) (sheet.Connector, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		st, err := sheet.NewSQLiteStore(cfg.Local.Path, cfg.Sheets.SheetName)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("local sheet opened", "path", cfg.Local.Path)
		return st, st.Close, nil
	default:
		creds := sheet.Credentials{
			Email:      cfg.Sheets.ServiceAccount,
			PrivateKey: cfg.Sheets.PrivateKey,
			File:       cfg.Sheets.CredentialsFile,
		}
		slog.Info("spreadsheet configured",
			"sheet_name", cfg.Sheets.SheetName,
			"value_input_option", cfg.Sheets.ValueInputOption,
			"credentials", creds.Redacted(),
		)
		conn := sheet.NewGoogleConnector(sheet.GoogleConfig{
			Credentials:      creds,
			SpreadsheetID:    cfg.Sheets.SpreadsheetID,
			SheetName:        cfg.Sheets.SheetName,
			ValueInputOption: cfg.Sheets.ValueInputOption,
			Timeout:          time.Duration(cfg.Sheets.Timeout),
		})
		return conn, func() error { return nil }, nil
	}
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(cfg.Level)}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
