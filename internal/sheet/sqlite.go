package sheet

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/trailblazer/trailblazer/internal/types"
	"github.com/trailblazer/trailblazer/migrations"
)

// Compile-time interface checks
var (
	_ Connector = (*SQLiteStore)(nil)
	_ Appender  = (*SQLiteStore)(nil)
)

// SQLiteStore is an append-only local stand-in for the spreadsheet, used in
// development when no service account is available. Rows are stored as JSON
// arrays of cells in insertion order.
type SQLiteStore struct {
	db        *sql.DB
	path      string
	sheetName string
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// applies migrations.
func NewSQLiteStore(dbPath, sheetName string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection; a single connection keeps them in force
	// and serialises appends.
	db.SetMaxOpenConns(1)

	if err := enablePragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable pragmas: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath, sheetName: sheetName}, nil
}

// RunMigrations applies all pending migrations from the embedded FS.
func RunMigrations(db *sql.DB) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations.FS)

	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func enablePragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("execute %s: %w", pragma, err)
		}
	}
	return nil
}

// Name identifies the backend in logs and health output.
func (s *SQLiteStore) Name() string {
	return "sqlite"
}

// Connect returns the store itself; the local backend has no credentials.
func (s *SQLiteStore) Connect(ctx context.Context) (Appender, error) {
	return s, nil
}

// Append inserts row as the next row of the sheet.
func (s *SQLiteStore) Append(ctx context.Context, row types.Row) (*types.AppendReceipt, error) {
	cells, err := row.MarshalCells()
	if err != nil {
		return nil, &AppendError{Err: fmt.Errorf("encode cells: %w", err)}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &AppendError{Err: fmt.Errorf("begin transaction: %w", err)}
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sheet_rows (sheet, cells, width, appended_at) VALUES (?, ?, ?, ?)`,
		s.sheetName, string(cells), len(row), now.Format(time.RFC3339Nano),
	); err != nil {
		return nil, &AppendError{Err: fmt.Errorf("insert row: %w", err)}
	}

	var rowNum int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sheet_rows WHERE sheet = ?`, s.sheetName,
	).Scan(&rowNum); err != nil {
		return nil, &AppendError{Err: fmt.Errorf("count rows: %w", err)}
	}

	if err := tx.Commit(); err != nil {
		return nil, &AppendError{Err: fmt.Errorf("commit: %w", err)}
	}

	receipt := &types.AppendReceipt{
		Spreadsheet:  s.path,
		UpdatedCells: int64(len(row)),
		AppendedAt:   now,
	}
	if len(row) > 0 {
		receipt.UpdatedRange = fmt.Sprintf("'%s'!A%d:%s%d", s.sheetName, rowNum, ColumnName(len(row)), rowNum)
	}
	return receipt, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
