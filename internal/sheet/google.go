package sheet

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/trailblazer/trailblazer/internal/types"
)

// Compile-time interface checks
var (
	_ Connector = (*GoogleConnector)(nil)
	_ Appender  = (*GoogleSheets)(nil)
)

// ValueInputOption values accepted by the Sheets API.
const (
	InputUserEntered = "USER_ENTERED"
	InputRaw         = "RAW"
)

// GoogleConfig describes the target sheet and how to reach it.
type GoogleConfig struct {
	Credentials      Credentials
	SpreadsheetID    string
	SheetName        string
	ValueInputOption string
	Timeout          time.Duration

	// Endpoint and TokenURL override the Google defaults. Tests only.
	Endpoint string
	TokenURL string
}

// GoogleConnector authenticates with a service account and hands out a
// Sheets-backed Appender.
type GoogleConnector struct {
	cfg GoogleConfig
}

// NewGoogleConnector creates a connector. Nothing is fetched until Connect.
func NewGoogleConnector(cfg GoogleConfig) *GoogleConnector {
	if cfg.ValueInputOption == "" {
		cfg.ValueInputOption = InputUserEntered
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &GoogleConnector{cfg: cfg}
}

// Name identifies the backend in logs and health output.
func (g *GoogleConnector) Name() string {
	return "sheets"
}

// Connect fetches an access token for the spreadsheets scope and returns an
// Appender bound to it. Any failure up to and including the token fetch is
// an *AuthError.
func (g *GoogleConnector) Connect(ctx context.Context) (Appender, error) {
	conf, err := g.cfg.Credentials.JWTConfig(sheets.SpreadsheetsScope)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	if g.cfg.TokenURL != "" {
		conf.TokenURL = g.cfg.TokenURL
	}

	// The JWT token source ignores ctx deadlines, so the timeout is carried
	// by the HTTP client it picks up from ctx.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Timeout: g.cfg.Timeout})
	ts := conf.TokenSource(ctx)
	if _, err := ts.Token(); err != nil {
		return nil, &AuthError{Err: err}
	}

	opts := []option.ClientOption{option.WithHTTPClient(oauth2.NewClient(ctx, ts))}
	if g.cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(g.cfg.Endpoint))
	}
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, &AuthError{Err: fmt.Errorf("create sheets service: %w", err)}
	}

	return &GoogleSheets{
		values:        &sheetsValuesWrapper{values: svc.Spreadsheets.Values},
		spreadsheetID: g.cfg.SpreadsheetID,
		sheetName:     g.cfg.SheetName,
		inputOption:   g.cfg.ValueInputOption,
	}, nil
}

// valuesService defines the Sheets values call used by GoogleSheets.
// This abstraction enables testing without calling the real API.
type valuesService interface {
	Append(ctx context.Context, spreadsheetID, rng string, vr *sheets.ValueRange, inputOption string) (*sheets.AppendValuesResponse, error)
}

// sheetsValuesWrapper adapts the generated call builder to valuesService.
type sheetsValuesWrapper struct {
	values *sheets.SpreadsheetsValuesService
}

func (w *sheetsValuesWrapper) Append(ctx context.Context, spreadsheetID, rng string, vr *sheets.ValueRange, inputOption string) (*sheets.AppendValuesResponse, error) {
	return w.values.Append(spreadsheetID, rng, vr).
		ValueInputOption(inputOption).
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
}

// GoogleSheets appends rows to one tab of a Google spreadsheet.
type GoogleSheets struct {
	values        valuesService
	spreadsheetID string
	sheetName     string
	inputOption   string
}

// Append writes row after the last row of the sheet.
func (s *GoogleSheets) Append(ctx context.Context, row types.Row) (*types.AppendReceipt, error) {
	if s.inputOption == InputUserEntered {
		row = quoteFormulas(row)
	}
	vr := &sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]interface{}{row.Values()},
	}

	resp, err := s.values.Append(ctx, s.spreadsheetID, s.sheetName, vr, s.inputOption)
	if err != nil {
		ae := &AppendError{Err: err}
		var gerr *googleapi.Error
		if errors.As(err, &gerr) {
			ae.Status = gerr.Code
		}
		return nil, ae
	}

	receipt := &types.AppendReceipt{
		Spreadsheet: s.spreadsheetID,
		AppendedAt:  time.Now().UTC(),
	}
	if resp != nil && resp.Updates != nil {
		receipt.UpdatedRange = resp.Updates.UpdatedRange
		receipt.UpdatedCells = resp.Updates.UpdatedCells
	}
	return receipt, nil
}

// quoteFormulas prefixes cells that USER_ENTERED would parse as a formula
// with an apostrophe, which the sheet stores as plain text.
func quoteFormulas(row types.Row) types.Row {
	out := make(types.Row, len(row))
	for i, c := range row {
		if c != "" && strings.ContainsRune("=+-@", rune(c[0])) {
			c = "'" + c
		}
		out[i] = c
	}
	return out
}
