package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"contas/internal/core"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// SheetsClient mirrors month reports into a Google Sheets spreadsheet.
// Each year gets its own sheet and each month owns a fixed row inside it,
// so rewriting a month after every ledger change is idempotent.
type SheetsClient struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetBase     string
}

var _ MonthExporter = (*SheetsClient)(nil)

// NewSheetsFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Auth: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_SHEET_NAME, the base sheet name (default "Resumo");
// the year is appended, e.g. "Resumo 2026".
func NewSheetsFromEnv(ctx context.Context) (*SheetsClient, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetBase := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetBase == "" {
		sheetBase = "Resumo"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &SheetsClient{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetBase:     sheetBase,
	}, nil
}

// newSheetsService initializes a Sheets service using service account
// credentials from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE,
// or GOOGLE_APPLICATION_CREDENTIALS.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return svc, nil
}

// ExportMonth rewrites the report's row in the year sheet. Row 1 is the
// header; month m lives on row m+1.
func (c *SheetsClient) ExportMonth(ctx context.Context, r core.MonthReport) error {
	sheet := fmt.Sprintf("%s %d", c.sheetBase, r.Period.Year)

	if err := c.ensureHeader(ctx, sheet); err != nil {
		return err
	}

	row := r.Period.Month + 1
	rng := fmt.Sprintf("%s!A%d:G%d", sheet, row, row)
	values := &gsheet.ValueRange{
		Values: [][]any{{
			r.Period.String(),
			r.Earnings.String(),
			r.Fixed.String(),
			r.Diverse.String(),
			r.Cards.String(),
			r.Expenses.String(),
			r.Balance.String(),
		}},
	}

	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, values).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("update month row %s: %w", rng, err)
	}

	slog.InfoContext(ctx, "Exported month report",
		"sheet", sheet,
		"period", r.Period.String(),
		"balance", r.Balance.String())
	return nil
}

// ensureHeader writes the header row when A1 is empty.
func (c *SheetsClient) ensureHeader(ctx context.Context, sheet string) error {
	rng := fmt.Sprintf("%s!A1:G1", sheet)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header %s: %w", rng, err)
	}
	if len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}

	header := &gsheet.ValueRange{
		Values: [][]any{{
			"Mês", "Ganhos", "Contas Fixas", "Diversos", "Cartões", "Gastos", "Saldo",
		}},
	}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, header).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write header %s: %w", rng, err)
	}
	return nil
}
