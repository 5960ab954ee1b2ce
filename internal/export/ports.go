// Package export publishes month reports to an external spreadsheet so the
// ledger stays mirrored in Google Sheets.
package export

import (
	"context"

	"contas/internal/core"
)

// MonthExporter writes one month report to the external sheet. Rewriting
// the same month is idempotent: each month owns a fixed row.
type MonthExporter interface {
	ExportMonth(ctx context.Context, r core.MonthReport) error
}
