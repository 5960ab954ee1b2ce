// Package worker reacts to ledger change events and keeps the external
// spreadsheet in sync with the stored snapshot.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"contas/internal/amqp"
	"contas/internal/core"
	"contas/internal/export"
	"contas/internal/report"
	"contas/internal/storage"
)

// ExportWorker handles ledger change events by re-summarizing the affected
// month from the stored snapshot and rewriting its spreadsheet row.
type ExportWorker struct {
	snapshots storage.SnapshotStore
	exporter  export.MonthExporter
}

func NewExportWorker(snapshots storage.SnapshotStore, exporter export.MonthExporter) *ExportWorker {
	return &ExportWorker{
		snapshots: snapshots,
		exporter:  exporter,
	}
}

// HandleLedgerEvent processes a single ledger change event. The message only
// carries the period; the ledger itself is reloaded from storage so the
// exported row always reflects the latest state, not the event that
// triggered it.
func (w *ExportWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"action", msg.Action,
		"kind", msg.Kind,
		"id", msg.ID,
		"period", msg.Period)

	period, err := core.ParsePeriod(msg.Period)
	if err != nil {
		// A malformed period never becomes valid; drop instead of requeueing.
		slog.WarnContext(ctx, "Skipping event with invalid period",
			"period", msg.Period,
			"error", err)
		return nil
	}

	ledger, found, err := w.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		slog.WarnContext(ctx, "No snapshot stored, exporting empty month",
			"period", msg.Period)
	}

	summary := report.Summarize(ledger, period)
	if err := w.exporter.ExportMonth(ctx, summary); err != nil {
		return fmt.Errorf("export month %s: %w", msg.Period, err)
	}

	slog.InfoContext(ctx, "Month report exported",
		"period", msg.Period,
		"balance", summary.Balance.String())
	return nil
}

// ExportCurrentMonth re-exports the current month from the stored snapshot.
// Run periodically as a catch-up for events lost while the worker was down.
func (w *ExportWorker) ExportCurrentMonth(ctx context.Context) error {
	period := core.CurrentPeriod(time.Now())

	ledger, found, err := w.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if !found {
		slog.DebugContext(ctx, "No snapshot stored, skipping catch-up export")
		return nil
	}

	summary := report.Summarize(ledger, period)
	if err := w.exporter.ExportMonth(ctx, summary); err != nil {
		return fmt.Errorf("export month %s: %w", period, err)
	}

	slog.InfoContext(ctx, "Catch-up export completed",
		"period", period.String(),
		"balance", summary.Balance.String())
	return nil
}
