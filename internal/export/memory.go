package export

import (
	"context"
	"sync"

	"contas/internal/core"
)

// MemoryExporter keeps exported reports in memory, keyed by period label.
// Used in tests and when no spreadsheet is configured.
type MemoryExporter struct {
	mu      sync.Mutex
	reports map[string]core.MonthReport
}

var _ MonthExporter = (*MemoryExporter)(nil)

func NewMemoryExporter() *MemoryExporter {
	return &MemoryExporter{reports: make(map[string]core.MonthReport)}
}

func (m *MemoryExporter) ExportMonth(_ context.Context, r core.MonthReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports[r.Period.String()] = r
	return nil
}

// Report returns the last exported report for the period label.
func (m *MemoryExporter) Report(period string) (core.MonthReport, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.reports[period]
	return r, ok
}
