// Package storage persists the FinancialData aggregate as a single named
// snapshot: the whole ledger is rewritten after every mutation, never
// appended to incrementally.
package storage

import (
	"context"

	"contas/internal/core"
)

// SnapshotStore is the persistence collaborator port.
type SnapshotStore interface {
	// Load reads the snapshot. found is false when no snapshot exists yet;
	// callers then start from four empty collections.
	Load(ctx context.Context) (data core.Ledger, found bool, err error)

	// Save overwrites the snapshot with the full aggregate.
	Save(ctx context.Context, data core.Ledger) error
}
