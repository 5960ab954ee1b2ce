// Package ledger owns the in-memory FinancialData aggregate and every
// mutation of it: adds stamp fresh ids, deletes remove exactly one entry,
// and each mutation rewrites the whole persisted snapshot.
package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"contas/internal/cards"
	"contas/internal/core"
	"contas/internal/storage"
)

// EventPublisher notifies downstream consumers (the export worker) that a
// reference month changed. Satisfied by the AMQP client; nil disables it.
type EventPublisher interface {
	PublishLedgerEvent(ctx context.Context, action, kind, id, period string) error
}

// Store is the ledger store. The mutex serializes mutations coming from
// concurrent HTTP handlers; readers get deep copies.
type Store struct {
	mu        sync.Mutex
	data      core.Ledger
	ids       IDGenerator
	engine    *cards.Engine
	snapshots storage.SnapshotStore
	events    EventPublisher
}

func NewStore(ids IDGenerator, engine *cards.Engine, snapshots storage.SnapshotStore) *Store {
	return &Store{ids: ids, engine: engine, snapshots: snapshots}
}

// WithEvents attaches an event publisher. Publish failures are logged and
// never fail a mutation.
func (s *Store) WithEvents(events EventPublisher) *Store {
	s.events = events
	return s
}

// Load reads the persisted snapshot, or starts from four empty collections
// when none exists yet.
func (s *Store) Load(ctx context.Context) error {
	data, found, err := s.snapshots.Load(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	if found {
		slog.InfoContext(ctx, "Ledger loaded",
			"card_entries", len(data.CreditCards),
			"earnings", len(data.Earnings),
			"fixed_expenses", len(data.FixedExpenses),
			"diverse_expenses", len(data.DiverseExpenses))
	} else {
		slog.InfoContext(ctx, "No ledger snapshot found, starting empty")
	}
	return nil
}

// Snapshot returns a deep copy of the aggregate for readers.
func (s *Store) Snapshot() core.Ledger {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Clone()
}

// AddEarning validates and appends an earning. The entry is stamped with a
// fresh id and with the caller's currently selected reporting period — the
// period is not derived from the earning's own date.
func (s *Store) AddEarning(ctx context.Context, e core.Earning, period core.Period) (core.Earning, error) {
	if err := e.Validate(); err != nil {
		return core.Earning{}, err
	}
	if err := period.Validate(); err != nil {
		return core.Earning{}, err
	}

	s.mu.Lock()
	e.ID = s.ids.NewID()
	e.Period = period
	s.data.Earnings = append(s.data.Earnings, e)
	s.mu.Unlock()

	s.afterMutation(ctx, ActionAdded, core.KindEarnings, e.ID, period)
	return e, nil
}

// AddFixedExpense behaves like AddEarning for the fixed-expense collection.
func (s *Store) AddFixedExpense(ctx context.Context, e core.FixedExpense, period core.Period) (core.FixedExpense, error) {
	if err := e.Validate(); err != nil {
		return core.FixedExpense{}, err
	}
	if err := period.Validate(); err != nil {
		return core.FixedExpense{}, err
	}

	s.mu.Lock()
	e.ID = s.ids.NewID()
	e.Period = period
	s.data.FixedExpenses = append(s.data.FixedExpenses, e)
	s.mu.Unlock()

	s.afterMutation(ctx, ActionAdded, core.KindFixedExpenses, e.ID, period)
	return e, nil
}

// AddDiverseExpense behaves like AddEarning for the diverse-expense
// collection. Note the deliberate asymmetry with card purchases: the
// stamped period is the selected one, even when the expense date falls in
// a different month.
func (s *Store) AddDiverseExpense(ctx context.Context, e core.DiverseExpense, period core.Period) (core.DiverseExpense, error) {
	if err := e.Validate(); err != nil {
		return core.DiverseExpense{}, err
	}
	if err := period.Validate(); err != nil {
		return core.DiverseExpense{}, err
	}

	s.mu.Lock()
	e.ID = s.ids.NewID()
	e.Period = period
	s.data.DiverseExpenses = append(s.data.DiverseExpenses, e)
	s.mu.Unlock()

	s.afterMutation(ctx, ActionAdded, core.KindDiverseExpenses, e.ID, period)
	return e, nil
}

// AddPurchase explodes a card purchase into installments and appends the
// whole sequence. Validation failures reject the add atomically: either
// every installment lands or none does. Installment periods are derived
// from the purchase date and the card's closing day, never from a selected
// period.
func (s *Store) AddPurchase(ctx context.Context, req cards.PurchaseRequest) ([]core.CardInstallment, error) {
	entries, err := s.engine.Explode(req)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range entries {
		entries[i].ID = s.ids.NewID()
	}
	s.data.CreditCards = append(s.data.CreditCards, entries...)
	s.mu.Unlock()

	for _, e := range entries {
		s.afterMutation(ctx, ActionAdded, core.KindCreditCards, e.ID, e.Period)
	}
	return entries, nil
}

// Delete removes the entry with the given id from the named collection.
// A missing id is a no-op, not an error.
func (s *Store) Delete(ctx context.Context, kind core.Kind, id string) error {
	s.mu.Lock()
	var removed core.Period
	found := false
	switch kind {
	case core.KindCreditCards:
		s.data.CreditCards, removed, found = deleteByID(s.data.CreditCards, id)
	case core.KindEarnings:
		s.data.Earnings, removed, found = deleteByID(s.data.Earnings, id)
	case core.KindFixedExpenses:
		s.data.FixedExpenses, removed, found = deleteByID(s.data.FixedExpenses, id)
	case core.KindDiverseExpenses:
		s.data.DiverseExpenses, removed, found = deleteByID(s.data.DiverseExpenses, id)
	default:
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", core.ErrUnknownKind, string(kind))
	}
	s.mu.Unlock()

	if !found {
		slog.WarnContext(ctx, "Delete of unknown entry ignored", "kind", string(kind), "id", id)
		return nil
	}

	s.afterMutation(ctx, ActionDeleted, kind, id, removed)
	return nil
}

const (
	ActionAdded   = "added"
	ActionDeleted = "deleted"
)

// afterMutation persists the whole snapshot and emits the change event.
// Both are fire-and-forget relative to in-memory state: the mutation has
// already happened and stays visible to subsequent reads.
func (s *Store) afterMutation(ctx context.Context, action string, kind core.Kind, id string, period core.Period) {
	if err := s.snapshots.Save(ctx, s.Snapshot()); err != nil {
		slog.ErrorContext(ctx, "Snapshot save failed, in-memory state kept",
			"error", err, "action", action, "kind", string(kind), "id", id)
	}
	if s.events != nil {
		if err := s.events.PublishLedgerEvent(ctx, action, string(kind), id, period.String()); err != nil {
			slog.ErrorContext(ctx, "Ledger event publish failed",
				"error", err, "action", action, "kind", string(kind), "id", id)
		}
	}
}

func deleteByID[E core.Entry](entries []E, id string) ([]E, core.Period, bool) {
	for i, e := range entries {
		if e.EntryID() == id {
			period := e.RefPeriod()
			return append(entries[:i:i], entries[i+1:]...), period, true
		}
	}
	return entries, core.Period{}, false
}
