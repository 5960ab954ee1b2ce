package ledger

import (
	"context"
	"errors"
	"testing"

	"contas/internal/cards"
	"contas/internal/core"
	"contas/internal/storage"
)

type failingStore struct{}

func (failingStore) Load(context.Context) (core.Ledger, bool, error) {
	return core.Ledger{}, false, nil
}
func (failingStore) Save(context.Context, core.Ledger) error {
	return errors.New("disk full")
}

type recordingPublisher struct {
	events []string
}

func (p *recordingPublisher) PublishLedgerEvent(_ context.Context, action, kind, id, period string) error {
	p.events = append(p.events, action+"/"+kind+"/"+period)
	return nil
}

func newTestStore() (*Store, *storage.MemoryStore) {
	snapshots := storage.NewMemoryStore()
	engine := cards.NewEngine(cards.DefaultRegistry())
	return NewStore(&SequenceGenerator{}, engine, snapshots), snapshots
}

func TestAddEarningStampsIDAndPeriod(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()

	selected := core.Period{Year: 2026, Month: 3}
	e, err := store.AddEarning(ctx, core.Earning{
		Source: "Salário",
		Amount: core.Money{Cents: 500000},
		// The date is in February, but the entry is filed under the
		// selected month: simple kinds never derive their period.
		Date: core.NewDate(2026, 2, 27),
	}, selected)
	if err != nil {
		t.Fatalf("AddEarning: %v", err)
	}
	if e.ID != "id-1" {
		t.Errorf("id = %q, want id-1", e.ID)
	}
	if e.Period != selected {
		t.Errorf("period = %v, want the selected %v", e.Period, selected)
	}

	data := store.Snapshot()
	if len(data.Earnings) != 1 || data.Earnings[0].ID != "id-1" {
		t.Fatalf("snapshot earnings = %+v", data.Earnings)
	}
}

func TestAddRejectsInvalidEntryAtomically(t *testing.T) {
	ctx := context.Background()
	store, snapshots := newTestStore()

	_, err := store.AddEarning(ctx, core.Earning{Source: "", Amount: core.Money{Cents: 100}, Date: core.NewDate(2026, 1, 1)}, core.Period{Year: 2026, Month: 1})
	if !errors.Is(err, core.ErrEmptySource) {
		t.Fatalf("got %v, want ErrEmptySource", err)
	}
	if !store.Snapshot().Empty() {
		t.Fatal("rejected add must not mutate the ledger")
	}
	if _, found, _ := snapshots.Load(ctx); found {
		t.Fatal("rejected add must not persist anything")
	}
}

func TestAddPurchaseAppendsWholeSequence(t *testing.T) {
	ctx := context.Background()
	store, snapshots := newTestStore()

	entries, err := store.AddPurchase(ctx, cards.PurchaseRequest{
		Card:         "BV Clau",
		Date:         core.NewDate(2026, 3, 25),
		Total:        core.Money{Cents: 30000},
		Description:  "Geladeira",
		Installments: 3,
	})
	if err != nil {
		t.Fatalf("AddPurchase: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	seen := map[string]bool{}
	for _, e := range entries {
		if e.ID == "" || seen[e.ID] {
			t.Errorf("ids must be fresh and unique, got %q", e.ID)
		}
		seen[e.ID] = true
	}

	persisted, found, err := snapshots.Load(ctx)
	if err != nil || !found {
		t.Fatalf("snapshot not persisted: found=%v err=%v", found, err)
	}
	if len(persisted.CreditCards) != 3 {
		t.Fatalf("persisted %d card entries, want 3", len(persisted.CreditCards))
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()
	period := core.Period{Year: 2026, Month: 3}

	a, _ := store.AddFixedExpense(ctx, core.FixedExpense{Name: "Luz", Amount: core.Money{Cents: 18000}}, period)
	b, _ := store.AddFixedExpense(ctx, core.FixedExpense{Name: "Água", Amount: core.Money{Cents: 9000}}, period)

	if err := store.Delete(ctx, core.KindFixedExpenses, a.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	data := store.Snapshot()
	if len(data.FixedExpenses) != 1 || data.FixedExpenses[0].ID != b.ID {
		t.Fatalf("remaining = %+v, want only %q", data.FixedExpenses, b.ID)
	}

	// Deleting an unknown id is a no-op, not an error.
	if err := store.Delete(ctx, core.KindFixedExpenses, "missing"); err != nil {
		t.Fatalf("delete of unknown id: %v", err)
	}
	if len(store.Snapshot().FixedExpenses) != 1 {
		t.Fatal("no-op delete changed the ledger")
	}

	if err := store.Delete(ctx, "savings", "x"); !errors.Is(err, core.ErrUnknownKind) {
		t.Fatalf("unknown kind: got %v", err)
	}
}

func TestPersistenceFailureKeepsInMemoryState(t *testing.T) {
	ctx := context.Background()
	engine := cards.NewEngine(cards.DefaultRegistry())
	store := NewStore(&SequenceGenerator{}, engine, failingStore{})

	e, err := store.AddEarning(ctx, core.Earning{
		Source: "Freela", Amount: core.Money{Cents: 80000}, Date: core.NewDate(2026, 3, 10),
	}, core.Period{Year: 2026, Month: 3})
	if err != nil {
		t.Fatalf("mutation must succeed even when persistence fails: %v", err)
	}
	data := store.Snapshot()
	if len(data.Earnings) != 1 || data.Earnings[0].ID != e.ID {
		t.Fatal("in-memory state lost after persistence failure")
	}
}

func TestEventsPublishedPerEntry(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()
	pub := &recordingPublisher{}
	store.WithEvents(pub)

	_, err := store.AddPurchase(ctx, cards.PurchaseRequest{
		Card:         "Hipercard",
		Date:         core.NewDate(2026, 12, 29),
		Total:        core.Money{Cents: 20000},
		Description:  "Presentes",
		Installments: 2,
	})
	if err != nil {
		t.Fatalf("AddPurchase: %v", err)
	}

	want := []string{
		"added/creditCards/Janeiro 2027",
		"added/creditCards/Fevereiro 2027",
	}
	if len(pub.events) != len(want) {
		t.Fatalf("events = %v, want %v", pub.events, want)
	}
	for i := range want {
		if pub.events[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, pub.events[i], want[i])
		}
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore()
	store.AddFixedExpense(ctx, core.FixedExpense{Name: "Luz", Amount: core.Money{Cents: 100}}, core.Period{Year: 2026, Month: 1})

	snap := store.Snapshot()
	snap.FixedExpenses[0].Name = "changed"
	if store.Snapshot().FixedExpenses[0].Name != "Luz" {
		t.Fatal("Snapshot leaked internal state")
	}
}
