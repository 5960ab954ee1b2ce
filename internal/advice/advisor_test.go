package advice

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"contas/internal/core"
)

type fakeCompleter struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	reply   string
	err     error
	block   chan struct{} // when set, Complete waits until closed
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, prompt)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.reply, f.err
}

func testLedger() core.Ledger {
	march := core.Period{Year: 2026, Month: 3}
	april := core.Period{Year: 2026, Month: 4}
	return core.Ledger{
		Earnings: []core.Earning{
			{ID: "e1", Source: "Salário", Amount: core.Money{Cents: 500000}, Date: core.NewDate(2026, 3, 5), Period: march},
			{ID: "e2", Source: "Décimo", Amount: core.Money{Cents: 250000}, Date: core.NewDate(2026, 4, 5), Period: april},
		},
		FixedExpenses: []core.FixedExpense{
			{ID: "f1", Name: "Luz", Amount: core.Money{Cents: 18000}, Period: march},
		},
	}
}

func TestAdviseReturnsCompletion(t *testing.T) {
	f := &fakeCompleter{reply: "Mês equilibrado."}
	a := NewAdvisor(f)

	got := a.Advise(context.Background(), testLedger(), core.Period{Year: 2026, Month: 3})
	if got != "Mês equilibrado." {
		t.Fatalf("Advise = %q", got)
	}
	if f.calls != 1 {
		t.Fatalf("calls = %d, want 1", f.calls)
	}
}

func TestAdvisePromptContainsOnlyTheMonth(t *testing.T) {
	f := &fakeCompleter{reply: "ok"}
	a := NewAdvisor(f)
	a.Advise(context.Background(), testLedger(), core.Period{Year: 2026, Month: 3})

	prompt := f.prompts[0]
	if !strings.Contains(prompt, "Março 2026") {
		t.Error("prompt missing the reference month label")
	}
	if !strings.Contains(prompt, "Salário") || !strings.Contains(prompt, "Luz") {
		t.Error("prompt missing the month's entries")
	}
	if strings.Contains(prompt, "Décimo") {
		t.Error("prompt leaked an entry from another month")
	}
	if strings.Contains(prompt, "null") {
		t.Error("empty collections should render as [], not null")
	}
}

func TestAdviseFallbackOnFailure(t *testing.T) {
	f := &fakeCompleter{err: errors.New("quota exceeded")}
	a := NewAdvisor(f)

	got := a.Advise(context.Background(), testLedger(), core.Period{Year: 2026, Month: 3})
	if got != Fallback {
		t.Fatalf("Advise = %q, want the fallback", got)
	}
}

func TestAdviseFallbackOnEmptyReply(t *testing.T) {
	f := &fakeCompleter{reply: "   "}
	a := NewAdvisor(f)
	if got := a.Advise(context.Background(), testLedger(), core.Period{Year: 2026, Month: 3}); got != Fallback {
		t.Fatalf("Advise = %q, want the fallback", got)
	}
}

func TestAdviseCollapsesOverlappingCalls(t *testing.T) {
	f := &fakeCompleter{reply: "ok", block: make(chan struct{})}
	a := NewAdvisor(f)
	period := core.Period{Year: 2026, Month: 3}
	data := testLedger()

	var wg sync.WaitGroup
	results := make([]string, 3)
	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0] = a.Advise(context.Background(), data, period)
	}()

	// Wait until the first call is in flight.
	for {
		f.mu.Lock()
		started := f.calls >= 1
		f.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	// Joiners must share the in-flight request instead of starting new ones.
	for i := 1; i < 3; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = a.Advise(context.Background(), data, period)
		}(i)
	}
	time.Sleep(50 * time.Millisecond)
	close(f.block)
	wg.Wait()

	if f.calls != 1 {
		t.Fatalf("calls = %d, want overlapping requests collapsed to 1", f.calls)
	}
	for i, r := range results {
		if r != "ok" {
			t.Errorf("result %d = %q", i, r)
		}
	}
}
