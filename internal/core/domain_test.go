package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestEarningValidate(t *testing.T) {
	valid := Earning{
		Source: "Salário",
		Amount: Money{Cents: 500000},
		Date:   NewDate(2026, 3, 5),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid earning rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(*Earning)
		wantErr error
	}{
		{"empty source", func(e *Earning) { e.Source = "  " }, ErrEmptySource},
		{"zero amount", func(e *Earning) { e.Amount = Money{} }, ErrInvalidAmount},
		{"zero date", func(e *Earning) { e.Date = Date{} }, ErrInvalidDate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := valid
			tc.mutate(&e)
			if err := e.Validate(); !errors.Is(err, tc.wantErr) {
				t.Fatalf("got %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestFixedExpenseValidate(t *testing.T) {
	valid := FixedExpense{Name: "Luz", Amount: Money{Cents: 18000}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid fixed expense rejected: %v", err)
	}
	if err := (FixedExpense{Amount: Money{Cents: 100}}).Validate(); !errors.Is(err, ErrEmptyName) {
		t.Errorf("empty name: got %v", err)
	}
	if err := (FixedExpense{Name: "Luz"}).Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("zero amount: got %v", err)
	}
}

func TestDiverseExpenseValidate(t *testing.T) {
	valid := DiverseExpense{
		Description: "Farmácia",
		Category:    Saude,
		Amount:      Money{Cents: 4590},
		Date:        NewDate(2026, 3, 12),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid diverse expense rejected: %v", err)
	}

	bad := valid
	bad.Category = "combustível"
	if err := bad.Validate(); !errors.Is(err, ErrInvalidCategory) {
		t.Errorf("unknown category: got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindCreditCards, KindEarnings, KindFixedExpenses, KindDiverseExpenses} {
		got, err := ParseKind(string(k))
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k, got, err)
		}
	}
	if _, err := ParseKind("savings"); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("unknown kind: got %v", err)
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2026, 2, 28)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2026-02-28"` {
		t.Fatalf("marshal = %s", data)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip = %v, want %v", back, d)
	}
}

func TestLedgerClone(t *testing.T) {
	l := Ledger{
		Earnings: []Earning{{ID: "e1", Source: "Salário", Amount: Money{Cents: 100}, Date: NewDate(2026, 1, 5), Period: Period{2026, 1}}},
	}
	c := l.Clone()
	c.Earnings[0].Source = "changed"
	if l.Earnings[0].Source != "Salário" {
		t.Fatal("Clone must not share backing arrays")
	}
	if !(Ledger{}).Empty() {
		t.Error("zero ledger should be empty")
	}
	if l.Empty() {
		t.Error("non-empty ledger reported empty")
	}
}
