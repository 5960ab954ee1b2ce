package report

import (
	"reflect"
	"testing"

	"contas/internal/core"
)

func fixtureLedger() core.Ledger {
	march := core.Period{Year: 2026, Month: 3}
	april := core.Period{Year: 2026, Month: 4}
	return core.Ledger{
		Earnings: []core.Earning{
			{ID: "e1", Source: "Salário", Amount: core.Money{Cents: 500000}, Date: core.NewDate(2026, 3, 5), Period: march},
			{ID: "e2", Source: "Freela", Amount: core.Money{Cents: 120000}, Date: core.NewDate(2026, 3, 18), Period: march},
			{ID: "e3", Source: "Salário", Amount: core.Money{Cents: 500000}, Date: core.NewDate(2026, 4, 5), Period: april},
		},
		FixedExpenses: []core.FixedExpense{
			{ID: "f1", Name: "Luz", Amount: core.Money{Cents: 18000}, Period: march},
			{ID: "f2", Name: "Internet Apto", Amount: core.Money{Cents: 11000}, Period: march},
		},
		DiverseExpenses: []core.DiverseExpense{
			{ID: "d1", Description: "Farmácia", Category: core.Saude, Amount: core.Money{Cents: 4590}, Date: core.NewDate(2026, 3, 12), Period: march},
		},
		CreditCards: []core.CardInstallment{
			{ID: "c1", Card: "BV Clau", Amount: core.Money{Cents: 10000}, Date: core.NewDate(2026, 2, 25), Description: "Geladeira (2/3)", Installment: 2, Installments: 3, Period: march},
			{ID: "c2", Card: "Hipercard", Amount: core.Money{Cents: 7500}, Date: core.NewDate(2026, 3, 2), Description: "Mercado", Installment: 1, Installments: 1, Period: march},
			{ID: "c3", Card: "BV Clau", Amount: core.Money{Cents: 10000}, Date: core.NewDate(2026, 2, 25), Description: "Geladeira (3/3)", Installment: 3, Installments: 3, Period: april},
		},
	}
}

func TestSummarizeTotals(t *testing.T) {
	r := Summarize(fixtureLedger(), core.Period{Year: 2026, Month: 3})

	if r.Earnings.Cents != 620000 {
		t.Errorf("earnings = %d, want 620000", r.Earnings.Cents)
	}
	if r.Fixed.Cents != 29000 {
		t.Errorf("fixed = %d, want 29000", r.Fixed.Cents)
	}
	if r.Diverse.Cents != 4590 {
		t.Errorf("diverse = %d, want 4590", r.Diverse.Cents)
	}
	if r.Cards.Cents != 17500 {
		t.Errorf("cards = %d, want 17500", r.Cards.Cents)
	}

	// The identities that must hold for any partition of the ledger.
	if r.Expenses != r.Fixed.Add(r.Diverse).Add(r.Cards) {
		t.Errorf("expenses = %d, want fixed+diverse+cards", r.Expenses.Cents)
	}
	if r.Balance != r.Earnings.Sub(r.Expenses) {
		t.Errorf("balance = %d, want earnings-expenses", r.Balance.Cents)
	}
}

func TestSummarizeExcludesZeroCategories(t *testing.T) {
	data := core.Ledger{
		FixedExpenses: []core.FixedExpense{
			{ID: "f1", Name: "Luz", Amount: core.Money{Cents: 18000}, Period: core.Period{Year: 2026, Month: 3}},
		},
	}
	r := Summarize(data, core.Period{Year: 2026, Month: 3})

	want := []core.CategoryAmount{{Name: "Contas Fixas", Amount: core.Money{Cents: 18000}}}
	if !reflect.DeepEqual(r.ByCategory, want) {
		t.Fatalf("ByCategory = %+v, want only the non-zero group %+v", r.ByCategory, want)
	}
}

func TestSummarizePerCardFirstSeenOrder(t *testing.T) {
	r := Summarize(fixtureLedger(), core.Period{Year: 2026, Month: 3})

	want := []core.CardAmount{
		{Card: "BV Clau", Amount: core.Money{Cents: 10000}},
		{Card: "Hipercard", Amount: core.Money{Cents: 7500}},
	}
	if !reflect.DeepEqual(r.ByCard, want) {
		t.Fatalf("ByCard = %+v, want %+v", r.ByCard, want)
	}
}

func TestSummarizeEmptyMonth(t *testing.T) {
	r := Summarize(fixtureLedger(), core.Period{Year: 2031, Month: 1})

	if r.Earnings.Cents != 0 || r.Expenses.Cents != 0 || r.Balance.Cents != 0 {
		t.Errorf("empty month totals: %+v", r)
	}
	if len(r.ByCategory) != 0 || len(r.ByCard) != 0 {
		t.Errorf("empty month breakdowns: %+v %+v", r.ByCategory, r.ByCard)
	}
}

func TestFilterLedgerExactMatch(t *testing.T) {
	filtered := FilterLedger(fixtureLedger(), core.Period{Year: 2026, Month: 4})
	if len(filtered.Earnings) != 1 || filtered.Earnings[0].ID != "e3" {
		t.Errorf("earnings = %+v", filtered.Earnings)
	}
	if len(filtered.CreditCards) != 1 || filtered.CreditCards[0].ID != "c3" {
		t.Errorf("creditCards = %+v", filtered.CreditCards)
	}
	if len(filtered.FixedExpenses) != 0 || len(filtered.DiverseExpenses) != 0 {
		t.Error("april should have no fixed or diverse expenses")
	}
}

func TestPeriodsChronological(t *testing.T) {
	data := fixtureLedger()
	data.FixedExpenses = append(data.FixedExpenses, core.FixedExpense{
		ID: "f9", Name: "IPTU (Março)", Amount: core.Money{Cents: 30000}, Period: core.Period{Year: 2025, Month: 12},
	})

	got := Periods(data)
	want := []core.Period{{Year: 2025, Month: 12}, {Year: 2026, Month: 3}, {Year: 2026, Month: 4}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Periods = %v, want %v", got, want)
	}
}
