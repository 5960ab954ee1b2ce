// Package report aggregates ledger entries by reference month.
package report

import (
	"sort"

	"contas/internal/core"
)

// filterByPeriod keeps the entries filed under p, preserving order.
// Matching is exact Period equality; no normalization.
func filterByPeriod[E core.Entry](entries []E, p core.Period) []E {
	var out []E
	for _, e := range entries {
		if e.RefPeriod() == p {
			out = append(out, e)
		}
	}
	return out
}

func sum[E core.Entry](entries []E) core.Money {
	var total core.Money
	for _, e := range entries {
		total = total.Add(e.EntryAmount())
	}
	return total
}

// FilterLedger returns the sub-ledger of one reference month.
func FilterLedger(data core.Ledger, p core.Period) core.Ledger {
	return core.Ledger{
		CreditCards:     filterByPeriod(data.CreditCards, p),
		Earnings:        filterByPeriod(data.Earnings, p),
		FixedExpenses:   filterByPeriod(data.FixedExpenses, p),
		DiverseExpenses: filterByPeriod(data.DiverseExpenses, p),
	}
}

// Summarize computes the month report for one reference month. An empty
// month yields zero totals and empty breakdowns; there is no error path.
func Summarize(data core.Ledger, p core.Period) core.MonthReport {
	filtered := FilterLedger(data, p)

	r := core.MonthReport{
		Period:   p,
		Earnings: sum(filtered.Earnings),
		Fixed:    sum(filtered.FixedExpenses),
		Diverse:  sum(filtered.DiverseExpenses),
		Cards:    sum(filtered.CreditCards),
	}
	r.Expenses = r.Fixed.Add(r.Diverse).Add(r.Cards)
	r.Balance = r.Earnings.Sub(r.Expenses)

	// Zero-valued groups are excluded from the breakdown, not zero-rendered.
	for _, g := range []core.CategoryAmount{
		{Name: "Contas Fixas", Amount: r.Fixed},
		{Name: "Diversos", Amount: r.Diverse},
		{Name: "Cartões", Amount: r.Cards},
	} {
		if g.Amount.Cents > 0 {
			r.ByCategory = append(r.ByCategory, g)
		}
	}

	// Per-card totals in first-seen order of the filtered sequence.
	index := map[string]int{}
	for _, e := range filtered.CreditCards {
		i, ok := index[e.Card]
		if !ok {
			i = len(r.ByCard)
			index[e.Card] = i
			r.ByCard = append(r.ByCard, core.CardAmount{Card: e.Card})
		}
		r.ByCard[i].Amount = r.ByCard[i].Amount.Add(e.Amount)
	}

	return r
}

// Periods lists the distinct reference months present anywhere in the
// ledger, in chronological order.
func Periods(data core.Ledger) []core.Period {
	seen := map[core.Period]struct{}{}
	var out []core.Period
	add := func(p core.Period) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	for _, e := range data.CreditCards {
		add(e.Period)
	}
	for _, e := range data.Earnings {
		add(e.Period)
	}
	for _, e := range data.FixedExpenses {
		add(e.Period)
	}
	for _, e := range data.DiverseExpenses {
		add(e.Period)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
