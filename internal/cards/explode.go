package cards

import (
	"fmt"
	"strings"

	"contas/internal/core"
)

// PurchaseRequest describes a single credit-card purchase before it is
// exploded into installments. It is transient input, never persisted.
type PurchaseRequest struct {
	Card         string
	Date         core.Date
	Total        core.Money
	Description  string
	Installments int
}

// Validate rejects malformed purchases before any ledger mutation.
// A non-positive installment count is not an error: it is normalized to 1
// during explosion.
func (r PurchaseRequest) Validate() error {
	if strings.TrimSpace(r.Card) == "" {
		return core.ErrEmptyCard
	}
	if strings.TrimSpace(r.Description) == "" {
		return core.ErrEmptyDescription
	}
	if err := r.Total.Validate(); err != nil {
		return err
	}
	return r.Date.Validate()
}

// SplitPolicy decides the per-installment amount for a purchase total.
type SplitPolicy interface {
	Split(total core.Money, installments int) core.Money
}

// EqualSplit divides the total evenly with no remainder redistribution:
// R$ 100,00 over 3 installments yields 3 x R$ 33,33, summing to R$ 99,99.
// The drift is an accepted, deliberate policy; swapping in an exact-sum
// policy is a one-line change here.
type EqualSplit struct{}

func (EqualSplit) Split(total core.Money, installments int) core.Money {
	return core.Money{Cents: total.Cents / int64(installments)}
}

// Engine explodes purchases into installment entries using the registry's
// closing days.
type Engine struct {
	registry *Registry
	split    SplitPolicy
}

func NewEngine(registry *Registry) *Engine {
	return &Engine{registry: registry, split: EqualSplit{}}
}

// WithSplitPolicy overrides the default equal-split policy.
func (e *Engine) WithSplitPolicy(p SplitPolicy) *Engine {
	e.split = p
	return e
}

// Explode produces one entry per installment, ordered by installment index
// (equivalently, by ascending reference month).
//
// A purchase made on or after the card's closing day bills starting the
// next cycle; the boundary is inclusive (day == closing day rolls over).
// Every entry keeps the original purchase date; only the reference month
// advances, one calendar month per installment, carrying the year.
//
// Entry IDs are left empty; the ledger store stamps them on append.
func (e *Engine) Explode(req PurchaseRequest) ([]core.CardInstallment, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid purchase: %w", err)
	}

	n := req.Installments
	if n <= 0 {
		n = 1
	}
	per := e.split.Split(req.Total, n)

	closingDay := e.registry.ClosingDayOf(req.Card)
	cycleOffset := 0
	if req.Date.Day() >= closingDay {
		cycleOffset = 1
	}

	base := core.PeriodOf(req.Date)
	entries := make([]core.CardInstallment, 0, n)
	for p := 1; p <= n; p++ {
		desc := req.Description
		if n > 1 {
			desc = fmt.Sprintf("%s (%d/%d)", req.Description, p, n)
		}
		entries = append(entries, core.CardInstallment{
			Card:         req.Card,
			Date:         req.Date,
			Amount:       per,
			Description:  desc,
			Installment:  p,
			Installments: n,
			Period:       base.AddMonths(p - 1 + cycleOffset),
		})
	}
	return entries, nil
}
