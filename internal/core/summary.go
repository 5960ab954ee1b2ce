package core

// CategoryAmount is an amount aggregated under a breakdown label.
type CategoryAmount struct {
	Name   string `json:"name"`
	Amount Money  `json:"amount"`
}

// CardAmount is the spend on a single card within a reference month.
type CardAmount struct {
	Card   string `json:"cardName"`
	Amount Money  `json:"amount"`
}

// MonthReport is the aggregated view of one reference month.
type MonthReport struct {
	Period Period `json:"referenceMonth"`

	Earnings Money `json:"totalEarnings"`
	Fixed    Money `json:"totalFixed"`
	Diverse  Money `json:"totalDiverse"`
	Cards    Money `json:"totalCards"`

	// Expenses = Fixed + Diverse + Cards; Balance = Earnings - Expenses.
	Expenses Money `json:"totalExpenses"`
	Balance  Money `json:"balance"`

	// ByCategory holds the three expense groups, zero-valued groups omitted.
	ByCategory []CategoryAmount `json:"categoryBreakdown"`
	// ByCard is keyed by first appearance in the filtered installments.
	ByCard []CardAmount `json:"perCardBreakdown"`
}
