package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	Saude       Category = "saúde"
	Educacao    Category = "educação"
	Lazer       Category = "lazer"
	Alimentacao Category = "alimentação"
	Transporte  Category = "transporte"
	Outros      Category = "outros"
)

// Kind names one of the four ledger collections. The values double as the
// JSON field names of the FinancialData snapshot.
const (
	KindCreditCards     Kind = "creditCards"
	KindEarnings        Kind = "earnings"
	KindFixedExpenses   Kind = "fixedExpenses"
	KindDiverseExpenses Kind = "diverseExpenses"
)

type (
	Category string

	Kind string

	// Date is a calendar date. The time-of-day is always midnight UTC;
	// JSON uses the ISO form "2006-01-02".
	Date struct {
		time.Time
	}

	// CardInstallment is one installment of a credit-card purchase.
	// Date is the original purchase date on every installment of the same
	// purchase; only Period differs across siblings. That keeps siblings
	// recognizable by equal (Card, Date, description prefix).
	CardInstallment struct {
		ID           string `json:"id"`
		Card         string `json:"cardName"`
		Date         Date   `json:"date"`
		Amount       Money  `json:"amount"`
		Description  string `json:"description"`
		Installment  int    `json:"installment"`
		Installments int    `json:"installments"`
		Period       Period `json:"referenceMonth"`
	}

	Earning struct {
		ID     string `json:"id"`
		Source string `json:"source"`
		Amount Money  `json:"amount"`
		Date   Date   `json:"date"`
		Period Period `json:"referenceMonth"`
	}

	FixedExpense struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Amount Money  `json:"amount"`
		Period Period `json:"referenceMonth"`
		Notes  string `json:"observations,omitempty"`
	}

	DiverseExpense struct {
		ID          string   `json:"id"`
		Description string   `json:"description"`
		Category    Category `json:"category"`
		Amount      Money    `json:"amount"`
		Date        Date     `json:"date"`
		Period      Period   `json:"referenceMonth"`
		Notes       string   `json:"observations,omitempty"`
	}

	// Ledger is the FinancialData aggregate root: four insertion-ordered
	// collections, persisted as a single whole snapshot.
	Ledger struct {
		CreditCards     []CardInstallment `json:"creditCards"`
		Earnings        []Earning         `json:"earnings"`
		FixedExpenses   []FixedExpense    `json:"fixedExpenses"`
		DiverseExpenses []DiverseExpense  `json:"diverseExpenses"`
	}
)

// Entry is the common base of the four kinds: anything with an id, an
// amount and a reference period. The aggregator is written once over it.
type Entry interface {
	EntryID() string
	EntryAmount() Money
	RefPeriod() Period
}

func (e CardInstallment) EntryID() string    { return e.ID }
func (e CardInstallment) EntryAmount() Money { return e.Amount }
func (e CardInstallment) RefPeriod() Period  { return e.Period }

func (e Earning) EntryID() string    { return e.ID }
func (e Earning) EntryAmount() Money { return e.Amount }
func (e Earning) RefPeriod() Period  { return e.Period }

func (e FixedExpense) EntryID() string    { return e.ID }
func (e FixedExpense) EntryAmount() Money { return e.Amount }
func (e FixedExpense) RefPeriod() Period  { return e.Period }

func (e DiverseExpense) EntryID() string    { return e.ID }
func (e DiverseExpense) EntryAmount() Money { return e.Amount }
func (e DiverseExpense) RefPeriod() Period  { return e.Period }

var (
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrInvalidMonth     = errors.New("invalid month")
	ErrInvalidYear      = errors.New("invalid year")
	ErrInvalidPeriod    = errors.New("invalid reference month")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidCategory  = errors.New("invalid category")
	ErrEmptyDescription = errors.New("empty description")
	ErrEmptySource      = errors.New("empty source")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyCard        = errors.New("empty card name")
	ErrUnknownKind      = errors.New("unknown ledger kind")
)

// ParseKind maps a collection name to its Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindCreditCards, KindEarnings, KindFixedExpenses, KindDiverseExpenses:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (c Category) Validate() error {
	switch c {
	case Saude, Educacao, Lazer, Alimentacao, Transporte, Outros:
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidCategory, string(c))
}

// Categories lists the valid diverse-expense categories.
func Categories() []Category {
	return []Category{Saude, Educacao, Lazer, Alimentacao, Transporte, Outros}
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO calendar date ("2006-01-02").
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month.
func (d Date) Day() int { return d.Time.Day() }

// Month returns the month as 1-12.
func (d Date) Month() int { return int(d.Time.Month()) }

// Year returns the year.
func (d Date) Year() int { return d.Time.Year() }

func (d Date) String() string { return d.Time.Format("2006-01-02") }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return nil, ErrInvalidDate
	}
	return []byte(strconv.Quote(d.String())), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("unmarshal date: %w", err)
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (e Earning) Validate() error {
	if strings.TrimSpace(e.Source) == "" {
		return ErrEmptySource
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	return e.Date.Validate()
}

func (e FixedExpense) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	return e.Amount.Validate()
}

func (e DiverseExpense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if err := e.Category.Validate(); err != nil {
		return err
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	return e.Date.Validate()
}

// Clone returns a deep copy of the ledger. Entries are value types, so
// copying the slices is enough.
func (l Ledger) Clone() Ledger {
	return Ledger{
		CreditCards:     append([]CardInstallment(nil), l.CreditCards...),
		Earnings:        append([]Earning(nil), l.Earnings...),
		FixedExpenses:   append([]FixedExpense(nil), l.FixedExpenses...),
		DiverseExpenses: append([]DiverseExpense(nil), l.DiverseExpenses...),
	}
}

// Empty reports whether all four collections are empty.
func (l Ledger) Empty() bool {
	return len(l.CreditCards) == 0 && len(l.Earnings) == 0 &&
		len(l.FixedExpenses) == 0 && len(l.DiverseExpenses) == 0
}
