package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// monthNames are the canonical Portuguese month labels used in the
// referenceMonth projection ("Janeiro 2026" etc.). Index 0 is month 1.
var monthNames = [12]string{
	"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
	"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
}

// Period is a billing/reporting period: a (year, month) pair. Month
// arithmetic is done as plain integer arithmetic so adding months never
// suffers the day-of-month clamping artifacts of time.Time.AddDate.
type Period struct {
	Year  int
	Month int // 1-12
}

// PeriodOf returns the period a date falls in.
func PeriodOf(d Date) Period {
	return Period{Year: d.Year(), Month: d.Month()}
}

// CurrentPeriod returns the period of the wall clock.
func CurrentPeriod(now time.Time) Period {
	return Period{Year: now.Year(), Month: int(now.Month())}
}

// AddMonths returns the period n calendar months later, carrying the year.
// n may be zero or negative.
func (p Period) AddMonths(n int) Period {
	idx := p.Year*12 + (p.Month - 1) + n
	return Period{Year: idx / 12, Month: idx%12 + 1}
}

// Before reports whether p is chronologically before q.
func (p Period) Before(q Period) bool {
	if p.Year != q.Year {
		return p.Year < q.Year
	}
	return p.Month < q.Month
}

func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidMonth
	}
	if p.Year < 1 {
		return ErrInvalidYear
	}
	return nil
}

// String renders the canonical referenceMonth label, e.g. "Março 2026".
func (p Period) String() string {
	if p.Validate() != nil {
		return fmt.Sprintf("invalid period %d/%d", p.Month, p.Year)
	}
	return monthNames[p.Month-1] + " " + strconv.Itoa(p.Year)
}

// ParsePeriod parses a canonical referenceMonth label back into a Period.
// Matching is exact on the month name, case included.
func ParsePeriod(s string) (Period, error) {
	name, yearStr, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return Period{}, fmt.Errorf("parse period %q: %w", s, ErrInvalidPeriod)
	}
	month := 0
	for i, m := range monthNames {
		if m == name {
			month = i + 1
			break
		}
	}
	if month == 0 {
		return Period{}, fmt.Errorf("parse period %q: %w", s, ErrInvalidPeriod)
	}
	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 1 {
		return Period{}, fmt.Errorf("parse period %q: %w", s, ErrInvalidPeriod)
	}
	return Period{Year: year, Month: month}, nil
}

// MarshalJSON writes the canonical label; the wire field is referenceMonth.
func (p Period) MarshalJSON() ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("marshal period: %w", err)
	}
	return []byte(strconv.Quote(p.String())), nil
}

func (p *Period) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("unmarshal period: %w", err)
	}
	parsed, err := ParsePeriod(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
