package core

import (
	"encoding/json"
	"testing"
)

func TestPeriodAddMonths(t *testing.T) {
	cases := []struct {
		name string
		from Period
		n    int
		want Period
	}{
		{"same month", Period{2026, 3}, 0, Period{2026, 3}},
		{"within year", Period{2026, 3}, 4, Period{2026, 7}},
		{"year rollover", Period{2026, 12}, 1, Period{2027, 1}},
		{"november plus two", Period{2026, 11}, 2, Period{2027, 1}},
		{"multi-year", Period{2026, 5}, 25, Period{2028, 6}},
		{"backwards", Period{2026, 1}, -1, Period{2025, 12}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.AddMonths(tc.n); got != tc.want {
				t.Fatalf("%v.AddMonths(%d) = %v, want %v", tc.from, tc.n, got, tc.want)
			}
		})
	}
}

func TestPeriodString(t *testing.T) {
	cases := []struct {
		p    Period
		want string
	}{
		{Period{2026, 1}, "Janeiro 2026"},
		{Period{2026, 3}, "Março 2026"},
		{Period{2027, 12}, "Dezembro 2027"},
	}
	for _, tc := range cases {
		if got := tc.p.String(); got != tc.want {
			t.Errorf("%v.String() = %q, want %q", tc.p, got, tc.want)
		}
	}
}

func TestParsePeriod(t *testing.T) {
	cases := []struct {
		in   string
		want Period
		ok   bool
	}{
		{"Janeiro 2026", Period{2026, 1}, true},
		{"Dezembro 2025", Period{2025, 12}, true},
		{" Março 2026 ", Period{2026, 3}, true},
		{"janeiro 2026", Period{}, false}, // matching is exact, no normalization
		{"Janeiro", Period{}, false},
		{"Janeiro abc", Period{}, false},
		{"", Period{}, false},
	}
	for _, tc := range cases {
		got, err := ParsePeriod(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Errorf("ParsePeriod(%q) = %v, %v; want %v", tc.in, got, err, tc.want)
			}
		} else if err == nil {
			t.Errorf("ParsePeriod(%q) expected error", tc.in)
		}
	}
}

func TestPeriodJSONRoundTrip(t *testing.T) {
	p := Period{Year: 2026, Month: 7}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"Julho 2026"` {
		t.Fatalf("marshal = %s, want \"Julho 2026\"", data)
	}
	var back Period
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != p {
		t.Fatalf("round trip = %v, want %v", back, p)
	}
}

func TestPeriodBefore(t *testing.T) {
	if !(Period{2025, 12}).Before(Period{2026, 1}) {
		t.Error("Dezembro 2025 should sort before Janeiro 2026")
	}
	if (Period{2026, 2}).Before(Period{2026, 2}) {
		t.Error("a period is not before itself")
	}
}
