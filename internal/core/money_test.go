package core

import (
	"encoding/json"
	"testing"
)

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"300", 30000, true},
		{"-1", 0, false},
		{"0", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "R$ 0,00"},
		{1, "R$ 0,01"},
		{123456, "R$ 1234,56"},
		{-250, "-R$ 2,50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 500}
	b := Money{Cents: 750}
	if got := a.Add(b); got.Cents != 1250 {
		t.Errorf("Add = %d, want 1250", got.Cents)
	}
	if got := a.Sub(b); got.Cents != -250 {
		t.Errorf("Sub = %d, want -250", got.Cents)
	}
}

func TestMoneyJSON(t *testing.T) {
	data, err := json.Marshal(Money{Cents: 12345})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "12345" {
		t.Errorf("marshal = %s, want plain cents", data)
	}

	var m Money
	if err := json.Unmarshal([]byte("9900"), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if m.Cents != 9900 {
		t.Errorf("unmarshal cents = %d, want 9900", m.Cents)
	}

	if err := json.Unmarshal([]byte(`"12,34"`), &m); err == nil {
		t.Error("quoted amount should not unmarshal")
	}
}
