// Package cards holds the per-card billing-cycle configuration and the
// installment explosion engine that turns one purchase into a sequence of
// ledger entries, one per installment.
package cards

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// NeverCloses is the closing-day sentinel for unknown cards: no day of any
// month reaches it, so purchases on such cards never roll to the next cycle.
const NeverCloses = 32

// Registry maps card names to billing-cycle closing days. It is built once
// at startup and read-only afterwards.
type Registry struct {
	closingDays map[string]int
}

// DefaultRegistry returns the built-in card configuration.
func DefaultRegistry() *Registry {
	return &Registry{closingDays: map[string]int{
		"BV Clau":            20,
		"Itaú Clau":          10,
		"Credicard Clau":     25,
		"Credicard Paulinha": 25,
		"CredOn Paulinha":    15,
		"Hipercard":          28,
	}}
}

type registryFile struct {
	Cards map[string]int `toml:"cards"`
}

// LoadFile reads a TOML card configuration and merges it over the built-in
// defaults. File entries override defaults for the same card name.
//
//	[cards]
//	"Itaú Clau" = 10
//	"Nubank"    = 8
func LoadFile(path string) (*Registry, error) {
	var file registryFile
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read card config: %w", err)
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse card config %s: %w", path, err)
	}
	reg := DefaultRegistry()
	for card, day := range file.Cards {
		if day < 1 || day > 31 {
			return nil, fmt.Errorf("card config %s: closing day %d for %q out of range", path, day, card)
		}
		reg.closingDays[card] = day
	}
	return reg, nil
}

// ClosingDayOf returns the configured closing day for a card, or the
// NeverCloses sentinel when the card is unknown. Unknown is not an error.
func (r *Registry) ClosingDayOf(card string) int {
	if day, ok := r.closingDays[card]; ok {
		return day
	}
	return NeverCloses
}

// Cards lists the configured card names.
func (r *Registry) Cards() []string {
	out := make([]string, 0, len(r.closingDays))
	for card := range r.closingDays {
		out = append(out, card)
	}
	return out
}
