package advice

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/singleflight"

	"contas/internal/core"
	"contas/internal/report"
)

// Fallback is returned whenever the completion service fails.
const Fallback = "Não foi possível gerar a análise no momento."

// Advisor builds the monthly prompt and runs it through the completer.
// Overlapping calls for the same reference month are collapsed into one
// in-flight request.
type Advisor struct {
	completer Completer
	group     singleflight.Group
}

func NewAdvisor(completer Completer) *Advisor {
	return &Advisor{completer: completer}
}

// Advise returns the analysis text for one reference month. It never
// returns an error: on any failure the fixed fallback text is returned and
// the failure is logged.
func (a *Advisor) Advise(ctx context.Context, data core.Ledger, period core.Period) string {
	out, err, _ := a.group.Do(period.String(), func() (any, error) {
		prompt, err := buildPrompt(data, period)
		if err != nil {
			return "", err
		}
		return a.completer.Complete(ctx, prompt)
	})
	if err != nil {
		slog.ErrorContext(ctx, "Advice generation failed",
			"error", err, "reference_month", period.String())
		return Fallback
	}
	text := strings.TrimSpace(out.(string))
	if text == "" {
		return Fallback
	}
	return text
}

// buildPrompt serializes the month's slice of the ledger into the analysis
// prompt. Only entries filed under the requested month are included.
func buildPrompt(data core.Ledger, period core.Period) (string, error) {
	filtered := report.FilterLedger(data, period)

	earnings, err := marshalList(filtered.Earnings)
	if err != nil {
		return "", fmt.Errorf("marshal earnings: %w", err)
	}
	cardsJSON, err := marshalList(filtered.CreditCards)
	if err != nil {
		return "", fmt.Errorf("marshal credit cards: %w", err)
	}
	fixed, err := marshalList(filtered.FixedExpenses)
	if err != nil {
		return "", fmt.Errorf("marshal fixed expenses: %w", err)
	}
	diverse, err := marshalList(filtered.DiverseExpenses)
	if err != nil {
		return "", fmt.Errorf("marshal diverse expenses: %w", err)
	}

	return fmt.Sprintf(`Analise os seguintes dados financeiros para o mês de %s:

Ganhos: %s
Cartões de Crédito: %s
Contas Fixas: %s
Gastos Diversos: %s

Por favor, forneça um breve resumo (3 parágrafos) em Português sobre:
1. A saúde financeira geral do mês.
2. Alertas sobre gastos excessivos se houver.
3. Sugestão de economia ou investimento baseada no saldo.
`, period.String(), earnings, cardsJSON, fixed, diverse), nil
}

// marshalList renders an empty list as "[]" rather than "null".
func marshalList[E any](entries []E) (string, error) {
	if len(entries) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
