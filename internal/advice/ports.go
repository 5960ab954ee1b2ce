// Package advice generates the monthly financial analysis text through an
// external text-completion service. Failures never cross this boundary:
// callers always get text, at worst the fixed fallback message.
package advice

import "context"

// Completer is the outbound port to the text-completion service.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}
