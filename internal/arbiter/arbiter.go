// Package arbiter is the boundary to the external reasoning service used
// to resolve ambiguous classifications. The pipeline only ever sees the
// Arbiter interface; a disabled arbiter is a first-class value, not a nil
// pointer inspected at call sites.
package arbiter

import (
	"context"
	"fmt"
)

// Arbiter answers a textual arbitration prompt with the raw model reply.
// Arbitrate may block on network I/O; callers wanting a timeout wrap ctx.
type Arbiter interface {
	// Enabled reports whether Arbitrate can be called at all.
	Enabled() bool
	Arbitrate(ctx context.Context, prompt string) (string, error)
}

type disabled struct{}

func (disabled) Enabled() bool { return false }

func (disabled) Arbitrate(context.Context, string) (string, error) {
	return "", fmt.Errorf("arbitration disabled")
}

// Disabled returns the no-op arbiter: every axis resolves heuristically.
func Disabled() Arbiter { return disabled{} }

// New builds an arbiter from configuration. Provider "none" (or empty)
// disables arbitration entirely.
func New(provider, apiKey, baseURL, model string) (Arbiter, error) {
	switch provider {
	case "", "none":
		return Disabled(), nil
	case "anthropic":
		if apiKey == "" {
			return nil, fmt.Errorf("anthropic provider requires an API key")
		}
		return NewAnthropic(apiKey, model), nil
	case "openai":
		if apiKey == "" {
			return nil, fmt.Errorf("openai provider requires an API key")
		}
		return NewOpenAI(apiKey, baseURL, model), nil
	default:
		return nil, fmt.Errorf("unknown arbiter provider %q (want anthropic, openai or none)", provider)
	}
}
