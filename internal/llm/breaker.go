package llm

import (
	"context"
	"time"

	"github.com/horo-ai/horo/internal/rag/interfaces"
	"github.com/horo-ai/horo/pkg/circuitbreaker"
)

// breakerFailureThreshold consecutive provider failures open the circuit;
// after breakerTimeout a trial call is allowed through.
const (
	breakerFailureThreshold = 5
	breakerSuccessThreshold = 1
	breakerTimeout          = 30 * time.Second
)

// GuardedLLM wraps an LLM with a circuit breaker so a dead model server fails
// fast instead of holding every request open until its timeout.
type GuardedLLM struct {
	inner   interfaces.LLM
	breaker *circuitbreaker.Breaker
}

// WithBreaker wraps inner in a circuit breaker with the default thresholds.
func WithBreaker(inner interfaces.LLM) *GuardedLLM {
	return &GuardedLLM{
		inner:   inner,
		breaker: circuitbreaker.New(breakerFailureThreshold, breakerSuccessThreshold, breakerTimeout),
	}
}

// Generate delegates to the wrapped LLM under the circuit breaker. When the
// circuit is open it returns circuitbreaker.ErrCircuitOpen immediately.
func (g *GuardedLLM) Generate(ctx context.Context, prompt string) (string, error) {
	var answer string
	err := g.breaker.Do(func() error {
		var genErr error
		answer, genErr = g.inner.Generate(ctx, prompt)
		return genErr
	})
	if err != nil {
		return "", err
	}
	return answer, nil
}

var _ interfaces.LLM = (*GuardedLLM)(nil)
