package dnaapi

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/bnema/dna-analyser-cli/internal/domain"
	"github.com/rs/zerolog/log"
)

// RetryPolicy repeats transient failures with exponential backoff. Only
// connection failures and empty payloads are retried.
type RetryPolicy struct {
	Attempts uint
	Delay    time.Duration
	MaxDelay time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 5, Delay: 4 * time.Second, MaxDelay: 10 * time.Second}
}

// Do runs fn until it succeeds, fails permanently or runs out of attempts.
// The last error is returned as is.
func (p RetryPolicy) Do(ctx context.Context, op string, fn func() error) error {
	attempts := p.Attempts
	if attempts == 0 {
		attempts = 1
	}

	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(p.Delay),
		retry.MaxDelay(p.MaxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(domain.IsTransient),
		retry.OnRetry(func(n uint, err error) {
			log.Warn().Err(err).Str("op", op).Uint("attempt", n+1).Uint("max_attempts", attempts).Msg("request failed, retrying")
		}),
	)
}
