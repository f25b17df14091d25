package perception

import (
	"context"
	"fmt"
	"time"

	"astra/internal/emotion"

	"golang.org/x/time/rate"
)

// Limited throttles calls to an inner provider. A call that cannot get a
// token within maxWait fails with ErrRateLimited instead of queueing.
type Limited struct {
	inner   emotion.PolarityProvider
	limiter *rate.Limiter
	maxWait time.Duration
}

// NewLimited wraps inner with a token bucket of perSecond and burst.
func NewLimited(inner emotion.PolarityProvider, perSecond float64, burst int, maxWait time.Duration) *Limited {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &Limited{
		inner:   inner,
		limiter: rate.NewLimiter(limit, burst),
		maxWait: maxWait,
	}
}

// Polarity implements emotion.PolarityProvider.
func (l *Limited) Polarity(ctx context.Context, text string) (float64, error) {
	if l.maxWait <= 0 {
		if !l.limiter.Allow() {
			return 0, ErrRateLimited
		}
		return l.inner.Polarity(ctx, text)
	}

	waitCtx, cancel := context.WithTimeout(ctx, l.maxWait)
	err := l.limiter.Wait(waitCtx)
	cancel()
	if err != nil {
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, fmt.Errorf("%w: %v", ErrRateLimited, err)
	}
	return l.inner.Polarity(ctx, text)
}
