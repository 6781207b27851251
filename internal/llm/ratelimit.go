package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// rateLimitedGateway spaces out calls to stay inside provider quotas.
type rateLimitedGateway struct {
	inner   Gateway
	limiter *rate.Limiter
}

// NewRateLimitedGateway wraps inner so that calls start at least interval
// apart. An interval of zero returns inner unchanged.
func NewRateLimitedGateway(inner Gateway, interval time.Duration) Gateway {
	if interval <= 0 {
		return inner
	}
	return &rateLimitedGateway{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

func (g *rateLimitedGateway) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		// Wait fails early, with ctx still live, when the next slot lies
		// past the deadline. Anything else is the caller giving up.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	}
	return g.inner.Generate(ctx, req)
}
