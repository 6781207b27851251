package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/patrickmn/go-cache"
)

// cachingGateway answers repeated identical requests from memory for the
// lifetime of the session.
type cachingGateway struct {
	inner    Gateway
	cache    *cache.Cache
	provider Provider
	observer Observer
}

// NewCachingGateway wraps inner with an in-memory response cache. A ttl of
// zero returns inner unchanged.
func NewCachingGateway(inner Gateway, ttl time.Duration, provider Provider, observer Observer) Gateway {
	if ttl <= 0 {
		return inner
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	return &cachingGateway{
		inner:    inner,
		cache:    cache.New(ttl, 2*ttl),
		provider: provider,
		observer: observer,
	}
}

func (g *cachingGateway) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	key := cacheKey(req)
	if v, ok := g.cache.Get(key); ok {
		resp := *v.(*GenerateResponse)
		g.observer.OnCallComplete(LLMCallEvent{
			Provider: g.provider,
			Model:    resp.Model,
			Success:  true,
			Cached:   true,
		})
		resp.LatencyMs = 0
		return &resp, nil
	}

	resp, err := g.inner.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	stored := *resp
	g.cache.Set(key, &stored, cache.DefaultExpiration)
	return resp, nil
}

func cacheKey(req GenerateRequest) string {
	h := sha256.New()
	for _, part := range []string{req.Model, req.SystemPrompt, req.UserPrompt} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}
