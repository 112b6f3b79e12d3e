package combos

import (
	"context"
	"sync"

	"github.com/ougirez/turnero/internal/domain"
	"github.com/ougirez/turnero/internal/pkg/logger"
	"github.com/ougirez/turnero/internal/pkg/metrics"
	"github.com/ougirez/turnero/internal/pkg/upstream"
	"golang.org/x/sync/errgroup"
)

// Coordinator fills the cache on demand: it fetches only the pairs not yet
// cached, concurrently, and a pair's failure never blocks its siblings.
type Coordinator struct {
	cache    *Cache
	upstream upstream.Client
	metrics  *metrics.EngineMetrics
}

func NewCoordinator(cache *Cache, client upstream.Client, m *metrics.EngineMetrics) *Coordinator {
	return &Coordinator{cache: cache, upstream: client, metrics: m}
}

// EnsureResult carries the deduplicated union of the requested pairs'
// rows plus the pairs that could not be fetched this call.
type EnsureResult struct {
	Rows   []domain.Association
	Failed []Pair
}

func (c *Coordinator) Ensure(ctx context.Context, pairs []Pair) EnsureResult {
	requested := dedupePairs(pairs)

	var missing []Pair
	for _, p := range requested {
		if _, ok := c.cache.Get(p); ok {
			c.metrics.ObserveCacheLookup(true)
			continue
		}
		c.metrics.ObserveCacheLookup(false)
		missing = append(missing, p)
	}

	var (
		mu     sync.Mutex
		failed []Pair
	)
	eg, egCtx := errgroup.WithContext(ctx)
	for _, p := range missing {
		p := p
		eg.Go(func() error {
			rows, err := c.upstream.Associations(egCtx, p.ProviderID, p.ServiceID)
			if err != nil {
				logger.Warnf(ctx, "fetch combination (%d,%d): %s", p.ProviderID, p.ServiceID, err.Error())
				c.metrics.ObserveFetchFailure()
				mu.Lock()
				failed = append(failed, p)
				mu.Unlock()
				// failures are collected, not propagated, so sibling
				// fetches run to completion
				return nil
			}
			c.cache.Put(p, rows)
			return nil
		})
	}
	_ = eg.Wait()

	seen := make(map[int64]struct{})
	var union []domain.Association
	for _, p := range requested {
		rows, ok := c.cache.Get(p)
		if !ok {
			continue
		}
		for _, row := range rows {
			if _, dup := seen[row.ID]; dup {
				continue
			}
			seen[row.ID] = struct{}{}
			union = append(union, row)
		}
	}

	return EnsureResult{Rows: union, Failed: failed}
}

func dedupePairs(pairs []Pair) []Pair {
	seen := make(map[Pair]struct{}, len(pairs))
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		if _, dup := seen[p]; dup {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
