package recommend

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pageza/smartcanteen/backend/internal/metrics"
	"github.com/pageza/smartcanteen/backend/internal/types"
)

// Composer turns a catalog into a scored menu for one profile.
type Composer struct {
	engine  *Engine
	workers int
}

// NewComposer evaluates up to workers items concurrently.
func NewComposer(engine *Engine, workers int) *Composer {
	if workers < 1 {
		workers = 1
	}
	return &Composer{engine: engine, workers: workers}
}

// Engine exposes the underlying scoring engine.
func (c *Composer) Engine() *Engine {
	return c.engine
}

// Compose drops unavailable or out-of-stock items and scores the rest,
// preserving catalog order.
func (c *Composer) Compose(ctx context.Context, catalog []types.FoodItem, profile types.HealthProfile) []types.ScoredItem {
	start := time.Now()
	defer func() { metrics.MenuComposeDuration.Observe(time.Since(start).Seconds()) }()

	offered := make([]types.FoodItem, 0, len(catalog))
	for _, item := range catalog {
		if item.Orderable() {
			offered = append(offered, item)
		}
	}

	out := make([]types.ScoredItem, len(offered))
	var g errgroup.Group
	g.SetLimit(c.workers)
	for i := range offered {
		g.Go(func() error {
			out[i] = types.Annotate(offered[i], c.engine.Evaluate(ctx, offered[i], profile))
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// MenuFilter narrows a composed menu. Zero values disable each filter.
type MenuFilter struct {
	MaxRisk     *types.RiskLevel
	Tag         string
	Limit       int
	SortByScore bool
}

// Apply returns a new slice; items is not modified.
func (f MenuFilter) Apply(items []types.ScoredItem) []types.ScoredItem {
	out := make([]types.ScoredItem, 0, len(items))
	for _, it := range items {
		if f.MaxRisk != nil && it.RiskLevel > *f.MaxRisk {
			continue
		}
		if f.Tag != "" && it.Tag != f.Tag {
			continue
		}
		out = append(out, it)
	}
	if f.SortByScore {
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].MatchScore > out[j].MatchScore
		})
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out
}
