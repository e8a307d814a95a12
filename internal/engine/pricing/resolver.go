// Package pricing resolves derived costs through the invalidation graph,
// recomputing stale or missing values and caching them with their dependencies.
package pricing

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"go.trai.ch/costwise/internal/core/domain"
	"go.trai.ch/costwise/internal/core/ports"
	"go.trai.ch/costwise/internal/engine/dashboard"
	"go.trai.ch/costwise/internal/engine/invalidation"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// snapshot is an immutable catalog with the calculator built for its units.
type snapshot struct {
	catalog *domain.Catalog
	calc    *domain.Calculator
	byID    map[string]domain.Ingredient
}

// Resolver answers cost queries over the current catalog snapshot.
type Resolver struct {
	graph      *invalidation.Graph
	aggregator *dashboard.Aggregator
	tracer     ports.Tracer
	metrics    ports.Metrics

	current atomic.Pointer[snapshot]
	group   singleflight.Group
}

// NewResolver creates a Resolver reading and writing the given graph.
func NewResolver(
	graph *invalidation.Graph,
	aggregator *dashboard.Aggregator,
	tracer ports.Tracer,
	metrics ports.Metrics,
) *Resolver {
	return &Resolver{
		graph:      graph,
		aggregator: aggregator,
		tracer:     tracer,
		metrics:    metrics,
	}
}

// SetCatalog swaps the catalog snapshot. Callers invalidate the affected keys afterwards.
func (r *Resolver) SetCatalog(c *domain.Catalog) {
	r.current.Store(&snapshot{
		catalog: c,
		calc:    domain.NewCalculator(c.ConversionTable()),
		byID:    c.IngredientsByID(),
	})
}

// Catalog returns the current snapshot, or nil before the first SetCatalog.
func (r *Resolver) Catalog() *domain.Catalog {
	if s := r.current.Load(); s != nil {
		return s.catalog
	}
	return nil
}

// Graph returns the invalidation graph backing the resolver.
func (r *Resolver) Graph() *invalidation.Graph {
	return r.graph
}

// resolve returns the Fresh value of key or recomputes it.
// Concurrent recomputes of one key share a single call, which runs detached from the
// cancellation of whichever caller started it. Each caller stops waiting when its own ctx ends.
// Failures are returned and never cached.
func resolve[T any](
	ctx context.Context,
	r *Resolver,
	key domain.CacheKey,
	compute func(ctx context.Context, s *snapshot) (T, []domain.CacheKey, error),
) (T, error) {
	var zero T
	if e, ok := r.graph.Lookup(key); ok {
		r.metrics.Hit(key.Kind)
		return e.Value.(T), nil
	}
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	shared := context.WithoutCancel(ctx)
	ch := r.group.DoChan(key.String(), func() (any, error) {
		e, ok := r.graph.Lookup(key)
		if ok {
			return e.Value, nil
		}
		r.metrics.Miss(key.Kind)

		ctx, span := r.tracer.Start(shared, "recompute "+string(key.Kind))
		defer span.End()
		span.SetAttribute("cache.key", key.String())

		s := r.current.Load()
		if s == nil {
			span.RecordError(domain.ErrCatalogNotLoaded)
			return nil, domain.ErrCatalogNotLoaded
		}

		value, deps, err := compute(ctx, s)
		if err != nil {
			span.RecordError(err)
			r.metrics.Failed(key.Kind)
			return nil, err
		}
		span.SetAttribute("cache.stored", r.graph.Store(key, e.Generation, value, deps))
		return value, nil
	})

	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// IngredientUnitCost returns the price of one unit of the ingredient's unit.
func (r *Resolver) IngredientUnitCost(ctx context.Context, id string) (decimal.Decimal, error) {
	return resolve(ctx, r, domain.IngredientKey(id), func(_ context.Context, s *snapshot) (decimal.Decimal, []domain.CacheKey, error) {
		ing, ok := s.byID[id]
		if !ok {
			return decimal.Zero, nil, zerr.With(domain.ErrIngredientNotFound, "ingredient", id)
		}
		cost, err := s.calc.UnitCost(ing)
		return cost, nil, err
	})
}

// LineCost returns the cost of the index-th recipe line of a product.
func (r *Resolver) LineCost(ctx context.Context, productID string, index int) (decimal.Decimal, error) {
	return resolve(ctx, r, domain.LineKey(productID, index), func(ctx context.Context, s *snapshot) (decimal.Decimal, []domain.CacheKey, error) {
		p, ok := s.catalog.Product(productID)
		if !ok {
			return decimal.Zero, nil, zerr.With(domain.ErrProductNotFound, "product", productID)
		}
		if index < 0 || index >= len(p.Lines) {
			err := zerr.With(domain.ErrLineNotFound, "product", productID)
			return decimal.Zero, nil, zerr.With(err, "line", index)
		}
		line := p.Lines[index]

		if _, err := r.IngredientUnitCost(ctx, line.IngredientID); err != nil {
			return decimal.Zero, nil, zerr.With(err, "product", productID)
		}
		cost, err := s.calc.LineCost(s.byID[line.IngredientID], line)
		if err != nil {
			return decimal.Zero, nil, zerr.With(err, "product", productID)
		}
		return cost, []domain.CacheKey{domain.IngredientKey(line.IngredientID)}, nil
	})
}

// ProductCost returns the ingredient cost of one batch of the product.
// It fails on the first line whose cost is undefined.
func (r *Resolver) ProductCost(ctx context.Context, id string) (decimal.Decimal, error) {
	return resolve(ctx, r, domain.ProductKey(id), func(ctx context.Context, s *snapshot) (decimal.Decimal, []domain.CacheKey, error) {
		p, ok := s.catalog.Product(id)
		if !ok {
			return decimal.Zero, nil, zerr.With(domain.ErrProductNotFound, "product", id)
		}

		total := decimal.Zero
		deps := make([]domain.CacheKey, 0, len(p.Lines))
		for i := range p.Lines {
			cost, err := r.LineCost(ctx, id, i)
			if err != nil {
				return decimal.Zero, nil, err
			}
			total = total.Add(cost)
			deps = append(deps, domain.LineKey(id, i))
		}
		return total, deps, nil
	})
}

// WorkingHours returns the working days summary of the catalog's reference year.
func (r *Resolver) WorkingHours(ctx context.Context) (domain.WorkingDaysSummary, error) {
	return resolve(ctx, r, domain.WorkingHoursKey, func(_ context.Context, s *snapshot) (domain.WorkingDaysSummary, []domain.CacheKey, error) {
		summary, err := domain.CalculateWorkingDays(s.catalog.WorkingDays, s.catalog.Year)
		return summary, nil, err
	})
}

// FixedTotal returns the monthly total of the active fixed costs.
func (r *Resolver) FixedTotal(ctx context.Context) (decimal.Decimal, error) {
	return resolve(ctx, r, domain.FixedTotalKey, func(_ context.Context, s *snapshot) (decimal.Decimal, []domain.CacheKey, error) {
		return domain.MonthlyFixedTotal(s.catalog.FixedCosts), nil, nil
	})
}

// Rates returns the hourly fixed and labor rates.
func (r *Resolver) Rates(ctx context.Context) (domain.Rates, error) {
	return resolve(ctx, r, domain.LaborRateKey, func(ctx context.Context, s *snapshot) (domain.Rates, []domain.CacheKey, error) {
		fixed, err := r.FixedTotal(ctx)
		if err != nil {
			return domain.Rates{}, nil, err
		}
		summary, err := r.WorkingHours(ctx)
		if err != nil {
			return domain.Rates{}, nil, err
		}
		rates, err := domain.HourlyRates(fixed, s.catalog.Settings.MonthlyLabor, summary)
		return rates, []domain.CacheKey{domain.FixedTotalKey, domain.WorkingHoursKey}, err
	})
}

// ProductView returns the full pricing breakdown of one product unit.
func (r *Resolver) ProductView(ctx context.Context, id string) (domain.Pricing, error) {
	return resolve(ctx, r, domain.ProductViewKey(id), func(ctx context.Context, s *snapshot) (domain.Pricing, []domain.CacheKey, error) {
		p, ok := s.catalog.Product(id)
		if !ok {
			return domain.Pricing{}, nil, zerr.With(domain.ErrProductNotFound, "product", id)
		}
		batch, err := r.ProductCost(ctx, id)
		if err != nil {
			return domain.Pricing{}, nil, err
		}
		rates, err := r.Rates(ctx)
		if err != nil {
			return domain.Pricing{}, nil, err
		}
		overhead, err := s.calc.Overhead(rates, p)
		if err != nil {
			return domain.Pricing{}, nil, err
		}
		pricing, err := s.calc.Price(p, batch, overhead, s.catalog.Settings.DefaultMargin)
		return pricing, []domain.CacheKey{domain.ProductKey(id), domain.LaborRateKey}, err
	})
}

// Products resolves every product of the catalog in parallel, in catalog order.
// A product whose cost cannot be computed carries its error instead of failing the call.
func (r *Resolver) Products(ctx context.Context) ([]dashboard.ProductResult, error) {
	s := r.current.Load()
	if s == nil {
		return nil, domain.ErrCatalogNotLoaded
	}

	results := make([]dashboard.ProductResult, len(s.catalog.Products))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, p := range s.catalog.Products {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pricing, err := r.ProductView(gctx, p.ID)
			results[i] = dashboard.ProductResult{Product: p, Pricing: pricing, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Summary returns the dashboard aggregate of the catalog.
// Changes today are not part of the cached value; callers add them from the price history.
func (r *Resolver) Summary(ctx context.Context) (dashboard.Summary, error) {
	return resolve(ctx, r, domain.DashboardKey, func(ctx context.Context, s *snapshot) (dashboard.Summary, []domain.CacheKey, error) {
		products, err := r.Products(ctx)
		if err != nil {
			return dashboard.Summary{}, nil, err
		}
		fixed, err := r.FixedTotal(ctx)
		if err != nil {
			return dashboard.Summary{}, nil, err
		}

		deps := []domain.CacheKey{domain.FixedTotalKey}
		for _, p := range products {
			if p.Available() {
				deps = append(deps, domain.ProductViewKey(p.Product.ID))
			}
		}

		summary := r.aggregator.Aggregate(dashboard.Input{
			IngredientCount: len(s.catalog.Ingredients),
			Products:        products,
			MonthlyFixed:    fixed,
			Grouping:        s.catalog.Settings.MarginGrouping,
		})
		return summary, deps, nil
	})
}
