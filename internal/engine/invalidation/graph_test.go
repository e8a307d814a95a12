package invalidation_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/costwise/internal/core/domain"
	"go.trai.ch/costwise/internal/core/ports/mocks"
	"go.trai.ch/costwise/internal/engine/invalidation"
	"go.uber.org/mock/gomock"
)

// store writes key as Fresh, failing the test if the graph refuses it.
func store(t *testing.T, g *invalidation.Graph, key domain.CacheKey, value any, deps ...domain.CacheKey) {
	t.Helper()
	e, _ := g.Lookup(key)
	require.True(t, g.Store(key, e.Generation, value, deps), "store %s", key)
}

// bakery builds a fully Fresh graph:
//
//	cake   = flour + eggs
//	cookie = sugar
//
// with product views on the hourly rates and a dashboard over everything.
func bakery(t *testing.T) *invalidation.Graph {
	t.Helper()
	g := invalidation.New(nil)

	for _, id := range []string{"flour", "eggs", "sugar"} {
		store(t, g, domain.IngredientKey(id), id)
	}
	store(t, g, domain.LineKey("cake", 0), 1, domain.IngredientKey("flour"))
	store(t, g, domain.LineKey("cake", 1), 2, domain.IngredientKey("eggs"))
	store(t, g, domain.LineKey("cookie", 0), 3, domain.IngredientKey("sugar"))
	store(t, g, domain.ProductKey("cake"), 3, domain.LineKey("cake", 0), domain.LineKey("cake", 1))
	store(t, g, domain.ProductKey("cookie"), 3, domain.LineKey("cookie", 0))

	store(t, g, domain.FixedTotalKey, 100)
	store(t, g, domain.WorkingHoursKey, 160)
	store(t, g, domain.LaborRateKey, 5, domain.FixedTotalKey, domain.WorkingHoursKey)

	store(t, g, domain.ProductViewKey("cake"), "cake view", domain.ProductKey("cake"), domain.LaborRateKey)
	store(t, g, domain.ProductViewKey("cookie"), "cookie view", domain.ProductKey("cookie"), domain.LaborRateKey)
	store(t, g, domain.DashboardKey, "summary",
		domain.ProductViewKey("cake"), domain.ProductViewKey("cookie"), domain.FixedTotalKey)

	for _, e := range g.Snapshot() {
		require.Equal(t, domain.Fresh, e.State, e.Key.String())
	}
	return g
}

// assertNoFreshOverStale checks that no Fresh entry depends on a key that is not Fresh.
func assertNoFreshOverStale(t *testing.T, g *invalidation.Graph) {
	t.Helper()
	for _, e := range g.Snapshot() {
		if e.State != domain.Fresh {
			continue
		}
		for _, dep := range e.Deps {
			assert.Equal(t, domain.Fresh, g.State(dep), "%s is Fresh over %s", e.Key, dep)
		}
	}
}

func TestGraph_LookupOnlyFresh(t *testing.T) {
	g := invalidation.New(nil)
	key := domain.IngredientKey("flour")

	e, ok := g.Lookup(key)
	assert.False(t, ok)
	assert.Equal(t, domain.Uninitialized, e.State)
	assert.Nil(t, e.Value)

	store(t, g, key, 42)
	e, ok = g.Lookup(key)
	require.True(t, ok)
	assert.Equal(t, 42, e.Value)

	g.OnIngredientChange("flour")
	e, ok = g.Lookup(key)
	assert.False(t, ok)
	assert.Equal(t, domain.Stale, e.State)
	assert.Nil(t, e.Value)
}

func TestGraph_OnIngredientChange(t *testing.T) {
	g := bakery(t)

	g.OnIngredientChange("flour")

	for _, key := range []domain.CacheKey{
		domain.IngredientKey("flour"),
		domain.LineKey("cake", 0),
		domain.ProductKey("cake"),
		domain.ProductViewKey("cake"),
		domain.DashboardKey,
	} {
		assert.Equal(t, domain.Stale, g.State(key), key.String())
	}

	for _, key := range []domain.CacheKey{
		domain.IngredientKey("eggs"),
		domain.IngredientKey("sugar"),
		domain.LineKey("cake", 1),
		domain.LineKey("cookie", 0),
		domain.ProductKey("cookie"),
		domain.ProductViewKey("cookie"),
		domain.FixedTotalKey,
		domain.WorkingHoursKey,
		domain.LaborRateKey,
	} {
		assert.Equal(t, domain.Fresh, g.State(key), key.String())
	}
	assertNoFreshOverStale(t, g)
}

func TestGraph_OnIngredientChange_Wildcard(t *testing.T) {
	g := bakery(t)

	g.OnIngredientChange()

	for _, kind := range []domain.EntityKind{domain.KindIngredient, domain.KindLine, domain.KindProduct, domain.KindProductView} {
		for _, key := range g.Keys(kind) {
			assert.Equal(t, domain.Stale, g.State(key), key.String())
		}
	}
	assert.Equal(t, domain.Fresh, g.State(domain.FixedTotalKey))
	assert.Equal(t, domain.Fresh, g.State(domain.LaborRateKey))
	assertNoFreshOverStale(t, g)
}

func TestGraph_OnRecipeChange(t *testing.T) {
	g := bakery(t)

	g.OnRecipeChange("cake")

	assert.Equal(t, domain.Stale, g.State(domain.ProductKey("cake")))
	assert.Equal(t, domain.Stale, g.State(domain.LineKey("cake", 0)))
	assert.Equal(t, domain.Stale, g.State(domain.LineKey("cake", 1)))
	assert.Equal(t, domain.Stale, g.State(domain.DashboardKey))

	assert.Equal(t, domain.Fresh, g.State(domain.IngredientKey("flour")))
	assert.Equal(t, domain.Fresh, g.State(domain.IngredientKey("eggs")))
	assert.Equal(t, domain.Fresh, g.State(domain.ProductKey("cookie")))
	assertNoFreshOverStale(t, g)
}

func TestGraph_OnRecipeChange_Wildcard(t *testing.T) {
	g := bakery(t)

	g.OnRecipeChange()

	assert.Equal(t, domain.Stale, g.State(domain.ProductKey("cake")))
	assert.Equal(t, domain.Stale, g.State(domain.ProductKey("cookie")))
	assert.Equal(t, domain.Stale, g.State(domain.LineKey("cookie", 0)))
	for _, key := range g.Keys(domain.KindIngredient) {
		assert.Equal(t, domain.Fresh, g.State(key), key.String())
	}
}

func TestGraph_OnProductChange(t *testing.T) {
	g := invalidation.New(nil)
	// A view stored without a product dependency is still reached by the product change.
	store(t, g, domain.ProductViewKey("cake"), "view")
	store(t, g, domain.ProductKey("cookie"), 1)

	g.OnProductChange("cake")

	assert.Equal(t, domain.Stale, g.State(domain.ProductViewKey("cake")))
	assert.Equal(t, domain.Stale, g.State(domain.ProductKey("cake")))
	assert.Equal(t, domain.Fresh, g.State(domain.ProductKey("cookie")))
}

func TestGraph_OnFixedCostChange(t *testing.T) {
	g := bakery(t)

	g.OnFixedCostChange()

	assert.Equal(t, domain.Stale, g.State(domain.FixedTotalKey))
	assert.Equal(t, domain.Stale, g.State(domain.LaborRateKey))
	assert.Equal(t, domain.Stale, g.State(domain.ProductViewKey("cake")))
	assert.Equal(t, domain.Stale, g.State(domain.DashboardKey))

	assert.Equal(t, domain.Fresh, g.State(domain.WorkingHoursKey))
	for _, kind := range []domain.EntityKind{domain.KindIngredient, domain.KindLine, domain.KindProduct} {
		for _, key := range g.Keys(kind) {
			assert.Equal(t, domain.Fresh, g.State(key), key.String())
		}
	}
	assertNoFreshOverStale(t, g)
}

func TestGraph_OnWorkConfigChange(t *testing.T) {
	g := bakery(t)

	g.OnWorkConfigChange()

	assert.Equal(t, domain.Stale, g.State(domain.WorkingHoursKey))
	assert.Equal(t, domain.Stale, g.State(domain.LaborRateKey))
	assert.Equal(t, domain.Stale, g.State(domain.ProductViewKey("cookie")))
	assert.Equal(t, domain.Stale, g.State(domain.DashboardKey))
	assert.Equal(t, domain.Fresh, g.State(domain.FixedTotalKey))
	assert.Equal(t, domain.Fresh, g.State(domain.ProductKey("cookie")))
	assertNoFreshOverStale(t, g)
}

func TestGraph_OnGroupingChange(t *testing.T) {
	g := bakery(t)

	g.OnGroupingChange()

	for _, e := range g.Snapshot() {
		want := domain.Fresh
		if e.Key == domain.DashboardKey {
			want = domain.Stale
		}
		assert.Equal(t, want, e.State, e.Key.String())
	}
}

func TestGraph_FullRecalculation(t *testing.T) {
	g := bakery(t)
	g.OnIngredientChange("sugar")

	g.FullRecalculation()

	snapshot := g.Snapshot()
	require.NotEmpty(t, snapshot)
	for _, e := range snapshot {
		assert.Equal(t, domain.Stale, e.State, e.Key.String())
	}
}

func TestGraph_UnknownKeyCreatedStale(t *testing.T) {
	g := invalidation.New(nil)

	g.OnIngredientChange("ghost")

	assert.Equal(t, domain.Stale, g.State(domain.IngredientKey("ghost")))
	assert.Equal(t, domain.Stale, g.State(domain.DashboardKey))
	assert.Equal(t, domain.Uninitialized, g.State(domain.IngredientKey("other")))
}

func TestGraph_IdempotentInvalidation(t *testing.T) {
	g := bakery(t)
	var events []domain.Invalidation
	cancel := g.Subscribe(func(ev domain.Invalidation) { events = append(events, ev) })
	defer cancel()

	g.OnIngredientChange("flour")
	g.OnIngredientChange("flour")

	require.Len(t, events, 2)
	assert.Equal(t, domain.CauseIngredientChange, events[0].Cause)
	assert.Equal(t, []string{"flour"}, events[0].IDs)
	assert.Equal(t, []domain.CacheKey{
		domain.DashboardKey,
		domain.IngredientKey("flour"),
		domain.LineKey("cake", 0),
		domain.ProductKey("cake"),
		domain.ProductViewKey("cake"),
	}, events[0].Keys)
	assert.Empty(t, events[1].Keys)
}

func TestGraph_StoreRejectedAfterInvalidation(t *testing.T) {
	g := invalidation.New(nil)
	key := domain.IngredientKey("flour")

	e, _ := g.Lookup(key)
	g.OnIngredientChange("flour")

	assert.False(t, g.Store(key, e.Generation, 1, nil))
	assert.Equal(t, domain.Stale, g.State(key))

	e, _ = g.Lookup(key)
	assert.True(t, g.Store(key, e.Generation, 2, nil))
	assert.Equal(t, domain.Fresh, g.State(key))
}

func TestGraph_StoreRejectedOverStaleDependency(t *testing.T) {
	g := invalidation.New(nil)
	g.OnIngredientChange("flour")

	e, _ := g.Lookup(domain.LineKey("cake", 0))
	assert.False(t, g.Store(domain.LineKey("cake", 0), e.Generation, 1, []domain.CacheKey{domain.IngredientKey("flour")}))
	assert.False(t, g.Store(domain.LineKey("cake", 0), e.Generation, 1, []domain.CacheKey{domain.IngredientKey("unknown")}))
	assert.Equal(t, domain.Uninitialized, g.State(domain.LineKey("cake", 0)))
}

func TestGraph_StoreReplacesEdges(t *testing.T) {
	g := bakery(t)

	// cake no longer uses flour.
	g.OnRecipeChange("cake")
	store(t, g, domain.LineKey("cake", 1), 2, domain.IngredientKey("eggs"))
	store(t, g, domain.ProductKey("cake"), 2, domain.LineKey("cake", 1))

	g.OnIngredientChange("flour")
	assert.Equal(t, domain.Stale, g.State(domain.LineKey("cake", 0)))
	assert.Equal(t, domain.Fresh, g.State(domain.LineKey("cake", 1)))
	assert.Equal(t, domain.Fresh, g.State(domain.ProductKey("cake")))
	assertNoFreshOverStale(t, g)
}

func TestGraph_Unsubscribe(t *testing.T) {
	g := invalidation.New(nil)
	calls := 0
	cancel := g.Subscribe(func(domain.Invalidation) { calls++ })

	g.OnFixedCostChange()
	cancel()
	cancel()
	g.OnFixedCostChange()

	assert.Equal(t, 1, calls)
}

func TestGraph_Metrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	metrics := mocks.NewMockMetrics(ctrl)
	g := invalidation.New(metrics)

	metrics.EXPECT().Invalidated(domain.CauseWorkConfigChange, 3)
	metrics.EXPECT().Rejected(domain.KindLaborRate)

	e, _ := g.Lookup(domain.LaborRateKey)
	g.OnWorkConfigChange()
	assert.False(t, g.Store(domain.LaborRateKey, e.Generation, 1, nil))
}

func TestGraph_ConcurrentReadsAndInvalidations(t *testing.T) {
	g := invalidation.New(nil)
	var wg sync.WaitGroup

	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				ing := domain.IngredientKey(fmt.Sprintf("ing-%d", i%5))
				line := domain.LineKey(fmt.Sprintf("p-%d", i%3), w)
				if e, ok := g.Lookup(ing); !ok {
					g.Store(ing, e.Generation, i, nil)
				}
				e, _ := g.Lookup(line)
				g.Store(line, e.Generation, i, []domain.CacheKey{ing})
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := range 100 {
			switch i % 3 {
			case 0:
				g.OnIngredientChange(fmt.Sprintf("ing-%d", i%5))
			case 1:
				g.OnRecipeChange()
			default:
				g.FullRecalculation()
			}
		}
	}()
	wg.Wait()

	assertNoFreshOverStale(t, g)
}
