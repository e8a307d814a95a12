// Package invalidation tracks the validity of derived cost values and cascades staleness
// from changed entities to every value computed from them.
package invalidation

import (
	"cmp"
	"slices"
	"sync"

	"go.trai.ch/costwise/internal/core/domain"
	"go.trai.ch/costwise/internal/core/ports"
)

// Entry is a read-only view of a cache key.
type Entry struct {
	Key   domain.CacheKey
	Value any
	State domain.KeyState
	Deps  []domain.CacheKey
	// Generation is the graph generation observed by the read.
	// Pass it back to Store so that values computed across an invalidation are dropped.
	Generation uint64
}

type node struct {
	value any
	state domain.KeyState
	deps  []domain.CacheKey
}

// Graph is the cost invalidation graph. It implements ports.Invalidator.
type Graph struct {
	mu         sync.RWMutex
	nodes      map[domain.CacheKey]*node
	dependents map[domain.CacheKey]map[domain.CacheKey]struct{}
	generation uint64

	obsMu     sync.Mutex
	observers map[int]func(domain.Invalidation)
	nextObs   int

	metrics ports.Metrics
}

var _ ports.Invalidator = (*Graph)(nil)

// New creates an empty graph. A nil metrics records nothing.
func New(metrics ports.Metrics) *Graph {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Graph{
		nodes:      make(map[domain.CacheKey]*node),
		dependents: make(map[domain.CacheKey]map[domain.CacheKey]struct{}),
		observers:  make(map[int]func(domain.Invalidation)),
		metrics:    metrics,
	}
}

// Lookup returns the entry for key. The value is only returned, and ok is only true, when the key is Fresh.
func (g *Graph) Lookup(key domain.CacheKey) (Entry, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	e := Entry{Key: key, State: domain.Uninitialized, Generation: g.generation}
	n, ok := g.nodes[key]
	if !ok {
		return e, false
	}
	e.State = n.state
	e.Deps = slices.Clone(n.deps)
	if n.state != domain.Fresh {
		return e, false
	}
	e.Value = n.value
	return e, true
}

// State returns the state of key.
func (g *Graph) State(key domain.CacheKey) domain.KeyState {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if n, ok := g.nodes[key]; ok {
		return n.state
	}
	return domain.Uninitialized
}

// Store records value as the Fresh value of key computed from deps.
// It refuses, returning false, when an invalidation happened since generation was read
// or when any dependency is not Fresh. The key's previous dependency edges are replaced.
func (g *Graph) Store(key domain.CacheKey, generation uint64, value any, deps []domain.CacheKey) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if generation != g.generation {
		g.metrics.Rejected(key.Kind)
		return false
	}
	for _, dep := range deps {
		if n, ok := g.nodes[dep]; !ok || n.state != domain.Fresh {
			g.metrics.Rejected(key.Kind)
			return false
		}
	}

	g.removeFromIndex(key)
	for _, dep := range deps {
		set, ok := g.dependents[dep]
		if !ok {
			set = make(map[domain.CacheKey]struct{})
			g.dependents[dep] = set
		}
		set[key] = struct{}{}
	}

	g.nodes[key] = &node{value: value, state: domain.Fresh, deps: slices.Clone(deps)}
	return true
}

// removeFromIndex removes every reverse edge pointing at key.
func (g *Graph) removeFromIndex(key domain.CacheKey) {
	n, ok := g.nodes[key]
	if !ok {
		return
	}
	for _, dep := range n.deps {
		if set, ok := g.dependents[dep]; ok {
			delete(set, key)
			if len(set) == 0 {
				delete(g.dependents, dep)
			}
		}
	}
}

// Keys returns every known key of kind, sorted by ID.
func (g *Graph) Keys(kind domain.EntityKind) []domain.CacheKey {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.keysLocked(kind)
}

func (g *Graph) keysLocked(kind domain.EntityKind) []domain.CacheKey {
	var keys []domain.CacheKey
	for k := range g.nodes {
		if k.Kind == kind {
			keys = append(keys, k)
		}
	}
	sortKeys(keys)
	return keys
}

// Snapshot returns every known entry sorted by key.
func (g *Graph) Snapshot() []Entry {
	g.mu.RLock()
	defer g.mu.RUnlock()

	entries := make([]Entry, 0, len(g.nodes))
	for k, n := range g.nodes {
		e := Entry{Key: k, State: n.state, Deps: slices.Clone(n.deps), Generation: g.generation}
		if n.state == domain.Fresh {
			e.Value = n.value
		}
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b Entry) int { return compareKeys(a.Key, b.Key) })
	return entries
}

// Subscribe registers fn to receive every invalidation. The returned func removes it.
func (g *Graph) Subscribe(fn func(domain.Invalidation)) (cancel func()) {
	g.obsMu.Lock()
	defer g.obsMu.Unlock()

	id := g.nextObs
	g.nextObs++
	g.observers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			g.obsMu.Lock()
			defer g.obsMu.Unlock()
			delete(g.observers, id)
		})
	}
}

// OnIngredientChange marks stale the unit cost of each ingredient, every value computed from it
// and the dashboard. No ids marks every known ingredient.
func (g *Graph) OnIngredientChange(ids ...string) {
	g.invalidate(domain.CauseIngredientChange, ids, func() []domain.CacheKey {
		if len(ids) == 0 {
			return g.keysLocked(domain.KindIngredient)
		}
		keys := make([]domain.CacheKey, 0, len(ids))
		for _, id := range ids {
			keys = append(keys, domain.IngredientKey(id))
		}
		return keys
	})
}

// OnRecipeChange marks stale the recipe lines and cost of each product, their dependents
// and the dashboard. Ingredient keys are untouched. No ids marks every known product.
func (g *Graph) OnRecipeChange(ids ...string) {
	g.invalidate(domain.CauseRecipeChange, ids, func() []domain.CacheKey {
		return g.recipeKeysLocked(ids)
	})
}

// OnProductChange is OnRecipeChange plus the product views.
func (g *Graph) OnProductChange(ids ...string) {
	g.invalidate(domain.CauseProductChange, ids, func() []domain.CacheKey {
		keys := g.recipeKeysLocked(ids)
		if len(ids) == 0 {
			return append(keys, g.keysLocked(domain.KindProductView)...)
		}
		for _, id := range ids {
			keys = append(keys, domain.ProductViewKey(id))
		}
		return keys
	})
}

func (g *Graph) recipeKeysLocked(ids []string) []domain.CacheKey {
	if len(ids) == 0 {
		return append(g.keysLocked(domain.KindProduct), g.keysLocked(domain.KindLine)...)
	}
	wanted := make(map[string]struct{}, len(ids))
	keys := make([]domain.CacheKey, 0, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
		keys = append(keys, domain.ProductKey(id))
	}
	for _, line := range g.keysLocked(domain.KindLine) {
		if _, ok := wanted[domain.LineProductID(line)]; ok {
			keys = append(keys, line)
		}
	}
	return keys
}

// OnFixedCostChange marks stale the monthly fixed total, its dependents and the dashboard.
func (g *Graph) OnFixedCostChange() {
	g.invalidate(domain.CauseFixedCostChange, nil, func() []domain.CacheKey {
		return []domain.CacheKey{domain.FixedTotalKey}
	})
}

// OnWorkConfigChange marks stale the working hours, the hourly rates, their dependents and the dashboard.
func (g *Graph) OnWorkConfigChange() {
	g.invalidate(domain.CauseWorkConfigChange, nil, func() []domain.CacheKey {
		return []domain.CacheKey{domain.WorkingHoursKey, domain.LaborRateKey}
	})
}

// OnGroupingChange marks stale the dashboard aggregate only.
func (g *Graph) OnGroupingChange() {
	g.invalidate(domain.CauseGroupingChange, nil, func() []domain.CacheKey { return nil })
}

// FullRecalculation marks every known key stale.
func (g *Graph) FullRecalculation() {
	g.invalidate(domain.CauseFullRecalc, nil, func() []domain.CacheKey {
		keys := make([]domain.CacheKey, 0, len(g.nodes))
		for k := range g.nodes {
			keys = append(keys, k)
		}
		return keys
	})
}

// invalidate marks roots, the dashboard and everything reachable through the reverse index stale.
// roots runs under the write lock.
func (g *Graph) invalidate(cause domain.InvalidationCause, ids []string, roots func() []domain.CacheKey) {
	g.mu.Lock()
	queue := append(roots(), domain.DashboardKey)
	visited := make(map[domain.CacheKey]struct{}, len(queue))
	var changed []domain.CacheKey

	for len(queue) > 0 {
		key := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if _, seen := visited[key]; seen {
			continue
		}
		visited[key] = struct{}{}

		n, ok := g.nodes[key]
		if !ok {
			g.nodes[key] = &node{state: domain.Stale}
			changed = append(changed, key)
		} else if n.state != domain.Stale {
			n.state = domain.Stale
			n.value = nil
			changed = append(changed, key)
		}

		for dependent := range g.dependents[key] {
			queue = append(queue, dependent)
		}
	}
	g.generation++
	g.mu.Unlock()

	sortKeys(changed)
	g.metrics.Invalidated(cause, len(changed))
	g.publish(domain.Invalidation{Cause: cause, IDs: slices.Clone(ids), Keys: changed})
}

func (g *Graph) publish(ev domain.Invalidation) {
	g.obsMu.Lock()
	ids := make([]int, 0, len(g.observers))
	for id := range g.observers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func(domain.Invalidation), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, g.observers[id])
	}
	g.obsMu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}

func compareKeys(a, b domain.CacheKey) int {
	if c := cmp.Compare(a.Kind, b.Kind); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

func sortKeys(keys []domain.CacheKey) {
	slices.SortFunc(keys, compareKeys)
}

type nopMetrics struct{}

func (nopMetrics) Invalidated(domain.InvalidationCause, int) {}
func (nopMetrics) Hit(domain.EntityKind)                     {}
func (nopMetrics) Miss(domain.EntityKind)                    {}
func (nopMetrics) Rejected(domain.EntityKind)                {}
func (nopMetrics) Failed(domain.EntityKind)                  {}
