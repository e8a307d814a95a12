package domain

import (
	"strconv"
	"strings"
)

// EntityKind identifies what a cache key holds.
type EntityKind string

const (
	// KindIngredient holds an ingredient unit cost.
	KindIngredient EntityKind = "ingredient"
	// KindLine holds a recipe line cost.
	KindLine EntityKind = "line"
	// KindProduct holds a product batch cost.
	KindProduct EntityKind = "product"
	// KindProductView holds a product pricing and margin breakdown.
	KindProductView EntityKind = "product_view"
	// KindFixedTotal holds the monthly fixed cost total.
	KindFixedTotal EntityKind = "fixed_total"
	// KindWorkingHours holds the working days summary.
	KindWorkingHours EntityKind = "working_hours"
	// KindLaborRate holds the hourly fixed and labor rates.
	KindLaborRate EntityKind = "labor_rate"
	// KindDashboard holds the dashboard aggregate.
	KindDashboard EntityKind = "dashboard"
)

// CacheKey addresses one derived value. Singleton kinds have an empty ID.
type CacheKey struct {
	Kind EntityKind
	ID   string
}

func (k CacheKey) String() string {
	if k.ID == "" {
		return string(k.Kind)
	}
	return string(k.Kind) + ":" + k.ID
}

// IngredientKey returns the unit cost key of an ingredient.
func IngredientKey(id string) CacheKey { return CacheKey{Kind: KindIngredient, ID: id} }

// LineKey returns the key of the index-th recipe line of a product.
func LineKey(productID string, index int) CacheKey {
	return CacheKey{Kind: KindLine, ID: productID + "#" + strconv.Itoa(index)}
}

// LineProductID returns the product that owns a line key.
func LineProductID(k CacheKey) string {
	if i := strings.LastIndexByte(k.ID, '#'); i >= 0 {
		return k.ID[:i]
	}
	return k.ID
}

// ProductKey returns the batch cost key of a product.
func ProductKey(id string) CacheKey { return CacheKey{Kind: KindProduct, ID: id} }

// ProductViewKey returns the pricing view key of a product.
func ProductViewKey(id string) CacheKey { return CacheKey{Kind: KindProductView, ID: id} }

// Singleton keys.
var (
	FixedTotalKey   = CacheKey{Kind: KindFixedTotal}
	WorkingHoursKey = CacheKey{Kind: KindWorkingHours}
	LaborRateKey    = CacheKey{Kind: KindLaborRate}
	DashboardKey    = CacheKey{Kind: KindDashboard}
)

// KeyState is the validity of a cache key.
type KeyState int

const (
	// Uninitialized keys have never been computed.
	Uninitialized KeyState = iota
	// Fresh keys hold a value computed from Fresh dependencies.
	Fresh
	// Stale keys were invalidated and must be recomputed before use.
	Stale
)

func (s KeyState) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "uninitialized"
	}
}

// InvalidationCause names the mutation that triggered an invalidation.
type InvalidationCause string

const (
	CauseIngredientChange InvalidationCause = "ingredient_change"
	CauseRecipeChange     InvalidationCause = "recipe_change"
	CauseProductChange    InvalidationCause = "product_change"
	CauseFixedCostChange  InvalidationCause = "fixed_cost_change"
	CauseWorkConfigChange InvalidationCause = "work_config_change"
	CauseGroupingChange   InvalidationCause = "grouping_change"
	CauseFullRecalc       InvalidationCause = "full_recalculation"
)

// Invalidation is published after each invalidation call.
type Invalidation struct {
	Cause InvalidationCause
	// IDs are the entity IDs passed by the caller. Empty means every entity of the kind.
	IDs []string
	// Keys are the keys that moved to Stale, sorted.
	Keys []CacheKey
}
