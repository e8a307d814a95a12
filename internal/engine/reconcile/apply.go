package reconcile

import "go.trai.ch/costwise/internal/core/ports"

// Apply issues the narrowest invalidation calls covering changes.
// Unit table changes fall back to a full recalculation.
// Display changes invalidate nothing since currency and alert thresholds are read on every render.
func Apply(inv ports.Invalidator, changes Changes) {
	if changes.Units {
		inv.FullRecalculation()
		return
	}

	if ids := changes.Ingredients.All(); len(ids) > 0 {
		inv.OnIngredientChange(ids...)
	}
	if len(changes.Recipes) > 0 {
		inv.OnRecipeChange(changes.Recipes...)
	}

	switch {
	case changes.Margin:
		// Every view uses the default margin.
		inv.OnProductChange()
	case !changes.Products.Empty():
		inv.OnProductChange(changes.Products.All()...)
	}

	if changes.FixedCosts {
		inv.OnFixedCostChange()
	}
	if changes.WorkConfig || changes.Labor {
		inv.OnWorkConfigChange()
	}
	if changes.Grouping {
		inv.OnGroupingChange()
	}
}
