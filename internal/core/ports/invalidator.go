package ports

// Invalidator is the notification surface the mutation layer calls after a successful write.
// Passing no IDs invalidates every entity of the kind. Calls never fail.
//
//go:generate mockgen -source=invalidator.go -destination=mocks/mock_invalidator.go -package=mocks
type Invalidator interface {
	OnIngredientChange(ids ...string)
	OnRecipeChange(ids ...string)
	OnProductChange(ids ...string)
	OnFixedCostChange()
	OnWorkConfigChange()
	OnGroupingChange()
	FullRecalculation()
}
