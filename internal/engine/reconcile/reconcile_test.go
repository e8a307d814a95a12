package reconcile_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/costwise/internal/core/domain"
	"go.trai.ch/costwise/internal/core/ports/mocks"
	"go.trai.ch/costwise/internal/engine/invalidation"
	"go.trai.ch/costwise/internal/engine/reconcile"
	"go.uber.org/mock/gomock"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func catalog() *domain.Catalog {
	cfg := domain.WorkingDaysConfig{HoursPerDay: dec("8")}
	cfg.Days[time.Monday] = true
	return &domain.Catalog{
		Ingredients: []domain.Ingredient{
			{ID: "flour", Name: "Flour", Price: dec("10"), Quantity: dec("1"), Unit: "kg"},
			{ID: "eggs", Name: "Eggs", Price: dec("9"), Quantity: dec("12"), Unit: "un"},
		},
		Products: []domain.Product{
			{ID: "cake", Name: "Cake", Lines: []domain.RecipeLine{{IngredientID: "flour", Quantity: dec("500"), Unit: "g"}}},
			{ID: "pie", Name: "Pie", Lines: []domain.RecipeLine{{IngredientID: "eggs", Quantity: dec("2"), Unit: "un"}}},
		},
		FixedCosts:  []domain.FixedCost{{ID: "rent", Value: dec("3000"), Recurrence: domain.RecurrenceMonthly, Active: true}},
		WorkingDays: cfg,
		Settings:    domain.Settings{DefaultMargin: dec("30"), MonthlyLabor: dec("2000")},
		Year:        2026,
	}
}

func TestDiff_Identical(t *testing.T) {
	c := reconcile.Diff(catalog(), catalog())

	assert.True(t, c.Empty())
	assert.Equal(t, "no changes", c.String())
}

func TestDiff_EquivalentDecimalsAndUnits(t *testing.T) {
	next := catalog()
	next.Ingredients[0].Price = dec("10.00")
	next.Ingredients[0].Unit = " KG"

	assert.True(t, reconcile.Diff(catalog(), next).Empty())
}

func TestDiff_Ingredients(t *testing.T) {
	next := catalog()
	next.Ingredients[0].Price = dec("12")
	next.Ingredients = append(next.Ingredients[:1], domain.Ingredient{ID: "milk", Price: dec("4"), Quantity: dec("1"), Unit: "l"})

	c := reconcile.Diff(catalog(), next)

	assert.Equal(t, []string{"milk"}, c.Ingredients.Added)
	assert.Equal(t, []string{"flour"}, c.Ingredients.Changed)
	assert.Equal(t, []string{"eggs"}, c.Ingredients.Removed)
	require.Len(t, c.Prices, 1)
	assert.Equal(t, "flour", c.Prices[0].IngredientID)

	at := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	changes := c.PriceChanges(at)
	require.Len(t, changes, 1)
	assert.True(t, dec("10").Equal(changes[0].OldPrice))
	assert.True(t, dec("12").Equal(changes[0].NewPrice))
	assert.Equal(t, at, changes[0].ChangedAt)
}

func TestDiff_RecipeVersusProduct(t *testing.T) {
	next := catalog()
	next.Products[0].Lines[0].Quantity = dec("600")
	next.Products[1].Name = "Egg Pie"

	c := reconcile.Diff(catalog(), next)

	assert.Equal(t, []string{"cake"}, c.Recipes)
	assert.Equal(t, []string{"pie"}, c.Products.Changed)
	assert.True(t, c.Ingredients.Empty())
}

func TestDiff_RecipeAndProductTogether(t *testing.T) {
	next := catalog()
	next.Products[0].Lines[0].Quantity = dec("600")
	next.Products[0].SalePrice = decimal.NewNullDecimal(dec("20"))

	c := reconcile.Diff(catalog(), next)

	assert.Empty(t, c.Recipes, "a product change already covers the recipe")
	assert.Equal(t, []string{"cake"}, c.Products.Changed)
}

func TestDiff_Settings(t *testing.T) {
	next := catalog()
	next.FixedCosts[0].Active = false
	next.WorkingDays.Days[time.Tuesday] = true
	next.Settings.MonthlyLabor = dec("2500")

	c := reconcile.Diff(catalog(), next)

	assert.True(t, c.FixedCosts)
	assert.True(t, c.WorkConfig)
	assert.True(t, c.Labor)
	assert.False(t, c.Margin)
	assert.False(t, c.Grouping)
	assert.False(t, c.Display)
	assert.False(t, c.Units)
	assert.Equal(t, "fixed costs; labor; working days", c.String())
}

func TestApply_Granular(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := mocks.NewMockInvalidator(ctrl)

	next := catalog()
	next.Ingredients[1].Price = dec("11")
	next.Products[0].Lines[0].Quantity = dec("600")
	next.FixedCosts[0].Value = dec("3100")

	gomock.InOrder(
		inv.EXPECT().OnIngredientChange("eggs"),
		inv.EXPECT().OnRecipeChange("cake"),
		inv.EXPECT().OnFixedCostChange(),
	)

	reconcile.Apply(inv, reconcile.Diff(catalog(), next))
}

func TestApply_ProductsAndWorkConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := mocks.NewMockInvalidator(ctrl)

	next := catalog()
	next.Products = append(next.Products[:1], domain.Product{ID: "tart", Name: "Tart"})
	next.Year = 2027

	inv.EXPECT().OnProductChange("pie", "tart")
	inv.EXPECT().OnWorkConfigChange()

	reconcile.Apply(inv, reconcile.Diff(catalog(), next))
}

func TestApply_MarginChangeInvalidatesEveryView(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := mocks.NewMockInvalidator(ctrl)

	next := catalog()
	next.Settings.DefaultMargin = dec("35")
	next.Products[1].Category = "pies"

	inv.EXPECT().OnProductChange()

	reconcile.Apply(inv, reconcile.Diff(catalog(), next))
}

func TestApply_FullRecalculation(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := mocks.NewMockInvalidator(ctrl)
	next := catalog()
	next.Units = []domain.CustomFactor{{From: "xicara", To: "ml", Num: dec("240"), Den: dec("1")}}
	next.Ingredients[0].Price = dec("99")

	inv.EXPECT().FullRecalculation()

	reconcile.Apply(inv, reconcile.Diff(catalog(), next))
}

func TestApply_GroupingInvalidatesDashboardOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := mocks.NewMockInvalidator(ctrl)
	next := catalog()
	next.Settings.MarginGrouping = domain.GroupByCategory

	c := reconcile.Diff(catalog(), next)
	assert.True(t, c.Grouping)
	assert.False(t, c.Display)

	inv.EXPECT().OnGroupingChange()

	reconcile.Apply(inv, c)
}

func TestApply_DisplaySettingsKeepCache(t *testing.T) {
	g := invalidation.New(nil)
	for _, key := range []domain.CacheKey{domain.IngredientKey("flour"), domain.LineKey("cake", 0)} {
		e, _ := g.Lookup(key)
		require.True(t, g.Store(key, e.Generation, 1, nil))
	}
	e, _ := g.Lookup(domain.ProductKey("cake"))
	require.True(t, g.Store(domain.ProductKey("cake"), e.Generation, 1, []domain.CacheKey{domain.LineKey("cake", 0)}))

	next := catalog()
	next.Settings.Currency = "EUR"
	next.Settings.HighCostAlertThreshold = dec("5")
	next.Settings.PriceIncreaseAlertThreshold = dec("20")

	c := reconcile.Diff(catalog(), next)
	require.True(t, c.Display)
	assert.False(t, c.Empty())
	reconcile.Apply(g, c)

	for _, key := range []domain.CacheKey{domain.IngredientKey("flour"), domain.LineKey("cake", 0), domain.ProductKey("cake")} {
		assert.Equal(t, domain.Fresh, g.State(key), key.String())
	}
}

func TestApply_NothingToDo(t *testing.T) {
	ctrl := gomock.NewController(t)
	inv := mocks.NewMockInvalidator(ctrl)

	reconcile.Apply(inv, reconcile.Diff(catalog(), catalog()))
}

func TestApply_OnGraph(t *testing.T) {
	g := invalidation.New(nil)
	for _, key := range []domain.CacheKey{domain.IngredientKey("flour"), domain.IngredientKey("eggs")} {
		e, _ := g.Lookup(key)
		require.True(t, g.Store(key, e.Generation, 1, nil))
	}

	next := catalog()
	next.Ingredients[0].Price = dec("11")
	reconcile.Apply(g, reconcile.Diff(catalog(), next))

	assert.Equal(t, domain.Stale, g.State(domain.IngredientKey("flour")))
	assert.Equal(t, domain.Fresh, g.State(domain.IngredientKey("eggs")))
}
