package domain

import (
	"github.com/shopspring/decimal"
	"go.trai.ch/zerr"
)

var (
	hundred       = decimal.NewFromInt(100)
	minutesInHour = decimal.NewFromInt(60)
)

// Calculator computes ingredient, recipe line and product costs.
// It never rounds; rounding belongs to presentation.
type Calculator struct {
	units *ConversionTable
}

// NewCalculator creates a Calculator converting with the given table.
func NewCalculator(units *ConversionTable) *Calculator {
	return &Calculator{units: units}
}

// Units returns the conversion table used by the calculator.
func (c *Calculator) Units() *ConversionTable {
	return c.units
}

// UnitCost returns the price of one unit of the ingredient's unit.
func (c *Calculator) UnitCost(ing Ingredient) (decimal.Decimal, error) {
	if !ing.Quantity.IsPositive() {
		err := zerr.With(ErrInvalidQuantity, "ingredient", ing.ID)
		return decimal.Zero, zerr.With(err, "quantity", ing.Quantity.String())
	}
	return ing.Price.Div(ing.Quantity), nil
}

// LineCost returns the cost of a recipe line.
// The line quantity is converted into the ingredient's unit exactly once.
func (c *Calculator) LineCost(ing Ingredient, line RecipeLine) (decimal.Decimal, error) {
	if !line.Quantity.IsPositive() {
		err := zerr.With(ErrInvalidQuantity, "ingredient", line.IngredientID)
		return decimal.Zero, zerr.With(err, "quantity", line.Quantity.String())
	}

	unitCost, err := c.UnitCost(ing)
	if err != nil {
		return decimal.Zero, err
	}

	qty, err := c.units.Convert(line.Quantity, line.Unit, ing.Unit)
	if err != nil {
		return decimal.Zero, zerr.With(err, "ingredient", ing.ID)
	}
	return unitCost.Mul(qty), nil
}

// ProductCost returns the summed cost of every line of the product.
// It fails on the first line whose cost is undefined.
func (c *Calculator) ProductCost(p Product, ingredientsByID map[string]Ingredient) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, line := range p.Lines {
		ing, ok := ingredientsByID[line.IngredientID]
		if !ok {
			err := zerr.With(ErrIngredientNotFound, "ingredient", line.IngredientID)
			return decimal.Zero, zerr.With(err, "product", p.ID)
		}
		cost, err := c.LineCost(ing, line)
		if err != nil {
			return decimal.Zero, zerr.With(err, "product", p.ID)
		}
		total = total.Add(cost)
	}
	return total, nil
}

// Overhead returns the fixed and labor cost carried by one unit of the product.
func (c *Calculator) Overhead(rates Rates, p Product) (decimal.Decimal, error) {
	yield, err := productYield(p)
	if err != nil {
		return decimal.Zero, err
	}
	perHour := rates.FixedPerHour.Add(rates.LaborPerHour)
	return perHour.Mul(p.PrepMinutes).Div(minutesInHour).Div(yield), nil
}

// Pricing is the full cost and margin breakdown of one product unit.
type Pricing struct {
	// BatchCost is the ingredient cost of one batch.
	BatchCost decimal.Decimal
	// IngredientCost is BatchCost divided by the yield.
	IngredientCost decimal.Decimal
	Overhead       decimal.Decimal
	// UnitCost is IngredientCost plus Overhead.
	UnitCost decimal.Decimal
	// Margin is the realized margin on the sale price when one is set,
	// otherwise the target margin.
	Margin         decimal.Decimal
	SuggestedPrice decimal.Decimal
	SalePrice      decimal.NullDecimal
}

// Price combines a batch cost and a unit overhead into a Pricing.
// defaultMargin applies when the product has no target margin.
func (c *Calculator) Price(p Product, batchCost, overhead, defaultMargin decimal.Decimal) (Pricing, error) {
	yield, err := productYield(p)
	if err != nil {
		return Pricing{}, err
	}

	target := defaultMargin
	if p.TargetMargin.Valid {
		target = p.TargetMargin.Decimal
	}

	ingredientCost := batchCost.Div(yield)
	unitCost := ingredientCost.Add(overhead)

	suggested, err := SuggestedPrice(unitCost, target)
	if err != nil {
		return Pricing{}, zerr.With(err, "product", p.ID)
	}

	margin := target
	if p.SalePrice.Valid && p.SalePrice.Decimal.IsPositive() {
		margin = Margin(unitCost, p.SalePrice.Decimal)
	}

	return Pricing{
		BatchCost:      batchCost,
		IngredientCost: ingredientCost,
		Overhead:       overhead,
		UnitCost:       unitCost,
		Margin:         margin,
		SuggestedPrice: suggested,
		SalePrice:      p.SalePrice,
	}, nil
}

// Margin returns the profit margin on the sale price as a percentage.
func Margin(cost, sale decimal.Decimal) decimal.Decimal {
	if sale.IsZero() {
		return decimal.Zero
	}
	return sale.Sub(cost).Div(sale).Mul(hundred)
}

// SuggestedPrice returns the sale price that yields margin percent on cost.
func SuggestedPrice(cost, margin decimal.Decimal) (decimal.Decimal, error) {
	if margin.GreaterThanOrEqual(hundred) {
		return decimal.Zero, zerr.With(ErrInvalidMargin, "margin", margin.String())
	}
	return cost.Div(decimal.NewFromInt(1).Sub(margin.Div(hundred))), nil
}

func productYield(p Product) (decimal.Decimal, error) {
	if p.Yield.IsZero() {
		return decimal.NewFromInt(1), nil
	}
	if p.Yield.IsNegative() {
		err := zerr.With(ErrInvalidQuantity, "product", p.ID)
		return decimal.Zero, zerr.With(err, "yield", p.Yield.String())
	}
	return p.Yield, nil
}
