package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.trai.ch/zerr"
)

// Ingredient is a purchasable input. Price buys Quantity of Unit.
type Ingredient struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Quantity decimal.Decimal
	Unit     Unit
}

// RecipeLine is one ingredient-quantity entry of a product's composition.
type RecipeLine struct {
	IngredientID string
	Quantity     decimal.Decimal
	Unit         Unit
}

// Product is a composite item sold by the business.
type Product struct {
	ID       string
	Name     string
	Category string
	Lines    []RecipeLine
	// Yield is the number of units produced per batch of Lines.
	Yield decimal.Decimal
	// PrepMinutes is the labor time spent per batch.
	PrepMinutes  decimal.Decimal
	SalePrice    decimal.NullDecimal
	TargetMargin decimal.NullDecimal
}

// Recurrence is the billing period of a fixed cost.
type Recurrence string

const (
	// RecurrenceMonthly is billed every month.
	RecurrenceMonthly Recurrence = "monthly"
	// RecurrenceQuarterly is billed every three months.
	RecurrenceQuarterly Recurrence = "quarterly"
	// RecurrenceYearly is billed once a year.
	RecurrenceYearly Recurrence = "yearly"
)

// ParseRecurrence parses a recurrence name case-insensitively.
func ParseRecurrence(s string) (Recurrence, error) {
	switch r := Recurrence(strings.ToLower(strings.TrimSpace(s))); r {
	case RecurrenceMonthly, RecurrenceQuarterly, RecurrenceYearly:
		return r, nil
	default:
		return "", zerr.With(ErrUnknownRecurrence, "recurrence", s)
	}
}

// FixedCost is a periodic cost amortized over working hours.
type FixedCost struct {
	ID         string
	Name       string
	Category   string
	Value      decimal.Decimal
	Recurrence Recurrence
	Active     bool
}

// MonthlyValue returns the cost normalized to one month.
func (f FixedCost) MonthlyValue() decimal.Decimal {
	switch f.Recurrence {
	case RecurrenceQuarterly:
		return f.Value.Div(decimal.NewFromInt(3))
	case RecurrenceYearly:
		return f.Value.Div(decimal.NewFromInt(12))
	default:
		return f.Value
	}
}

// WorkingDaysConfig is a weekly on/off schedule. Days is indexed by time.Weekday.
type WorkingDaysConfig struct {
	Days        [7]bool
	HoursPerDay decimal.Decimal
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sun":       time.Sunday,
	"mon":       time.Monday,
	"tue":       time.Tuesday,
	"wed":       time.Wednesday,
	"thu":       time.Thursday,
	"fri":       time.Friday,
	"sat":       time.Saturday,
}

// ParseWeekday parses an English weekday name or its three-letter abbreviation.
func ParseWeekday(s string) (time.Weekday, error) {
	d, ok := weekdayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, zerr.With(ErrUnknownWeekday, "weekday", s)
	}
	return d, nil
}

// MarginGrouping selects how the dashboard averages margins.
type MarginGrouping string

const (
	// GroupByProduct averages margins over products.
	GroupByProduct MarginGrouping = "product"
	// GroupByCategory averages each category first, then averages the categories.
	GroupByCategory MarginGrouping = "category"
)

// ParseMarginGrouping parses a grouping name. An empty name selects GroupByProduct.
func ParseMarginGrouping(s string) (MarginGrouping, error) {
	switch g := MarginGrouping(strings.ToLower(strings.TrimSpace(s))); g {
	case "":
		return GroupByProduct, nil
	case GroupByProduct, GroupByCategory:
		return g, nil
	default:
		return "", zerr.With(ErrUnknownGrouping, "grouping", s)
	}
}

// Settings holds margin and alert configuration.
type Settings struct {
	// DefaultMargin is the margin percentage used when a product has no target margin.
	DefaultMargin decimal.Decimal
	// MonthlyLabor is the monthly labor cost spread over working hours.
	MonthlyLabor decimal.Decimal
	// PriceIncreaseAlertThreshold is a percentage. Zero disables the alert.
	PriceIncreaseAlertThreshold decimal.Decimal
	// HighCostAlertThreshold is a unit cost. Zero disables the alert.
	HighCostAlertThreshold decimal.Decimal
	Currency               string
	MarginGrouping         MarginGrouping
}

// PriceChange records an ingredient price update.
type PriceChange struct {
	IngredientID string          `json:"ingredient_id"`
	OldPrice     decimal.Decimal `json:"old_price"`
	NewPrice     decimal.Decimal `json:"new_price"`
	ChangedAt    time.Time       `json:"changed_at"`
}

// CustomFactor is a user-declared direct conversion edge.
type CustomFactor struct {
	From Unit
	To   Unit
	Num  decimal.Decimal
	Den  decimal.Decimal
}

// Catalog is an immutable snapshot of every record the cost engine reads.
type Catalog struct {
	Ingredients []Ingredient
	Products    []Product
	FixedCosts  []FixedCost
	WorkingDays WorkingDaysConfig
	Settings    Settings
	Units       []CustomFactor
	// Year is the reference year for working-days math.
	Year int
}

// IngredientsByID indexes the catalog ingredients.
func (c *Catalog) IngredientsByID() map[string]Ingredient {
	byID := make(map[string]Ingredient, len(c.Ingredients))
	for _, ing := range c.Ingredients {
		byID[ing.ID] = ing
	}
	return byID
}

// Product returns the product with the given ID.
func (c *Catalog) Product(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// ConversionTable returns the default table extended with the catalog's custom factors.
func (c *Catalog) ConversionTable() *ConversionTable {
	t := DefaultConversionTable()
	for _, f := range c.Units {
		t.Register(f.From, f.To, f.Num, f.Den)
	}
	return t
}
