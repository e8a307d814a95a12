// Package dashboard combines resolved product costs into summary statistics and alerts.
package dashboard

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"go.trai.ch/costwise/internal/core/domain"
)

// AlertWindow is the trailing window over which price increases are measured.
const AlertWindow = 7 * 24 * time.Hour

// ProductResult is a product with its resolved pricing, or the error that made its cost unavailable.
type ProductResult struct {
	Product domain.Product
	Pricing domain.Pricing
	Err     error
}

// Available reports whether the product cost could be computed.
func (r ProductResult) Available() bool {
	return r.Err == nil
}

// Input is everything Aggregate reads.
type Input struct {
	IngredientCount int
	Products        []ProductResult
	MonthlyFixed    decimal.Decimal
	Grouping        domain.MarginGrouping
	Changes         []domain.PriceChange
	Now             time.Time
}

// MarginGroup is the average margin of one category.
type MarginGroup struct {
	Category      string
	Products      int
	AverageMargin decimal.Decimal
}

// Summary is the dashboard aggregate.
type Summary struct {
	IngredientCount  int
	ProductCount     int
	UnavailableCount int
	Grouping         domain.MarginGrouping
	AverageMargin    decimal.Decimal
	// Groups is filled when Grouping is GroupByCategory.
	Groups       []MarginGroup
	MonthlyFixed decimal.Decimal
	ChangesToday int
}

// Aggregator builds dashboard summaries and alerts. It holds no state.
type Aggregator struct{}

// New creates an Aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// Aggregate computes the summary. Products whose cost is unavailable are counted but excluded from margins.
func (a *Aggregator) Aggregate(in Input) Summary {
	s := Summary{
		IngredientCount: in.IngredientCount,
		ProductCount:    len(in.Products),
		Grouping:        in.Grouping,
		MonthlyFixed:    in.MonthlyFixed,
		AverageMargin:   decimal.Zero,
		ChangesToday:    ChangesToday(in.Changes, in.Now),
	}
	if s.Grouping == "" {
		s.Grouping = domain.GroupByProduct
	}

	byCategory := make(map[string][]decimal.Decimal)
	var margins []decimal.Decimal
	for _, r := range in.Products {
		if !r.Available() {
			s.UnavailableCount++
			continue
		}
		margins = append(margins, r.Pricing.Margin)
		byCategory[r.Product.Category] = append(byCategory[r.Product.Category], r.Pricing.Margin)
	}

	if s.Grouping == domain.GroupByCategory {
		categoryMeans := make([]decimal.Decimal, 0, len(byCategory))
		for category, ms := range byCategory {
			mean := average(ms)
			categoryMeans = append(categoryMeans, mean)
			s.Groups = append(s.Groups, MarginGroup{Category: category, Products: len(ms), AverageMargin: mean})
		}
		slices.SortFunc(s.Groups, func(a, b MarginGroup) int { return cmp.Compare(a.Category, b.Category) })
		s.AverageMargin = average(categoryMeans)
		return s
	}

	s.AverageMargin = average(margins)
	return s
}

// ChangesToday counts the changes recorded on the calendar day of now, in now's location.
func ChangesToday(changes []domain.PriceChange, now time.Time) int {
	y, m, d := now.Date()
	count := 0
	for _, c := range changes {
		cy, cm, cd := c.ChangedAt.In(now.Location()).Date()
		if cy == y && cm == m && cd == d {
			count++
		}
	}
	return count
}

func average(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return decimal.Sum(values[0], values[1:]...).Div(decimal.NewFromInt(int64(len(values))))
}
