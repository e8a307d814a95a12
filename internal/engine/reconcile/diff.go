// Package reconcile compares catalog snapshots and issues the narrowest invalidation calls for the difference.
package reconcile

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/shopspring/decimal"
	"go.trai.ch/costwise/internal/core/domain"
)

// IDChanges lists record IDs that differ between two snapshots. Each list is sorted.
type IDChanges struct {
	Added   []string
	Changed []string
	Removed []string
}

// All returns every ID in the change set, sorted.
func (c IDChanges) All() []string {
	all := slices.Concat(c.Added, c.Changed, c.Removed)
	slices.Sort(all)
	return all
}

// Empty reports whether nothing changed.
func (c IDChanges) Empty() bool {
	return len(c.Added) == 0 && len(c.Changed) == 0 && len(c.Removed) == 0
}

// PriceDelta is a price update of an ingredient present in both snapshots.
type PriceDelta struct {
	IngredientID string
	Old          decimal.Decimal
	New          decimal.Decimal
}

// Changes is the difference between two catalogs.
type Changes struct {
	Ingredients IDChanges
	// Recipes holds products present in both snapshots whose lines changed and nothing else.
	Recipes []string
	// Products holds added, removed and otherwise changed products.
	Products IDChanges
	Prices   []PriceDelta

	FixedCosts bool
	WorkConfig bool
	Labor      bool
	Margin     bool
	// Grouping is set when the dashboard margin grouping changed.
	Grouping bool
	// Display covers settings read on every render: currency and alert thresholds.
	Display bool
	Units   bool
}

// Empty reports whether the catalogs are equivalent.
func (c Changes) Empty() bool {
	return c.Ingredients.Empty() && len(c.Recipes) == 0 && c.Products.Empty() &&
		!c.FixedCosts && !c.WorkConfig && !c.Labor && !c.Margin && !c.Grouping && !c.Display && !c.Units
}

// PriceChanges converts the price deltas into history records stamped with at.
func (c Changes) PriceChanges(at time.Time) []domain.PriceChange {
	out := make([]domain.PriceChange, 0, len(c.Prices))
	for _, p := range c.Prices {
		out = append(out, domain.PriceChange{IngredientID: p.IngredientID, OldPrice: p.Old, NewPrice: p.New, ChangedAt: at})
	}
	return out
}

func (c Changes) String() string {
	var parts []string
	add := func(label string, ids []string) {
		if len(ids) > 0 {
			parts = append(parts, fmt.Sprintf("%s %s", label, strings.Join(ids, ",")))
		}
	}
	add("ingredients", c.Ingredients.All())
	add("recipes", c.Recipes)
	add("products", c.Products.All())
	for label, changed := range map[string]bool{
		"fixed costs":  c.FixedCosts,
		"working days": c.WorkConfig,
		"labor":        c.Labor,
		"margin":       c.Margin,
		"grouping":     c.Grouping,
		"display":      c.Display,
		"units":        c.Units,
	} {
		if changed {
			parts = append(parts, label)
		}
	}
	if len(parts) == 0 {
		return "no changes"
	}
	slices.Sort(parts)
	return strings.Join(parts, "; ")
}

// Diff compares two catalogs. A nil old catalog is treated as empty.
func Diff(oldCat, newCat *domain.Catalog) Changes {
	if oldCat == nil {
		oldCat = &domain.Catalog{}
	}
	if newCat == nil {
		newCat = &domain.Catalog{}
	}

	var c Changes
	c.Ingredients = diffIDs(
		fingerprints(oldCat.Ingredients, func(i domain.Ingredient) string { return i.ID }, ingredientFingerprint),
		fingerprints(newCat.Ingredients, func(i domain.Ingredient) string { return i.ID }, ingredientFingerprint),
	)

	oldPrices := make(map[string]decimal.Decimal, len(oldCat.Ingredients))
	for _, ing := range oldCat.Ingredients {
		oldPrices[ing.ID] = ing.Price
	}
	for _, ing := range newCat.Ingredients {
		if prev, ok := oldPrices[ing.ID]; ok && !prev.Equal(ing.Price) {
			c.Prices = append(c.Prices, PriceDelta{IngredientID: ing.ID, Old: prev, New: ing.Price})
		}
	}
	slices.SortFunc(c.Prices, func(a, b PriceDelta) int { return strings.Compare(a.IngredientID, b.IngredientID) })

	productID := func(p domain.Product) string { return p.ID }
	recipes := diffIDs(
		fingerprints(oldCat.Products, productID, recipeFingerprint),
		fingerprints(newCat.Products, productID, recipeFingerprint),
	)
	c.Products = diffIDs(
		fingerprints(oldCat.Products, productID, productFingerprint),
		fingerprints(newCat.Products, productID, productFingerprint),
	)
	for _, id := range recipes.Changed {
		if !slices.Contains(c.Products.Changed, id) {
			c.Recipes = append(c.Recipes, id)
		}
	}

	c.FixedCosts = fixedCostsFingerprint(oldCat.FixedCosts) != fixedCostsFingerprint(newCat.FixedCosts)
	c.WorkConfig = workConfigFingerprint(oldCat) != workConfigFingerprint(newCat)
	c.Labor = !oldCat.Settings.MonthlyLabor.Equal(newCat.Settings.MonthlyLabor)
	c.Margin = !oldCat.Settings.DefaultMargin.Equal(newCat.Settings.DefaultMargin)
	c.Grouping = oldCat.Settings.MarginGrouping != newCat.Settings.MarginGrouping
	c.Display = displayFingerprint(oldCat.Settings) != displayFingerprint(newCat.Settings)
	c.Units = unitsFingerprint(oldCat.Units) != unitsFingerprint(newCat.Units)
	return c
}

func fingerprints[T any](records []T, id func(T) string, fp func(T) uint64) map[string]uint64 {
	out := make(map[string]uint64, len(records))
	for _, r := range records {
		out[id(r)] = fp(r)
	}
	return out
}

func diffIDs(oldFP, newFP map[string]uint64) IDChanges {
	var c IDChanges
	for id, fp := range newFP {
		prev, ok := oldFP[id]
		switch {
		case !ok:
			c.Added = append(c.Added, id)
		case prev != fp:
			c.Changed = append(c.Changed, id)
		}
	}
	for id := range oldFP {
		if _, ok := newFP[id]; !ok {
			c.Removed = append(c.Removed, id)
		}
	}
	slices.Sort(c.Added)
	slices.Sort(c.Changed)
	slices.Sort(c.Removed)
	return c
}

// digest hashes fields with a zero byte after each one.
type digest struct {
	*xxhash.Digest
}

func newDigest() digest {
	return digest{xxhash.New()}
}

func (d digest) field(s string) digest {
	_, _ = d.WriteString(s)
	_, _ = d.Write([]byte{0})
	return d
}

func (d digest) amount(v decimal.Decimal) digest {
	return d.field(v.String())
}

func (d digest) optionalAmount(v decimal.NullDecimal) digest {
	if !v.Valid {
		return d.field("-")
	}
	return d.amount(v.Decimal)
}

// section closes a group of fields.
func (d digest) section() digest {
	_, _ = d.Write([]byte{0})
	return d
}

func ingredientFingerprint(i domain.Ingredient) uint64 {
	return newDigest().field(i.Name).amount(i.Price).amount(i.Quantity).field(string(domain.NormalizeUnit(string(i.Unit)))).Sum64()
}

func recipeFingerprint(p domain.Product) uint64 {
	d := newDigest()
	for _, line := range p.Lines {
		d = d.field(line.IngredientID).amount(line.Quantity).field(string(domain.NormalizeUnit(string(line.Unit))))
	}
	return d.section().Sum64()
}

func productFingerprint(p domain.Product) uint64 {
	return newDigest().field(p.Name).field(p.Category).amount(p.Yield).amount(p.PrepMinutes).
		optionalAmount(p.SalePrice).optionalAmount(p.TargetMargin).Sum64()
}

func fixedCostsFingerprint(costs []domain.FixedCost) uint64 {
	sorted := slices.Clone(costs)
	slices.SortFunc(sorted, func(a, b domain.FixedCost) int { return strings.Compare(a.ID, b.ID) })
	d := newDigest()
	for _, f := range sorted {
		d = d.field(f.ID).field(f.Name).field(f.Category).amount(f.Value).field(string(f.Recurrence)).
			field(strconv.FormatBool(f.Active)).section()
	}
	return d.Sum64()
}

func workConfigFingerprint(c *domain.Catalog) uint64 {
	d := newDigest()
	for _, on := range c.WorkingDays.Days {
		d = d.field(strconv.FormatBool(on))
	}
	return d.amount(c.WorkingDays.HoursPerDay).field(strconv.Itoa(c.Year)).Sum64()
}

func displayFingerprint(s domain.Settings) uint64 {
	return newDigest().field(s.Currency).
		amount(s.PriceIncreaseAlertThreshold).amount(s.HighCostAlertThreshold).Sum64()
}

func unitsFingerprint(units []domain.CustomFactor) uint64 {
	d := newDigest()
	for _, u := range units {
		d = d.field(string(domain.NormalizeUnit(string(u.From)))).field(string(domain.NormalizeUnit(string(u.To)))).
			amount(u.Num).amount(u.Den).section()
	}
	return d.Sum64()
}
