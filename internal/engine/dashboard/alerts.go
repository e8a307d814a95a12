package dashboard

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"go.trai.ch/costwise/internal/core/domain"
)

var hundred = decimal.NewFromInt(100)

// AlertInput is everything EvaluateAlerts reads.
type AlertInput struct {
	Ingredients []domain.Ingredient
	Products    []ProductResult
	Changes     []domain.PriceChange
	Settings    domain.Settings
	Now         time.Time
	// Suppressed holds alert IDs the caller dismissed.
	Suppressed map[string]struct{}
}

// EvaluateAlerts returns the price-increase and high-cost alerts, most severe first.
// Alerts are derived on every call and never cached.
func (a *Aggregator) EvaluateAlerts(in AlertInput) []domain.Alert {
	var alerts []domain.Alert
	alerts = append(alerts, priceIncreaseAlerts(in)...)
	alerts = append(alerts, highCostAlerts(in)...)

	alerts = slices.DeleteFunc(alerts, func(al domain.Alert) bool {
		_, hidden := in.Suppressed[al.ID]
		return hidden
	})
	slices.SortFunc(alerts, func(x, y domain.Alert) int {
		if c := cmp.Compare(y.Severity, x.Severity); c != 0 {
			return c
		}
		return cmp.Compare(x.ID, y.ID)
	})
	return alerts
}

func priceIncreaseAlerts(in AlertInput) []domain.Alert {
	threshold := in.Settings.PriceIncreaseAlertThreshold
	if !threshold.IsPositive() {
		return nil
	}

	names := make(map[string]string, len(in.Ingredients))
	for _, ing := range in.Ingredients {
		names[ing.ID] = ing.Name
	}

	type window struct {
		first, last domain.PriceChange
	}
	since := in.Now.Add(-AlertWindow)
	windows := make(map[string]*window)
	for _, c := range in.Changes {
		if c.ChangedAt.Before(since) || c.ChangedAt.After(in.Now) {
			continue
		}
		w, ok := windows[c.IngredientID]
		if !ok {
			windows[c.IngredientID] = &window{first: c, last: c}
			continue
		}
		if c.ChangedAt.Before(w.first.ChangedAt) {
			w.first = c
		}
		if !c.ChangedAt.Before(w.last.ChangedAt) {
			w.last = c
		}
	}

	var alerts []domain.Alert
	for id, w := range windows {
		base := w.first.OldPrice
		if !base.IsPositive() {
			continue
		}
		pct := w.last.NewPrice.Sub(base).Div(base).Mul(hundred)
		if !pct.GreaterThan(threshold) {
			continue
		}
		subject := names[id]
		if subject == "" {
			subject = id
		}
		alerts = append(alerts, domain.Alert{
			ID:        domain.AlertID(domain.AlertPriceIncrease, id),
			Kind:      domain.AlertPriceIncrease,
			Severity:  domain.SeverityFor(pct, threshold),
			SubjectID: id,
			Subject:   subject,
			Value:     pct,
			Threshold: threshold,
		})
	}
	return alerts
}

func highCostAlerts(in AlertInput) []domain.Alert {
	threshold := in.Settings.HighCostAlertThreshold
	if !threshold.IsPositive() {
		return nil
	}

	var alerts []domain.Alert
	for _, r := range in.Products {
		if !r.Available() || !r.Pricing.UnitCost.GreaterThan(threshold) {
			continue
		}
		subject := r.Product.Name
		if subject == "" {
			subject = r.Product.ID
		}
		alerts = append(alerts, domain.Alert{
			ID:        domain.AlertID(domain.AlertHighCost, r.Product.ID),
			Kind:      domain.AlertHighCost,
			Severity:  domain.SeverityFor(r.Pricing.UnitCost, threshold),
			SubjectID: r.Product.ID,
			Subject:   subject,
			Value:     r.Pricing.UnitCost,
			Threshold: threshold,
		})
	}
	return alerts
}
