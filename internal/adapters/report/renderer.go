// Package report renders cost results as terminal text. Presentation rounding happens here only.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/shopspring/decimal"
	"go.trai.ch/costwise/internal/core/domain"
	"go.trai.ch/costwise/internal/engine/dashboard"
	"go.trai.ch/costwise/internal/ui/output"
	"go.trai.ch/costwise/internal/ui/style"
	"go.trai.ch/zerr"
)

const (
	moneyPlaces    = 2
	percentPlaces  = 1
	quantityPlaces = 4
	labelWidth     = 17
)

// Renderer writes reports to a writer.
type Renderer struct {
	w        io.Writer
	lg       *lipgloss.Renderer
	currency string
}

// New creates a Renderer on w. Currency prefixes money values when set.
func New(w io.Writer, currency string) *Renderer {
	return &Renderer{
		w:        w,
		lg:       lipgloss.NewRenderer(w, termenv.WithProfile(output.ProfileFor(w))),
		currency: currency,
	}
}

// page buffers one report and writes it in a single call.
type page struct {
	r *Renderer
	b strings.Builder
}

func (r *Renderer) page() *page {
	return &page{r: r}
}

func (p *page) heading(title string) {
	if p.b.Len() > 0 {
		p.b.WriteString("\n")
	}
	p.b.WriteString(p.r.lg.NewStyle().Bold(true).Foreground(style.Iris).Render(title) + "\n")
}

func (p *page) row(label, value string) {
	fmt.Fprintf(&p.b, "  %-*s%s\n", labelWidth, label, value)
}

func (p *page) line(color lipgloss.Color, text string) {
	p.b.WriteString("  " + p.r.lg.NewStyle().Foreground(color).Render(text) + "\n")
}

func (p *page) flush() error {
	if _, err := io.WriteString(p.r.w, p.b.String()); err != nil {
		return zerr.Wrap(err, domain.ErrReportFailed.Error())
	}
	return nil
}

// Money formats v with two decimals and the currency prefix.
func (r *Renderer) Money(v decimal.Decimal) string {
	s := v.StringFixed(moneyPlaces)
	if r.currency == "" {
		return s
	}
	return r.currency + " " + s
}

// Percent formats v with one decimal.
func Percent(v decimal.Decimal) string {
	return v.StringFixed(percentPlaces) + "%"
}

// Quantity rounds v to four decimals and drops trailing zeros.
func Quantity(v decimal.Decimal) string {
	return v.Round(quantityPlaces).String()
}

// Products writes the pricing breakdown of every product.
func (r *Renderer) Products(results []dashboard.ProductResult) error {
	p := r.page()
	for _, res := range results {
		p.heading(fmt.Sprintf("%s (%s)", res.Product.Name, res.Product.ID))
		if !res.Available() {
			p.line(style.Red, style.Cross+" unavailable: "+res.Err.Error())
			continue
		}

		pr := res.Pricing
		p.row("batch cost", r.Money(pr.BatchCost))
		p.row("ingredient cost", r.Money(pr.IngredientCost))
		p.row("overhead", r.Money(pr.Overhead))
		p.row("unit cost", r.Money(pr.UnitCost))
		p.row("suggested price", r.Money(pr.SuggestedPrice))
		if pr.SalePrice.Valid {
			p.row("sale price", r.Money(pr.SalePrice.Decimal))
		} else {
			p.row("sale price", "-")
		}
		p.row("margin", Percent(pr.Margin))
	}
	return p.flush()
}

// Dashboard writes the summary followed by the alerts.
func (r *Renderer) Dashboard(s dashboard.Summary, alerts []domain.Alert) error {
	p := r.page()
	p.heading("Dashboard")
	p.row("ingredients", fmt.Sprint(s.IngredientCount))
	products := fmt.Sprint(s.ProductCount)
	if s.UnavailableCount > 0 {
		products += fmt.Sprintf(" (%d unavailable)", s.UnavailableCount)
	}
	p.row("products", products)
	p.row("average margin", fmt.Sprintf("%s by %s", Percent(s.AverageMargin), s.Grouping))
	p.row("monthly fixed", r.Money(s.MonthlyFixed))
	p.row("changes today", fmt.Sprint(s.ChangesToday))

	if len(s.Groups) > 0 {
		p.heading("Margins by category")
		for _, g := range s.Groups {
			p.row(g.Category, fmt.Sprintf("%s (%d)", Percent(g.AverageMargin), g.Products))
		}
	}

	p.heading("Alerts")
	if len(alerts) == 0 {
		p.line(style.Green, style.Check+" none")
	}
	for _, a := range alerts {
		p.line(style.SeverityColor(a.Severity), r.alertText(a))
	}
	return p.flush()
}

func (r *Renderer) alertText(a domain.Alert) string {
	var detail string
	switch a.Kind {
	case domain.AlertPriceIncrease:
		detail = fmt.Sprintf("price up %s, threshold %s", Percent(a.Value), Percent(a.Threshold))
	default:
		detail = fmt.Sprintf("unit cost %s, threshold %s", r.Money(a.Value), r.Money(a.Threshold))
	}
	return fmt.Sprintf("%s [%s] %s: %s", style.Dot, a.Severity, a.Subject, detail)
}

// Conversion writes a single unit conversion.
func (r *Renderer) Conversion(q decimal.Decimal, from domain.Unit, result decimal.Decimal, to domain.Unit) error {
	p := r.page()
	fmt.Fprintf(&p.b, "%s %s = %s %s\n", Quantity(q), from, Quantity(result), to)
	return p.flush()
}

// Units writes every directed conversion edge of the table.
func (r *Renderer) Units(table *domain.ConversionTable) error {
	p := r.page()
	p.heading("Conversions")
	for _, pair := range table.Pairs() {
		f, ok := table.Factor(pair[0], pair[1])
		if !ok {
			continue
		}
		p.row(fmt.Sprintf("%s -> %s", pair[0], pair[1]), Quantity(f.Value()))
	}
	return p.flush()
}

// WorkingDays writes the working days summary and, when known, the hourly rates.
func (r *Renderer) WorkingDays(s domain.WorkingDaysSummary, rates *domain.Rates) error {
	p := r.page()
	p.heading(fmt.Sprintf("Working days %d", s.Year))
	p.row("working days", fmt.Sprint(s.AnnualWorkingDays))
	p.row("annual hours", Quantity(s.AnnualWorkingHours))
	p.row("monthly hours", s.MonthlyWorkingHours.StringFixed(moneyPlaces))
	p.row("days per month", s.AverageWorkingDaysPerMonth.StringFixed(moneyPlaces))
	if rates != nil {
		p.row("fixed per hour", r.Money(rates.FixedPerHour))
		p.row("labor per hour", r.Money(rates.LaborPerHour))
	}
	return p.flush()
}
