// Package catalog provides the YAML catalog loader for costwise.
package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.trai.ch/costwise/internal/core/domain"
	"go.trai.ch/costwise/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

const defaultHoursPerDay = 8

// Loader implements ports.CatalogLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	// Now supplies the reference year when the catalog does not set one.
	Now func() time.Time
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger, Now: time.Now}
}

// Load discovers the catalog file from cwd and returns the validated catalog.
func (l *Loader) Load(cwd string) (*domain.Catalog, error) {
	path, err := l.DiscoverCatalogPath(cwd)
	if err != nil {
		return nil, err
	}
	return l.LoadFile(path)
}

// DiscoverCatalogPath walks up from cwd until it finds a catalog file.
func (l *Loader) DiscoverCatalogPath(cwd string) (string, error) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.CatalogFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}
	return "", zerr.With(domain.ErrCatalogNotFound, "cwd", cwd)
}

// LoadFile reads and validates the catalog at path.
func (l *Loader) LoadFile(path string) (*domain.Catalog, error) {
	var file Catalogfile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	c, err := l.build(&file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return c, nil
}

func readAndUnmarshalYAML[T any](path string, target *T) error {
	// #nosec G304 -- path is discovered or given by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrCatalogReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrCatalogParseFailed.Error())
	}
	return nil
}

func (l *Loader) build(file *Catalogfile) (*domain.Catalog, error) {
	c := &domain.Catalog{Year: file.Year}
	if c.Year == 0 {
		c.Year = l.Now().Year()
	}

	var err error
	if c.Settings, err = buildSettings(file.Settings); err != nil {
		return nil, zerr.With(err, "section", "settings")
	}
	if c.WorkingDays, err = buildWorkingDays(file.WorkingDays); err != nil {
		return nil, zerr.With(err, "section", "working_days")
	}
	if c.Units, err = buildUnits(file.Units); err != nil {
		return nil, zerr.With(err, "section", "units")
	}
	if c.Ingredients, err = buildIngredients(file.Ingredients); err != nil {
		return nil, zerr.With(err, "section", "ingredients")
	}
	if c.Products, err = buildProducts(file.Products); err != nil {
		return nil, zerr.With(err, "section", "products")
	}
	if c.FixedCosts, err = buildFixedCosts(file.FixedCosts); err != nil {
		return nil, zerr.With(err, "section", "fixed_costs")
	}

	l.warnDanglingLines(c)
	return c, nil
}

// warnDanglingLines reports recipe lines whose ingredient is missing.
// Such products load but have no defined cost.
func (l *Loader) warnDanglingLines(c *domain.Catalog) {
	byID := c.IngredientsByID()
	for _, p := range c.Products {
		for _, line := range p.Lines {
			if _, ok := byID[line.IngredientID]; !ok {
				l.Logger.Warn(fmt.Sprintf("product %s references unknown ingredient %s", p.ID, line.IngredientID))
			}
		}
	}
}

func buildSettings(dto SettingsDTO) (domain.Settings, error) {
	grouping, err := domain.ParseMarginGrouping(dto.MarginGrouping)
	if err != nil {
		return domain.Settings{}, err
	}

	s := domain.Settings{Currency: dto.Currency, MarginGrouping: grouping}
	fields := []struct {
		name   string
		amount Amount
		target *decimal.Decimal
	}{
		{"default_margin", dto.DefaultMargin, &s.DefaultMargin},
		{"monthly_labor", dto.MonthlyLabor, &s.MonthlyLabor},
		{"alerts.price_increase", dto.Alerts.PriceIncrease, &s.PriceIncreaseAlertThreshold},
		{"alerts.high_cost", dto.Alerts.HighCost, &s.HighCostAlertThreshold},
	}
	for _, f := range fields {
		v, err := parseAmount(f.name, f.amount, decimal.Zero)
		if err != nil {
			return domain.Settings{}, err
		}
		if v.IsNegative() {
			return domain.Settings{}, zerr.With(domain.ErrInvalidQuantity, "field", f.name)
		}
		*f.target = v
	}
	if s.DefaultMargin.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return domain.Settings{}, zerr.With(domain.ErrInvalidMargin, "default_margin", s.DefaultMargin.String())
	}
	return s, nil
}

// buildWorkingDays defaults to Monday through Friday, eight hours a day.
// An explicit but invalid schedule loads and fails when hours are computed.
func buildWorkingDays(dto *WorkingDaysDTO) (domain.WorkingDaysConfig, error) {
	var cfg domain.WorkingDaysConfig
	if dto == nil {
		for d := time.Monday; d <= time.Friday; d++ {
			cfg.Days[d] = true
		}
		cfg.HoursPerDay = decimal.NewFromInt(defaultHoursPerDay)
		return cfg, nil
	}

	for _, name := range dto.Days {
		d, err := domain.ParseWeekday(name)
		if err != nil {
			return cfg, err
		}
		cfg.Days[d] = true
	}

	hours, err := parseAmount("hours_per_day", dto.HoursPerDay, decimal.NewFromInt(defaultHoursPerDay))
	if err != nil {
		return cfg, err
	}
	cfg.HoursPerDay = hours
	return cfg, nil
}

func buildUnits(dtos []UnitDTO) ([]domain.CustomFactor, error) {
	units := make([]domain.CustomFactor, 0, len(dtos))
	for i, dto := range dtos {
		from, to := domain.NormalizeUnit(dto.From), domain.NormalizeUnit(dto.To)
		if from == "" || to == "" {
			return nil, zerr.With(zerr.With(domain.ErrMissingID, "field", "from/to"), "index", i)
		}
		num, err := parsePositive("factor", dto.Factor, decimal.Zero)
		if err != nil {
			return nil, zerr.With(err, "from", string(from))
		}
		den, err := parsePositive("per", dto.Per, decimal.NewFromInt(1))
		if err != nil {
			return nil, zerr.With(err, "from", string(from))
		}
		units = append(units, domain.CustomFactor{From: from, To: to, Num: num, Den: den})
	}
	return units, nil
}

func buildIngredients(dtos []IngredientDTO) ([]domain.Ingredient, error) {
	ids := newIDSet()
	ingredients := make([]domain.Ingredient, 0, len(dtos))
	for i, dto := range dtos {
		if err := ids.add(dto.ID, i); err != nil {
			return nil, err
		}

		price, err := parseAmount("price", dto.Price, decimal.Zero)
		if err != nil {
			return nil, zerr.With(err, "ingredient", dto.ID)
		}
		if price.IsNegative() {
			return nil, zerr.With(zerr.With(domain.ErrInvalidQuantity, "field", "price"), "ingredient", dto.ID)
		}
		quantity, err := parsePositive("quantity", dto.Quantity, decimal.NewFromInt(1))
		if err != nil {
			return nil, zerr.With(err, "ingredient", dto.ID)
		}

		ingredients = append(ingredients, domain.Ingredient{
			ID:       dto.ID,
			Name:     nameOr(dto.Name, dto.ID),
			Price:    price,
			Quantity: quantity,
			Unit:     domain.NormalizeUnit(dto.Unit),
		})
	}
	return ingredients, nil
}

func buildProducts(dtos []ProductDTO) ([]domain.Product, error) {
	ids := newIDSet()
	products := make([]domain.Product, 0, len(dtos))
	for i := range dtos {
		dto := &dtos[i]
		if err := ids.add(dto.ID, i); err != nil {
			return nil, err
		}

		p, err := buildProduct(dto)
		if err != nil {
			return nil, zerr.With(err, "product", dto.ID)
		}
		products = append(products, p)
	}
	return products, nil
}

func buildProduct(dto *ProductDTO) (domain.Product, error) {
	p := domain.Product{ID: dto.ID, Name: nameOr(dto.Name, dto.ID), Category: dto.Category}

	var err error
	if p.Yield, err = parsePositive("yield", dto.Yield, decimal.NewFromInt(1)); err != nil {
		return p, err
	}
	if p.PrepMinutes, err = parseAmount("prep_minutes", dto.PrepMinutes, decimal.Zero); err != nil {
		return p, err
	}
	if p.PrepMinutes.IsNegative() {
		return p, zerr.With(domain.ErrInvalidQuantity, "field", "prep_minutes")
	}
	if p.SalePrice, err = parseOptional("sale_price", dto.SalePrice); err != nil {
		return p, err
	}
	if p.TargetMargin, err = parseOptional("target_margin", dto.TargetMargin); err != nil {
		return p, err
	}

	p.Lines = make([]domain.RecipeLine, 0, len(dto.Recipe))
	for i, line := range dto.Recipe {
		if line.Ingredient == "" {
			return p, zerr.With(zerr.With(domain.ErrMissingID, "field", "ingredient"), "line", i)
		}
		quantity, err := parsePositive("quantity", line.Quantity, decimal.Zero)
		if err != nil {
			return p, zerr.With(err, "line", i)
		}
		p.Lines = append(p.Lines, domain.RecipeLine{
			IngredientID: line.Ingredient,
			Quantity:     quantity,
			Unit:         domain.NormalizeUnit(line.Unit),
		})
	}
	return p, nil
}

func buildFixedCosts(dtos []FixedCostDTO) ([]domain.FixedCost, error) {
	ids := newIDSet()
	costs := make([]domain.FixedCost, 0, len(dtos))
	for i, dto := range dtos {
		if err := ids.add(dto.ID, i); err != nil {
			return nil, err
		}

		value, err := parseAmount("value", dto.Value, decimal.Zero)
		if err != nil {
			return nil, zerr.With(err, "fixed_cost", dto.ID)
		}
		if value.IsNegative() {
			return nil, zerr.With(zerr.With(domain.ErrInvalidQuantity, "field", "value"), "fixed_cost", dto.ID)
		}

		recurrence := domain.RecurrenceMonthly
		if dto.Recurrence != "" {
			if recurrence, err = domain.ParseRecurrence(dto.Recurrence); err != nil {
				return nil, zerr.With(err, "fixed_cost", dto.ID)
			}
		}

		costs = append(costs, domain.FixedCost{
			ID:         dto.ID,
			Name:       nameOr(dto.Name, dto.ID),
			Category:   dto.Category,
			Value:      value,
			Recurrence: recurrence,
			Active:     dto.Active == nil || *dto.Active,
		})
	}
	return costs, nil
}

type idSet map[string]int

func newIDSet() idSet {
	return make(idSet)
}

func (s idSet) add(id string, index int) error {
	if strings.TrimSpace(id) == "" {
		return zerr.With(domain.ErrMissingID, "index", index)
	}
	if first, ok := s[id]; ok {
		err := zerr.With(domain.ErrDuplicateID, "id", id)
		err = zerr.With(err, "first_occurrence", first)
		return zerr.With(err, "duplicate_at", index)
	}
	s[id] = index
	return nil
}

func parseAmount(field string, a Amount, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw := strings.TrimSpace(string(a))
	if raw == "" {
		return fallback, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		err = zerr.With(domain.ErrInvalidDecimal, "field", field)
		return decimal.Zero, zerr.With(err, "value", raw)
	}
	return v, nil
}

func parsePositive(field string, a Amount, fallback decimal.Decimal) (decimal.Decimal, error) {
	v, err := parseAmount(field, a, fallback)
	if err != nil {
		return decimal.Zero, err
	}
	if !v.IsPositive() {
		err := zerr.With(domain.ErrInvalidQuantity, "field", field)
		return decimal.Zero, zerr.With(err, "value", v.String())
	}
	return v, nil
}

func parseOptional(field string, a Amount) (decimal.NullDecimal, error) {
	if strings.TrimSpace(string(a)) == "" {
		return decimal.NullDecimal{}, nil
	}
	v, err := parseAmount(field, a, decimal.Zero)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(v), nil
}

func nameOr(name, id string) string {
	if name == "" {
		return id
	}
	return name
}
