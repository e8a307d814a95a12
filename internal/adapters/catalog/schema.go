package catalog

// Catalogfile represents the structure of the costwise.yaml file.
type Catalogfile struct {
	Version     string          `yaml:"version"`
	Year        int             `yaml:"year"`
	Settings    SettingsDTO     `yaml:"settings"`
	WorkingDays *WorkingDaysDTO `yaml:"working_days"`
	Units       []UnitDTO       `yaml:"units"`
	Ingredients []IngredientDTO `yaml:"ingredients"`
	Products    []ProductDTO    `yaml:"products"`
	FixedCosts  []FixedCostDTO  `yaml:"fixed_costs"`
}

// SettingsDTO represents the settings section.
type SettingsDTO struct {
	Currency       string    `yaml:"currency"`
	DefaultMargin  Amount    `yaml:"default_margin"`
	MonthlyLabor   Amount    `yaml:"monthly_labor"`
	MarginGrouping string    `yaml:"margin_grouping"`
	Alerts         AlertsDTO `yaml:"alerts"`
}

// AlertsDTO holds the alert thresholds.
type AlertsDTO struct {
	PriceIncrease Amount `yaml:"price_increase"`
	HighCost      Amount `yaml:"high_cost"`
}

// WorkingDaysDTO represents the weekly schedule.
type WorkingDaysDTO struct {
	Days        []string `yaml:"days"`
	HoursPerDay Amount   `yaml:"hours_per_day"`
}

// UnitDTO declares a custom conversion: one From equals Factor To, divided by Per when set.
type UnitDTO struct {
	From   string `yaml:"from"`
	To     string `yaml:"to"`
	Factor Amount `yaml:"factor"`
	Per    Amount `yaml:"per"`
}

// IngredientDTO represents an ingredient entry.
type IngredientDTO struct {
	ID       string `yaml:"id"`
	Name     string `yaml:"name"`
	Price    Amount `yaml:"price"`
	Quantity Amount `yaml:"quantity"`
	Unit     string `yaml:"unit"`
}

// ProductDTO represents a product entry.
type ProductDTO struct {
	ID           string    `yaml:"id"`
	Name         string    `yaml:"name"`
	Category     string    `yaml:"category"`
	Yield        Amount    `yaml:"yield"`
	PrepMinutes  Amount    `yaml:"prep_minutes"`
	SalePrice    Amount    `yaml:"sale_price"`
	TargetMargin Amount    `yaml:"target_margin"`
	Recipe       []LineDTO `yaml:"recipe"`
}

// LineDTO represents one recipe line.
type LineDTO struct {
	Ingredient string `yaml:"ingredient"`
	Quantity   Amount `yaml:"quantity"`
	Unit       string `yaml:"unit"`
}

// FixedCostDTO represents a fixed cost entry.
type FixedCostDTO struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Category   string `yaml:"category"`
	Value      Amount `yaml:"value"`
	Recurrence string `yaml:"recurrence"`
	Active     *bool  `yaml:"active"`
}

// Amount keeps a numeric scalar as written so it can be parsed as an exact decimal.
type Amount string
