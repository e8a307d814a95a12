package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"go.trai.ch/zerr"
)

var monthsInYear = decimal.NewFromInt(12)

// WorkingDaysSummary is the effective working time of a reference year.
type WorkingDaysSummary struct {
	Year                       int
	AnnualWorkingDays          int
	AnnualWorkingHours         decimal.Decimal
	MonthlyWorkingHours        decimal.Decimal
	AverageWorkingDaysPerMonth decimal.Decimal
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// ValidateWorkingDaysConfig reports whether at least one weekday is enabled.
func ValidateWorkingDaysConfig(cfg WorkingDaysConfig) bool {
	for _, on := range cfg.Days {
		if on {
			return true
		}
	}
	return false
}

// CalculateWorkingDays counts the enabled weekdays of every calendar day in year.
func CalculateWorkingDays(cfg WorkingDaysConfig, year int) (WorkingDaysSummary, error) {
	if !ValidateWorkingDaysConfig(cfg) {
		return WorkingDaysSummary{}, zerr.With(ErrInvalidWorkingDaysConfig, "reason", "no weekday enabled")
	}
	if !cfg.HoursPerDay.IsPositive() {
		return WorkingDaysSummary{}, zerr.With(ErrInvalidWorkingDaysConfig, "hours_per_day", cfg.HoursPerDay.String())
	}

	days := 0
	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for range DaysInYear(year) {
		if cfg.Days[day.Weekday()] {
			days++
		}
		day = day.AddDate(0, 0, 1)
	}

	annualDays := decimal.NewFromInt(int64(days))
	annualHours := annualDays.Mul(cfg.HoursPerDay)
	return WorkingDaysSummary{
		Year:                       year,
		AnnualWorkingDays:          days,
		AnnualWorkingHours:         annualHours,
		MonthlyWorkingHours:        annualHours.Div(monthsInYear),
		AverageWorkingDaysPerMonth: annualDays.Div(monthsInYear),
	}, nil
}

// Rates is the hourly amortization of fixed and labor costs.
type Rates struct {
	MonthlyFixed decimal.Decimal
	MonthlyLabor decimal.Decimal
	MonthlyHours decimal.Decimal
	FixedPerHour decimal.Decimal
	LaborPerHour decimal.Decimal
}

// MonthlyFixedTotal sums the monthly value of every active fixed cost.
func MonthlyFixedTotal(costs []FixedCost) decimal.Decimal {
	total := decimal.Zero
	for _, c := range costs {
		if c.Active {
			total = total.Add(c.MonthlyValue())
		}
	}
	return total
}

// HourlyRates spreads the monthly fixed total and monthly labor over the monthly working hours.
func HourlyRates(monthlyFixed, monthlyLabor decimal.Decimal, summary WorkingDaysSummary) (Rates, error) {
	if !summary.MonthlyWorkingHours.IsPositive() {
		return Rates{}, zerr.With(ErrInvalidWorkingDaysConfig, "monthly_hours", summary.MonthlyWorkingHours.String())
	}
	return Rates{
		MonthlyFixed: monthlyFixed,
		MonthlyLabor: monthlyLabor,
		MonthlyHours: summary.MonthlyWorkingHours,
		FixedPerHour: monthlyFixed.Div(summary.MonthlyWorkingHours),
		LaborPerHour: monthlyLabor.Div(summary.MonthlyWorkingHours),
	}, nil
}
