package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/costwise/internal/core/domain"
)

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		value string
		want  domain.Severity
	}{
		{value: "11", want: domain.SeverityLow},
		{value: "15", want: domain.SeverityLow},
		{value: "15.01", want: domain.SeverityMedium},
		{value: "25", want: domain.SeverityMedium},
		{value: "25.5", want: domain.SeverityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.SeverityFor(dec(tt.value), dec("10")))
		})
	}
}

func TestAlertID(t *testing.T) {
	assert.Equal(t, "price-increase:flour", domain.AlertID(domain.AlertPriceIncrease, "flour"))
	assert.Equal(t, "high-cost:cake", domain.AlertID(domain.AlertHighCost, "cake"))
	assert.Equal(t, "medium", domain.SeverityMedium.String())
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "ingredient:flour", domain.IngredientKey("flour").String())
	assert.Equal(t, "dashboard", domain.DashboardKey.String())

	line := domain.LineKey("cake#2", 3)
	assert.Equal(t, "line:cake#2#3", line.String())
	assert.Equal(t, "cake#2", domain.LineProductID(line))
	assert.Equal(t, "stale", domain.Stale.String())
}
