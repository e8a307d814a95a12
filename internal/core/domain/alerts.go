package domain

import "github.com/shopspring/decimal"

// AlertKind is the class of a dashboard alert.
type AlertKind string

const (
	// AlertPriceIncrease fires when an ingredient price rose over the trailing window.
	AlertPriceIncrease AlertKind = "price-increase"
	// AlertHighCost fires when a product unit cost exceeds the threshold.
	AlertHighCost AlertKind = "high-cost"
)

// Severity ranks an alert by how far its value exceeds the threshold.
type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
)

func (s Severity) String() string {
	switch s {
	case SeverityHigh:
		return "high"
	case SeverityMedium:
		return "medium"
	default:
		return "low"
	}
}

var (
	// MediumSeverityMultiplier is the threshold multiple above which an alert is medium.
	MediumSeverityMultiplier = decimal.NewFromFloat(1.5)
	// HighSeverityMultiplier is the threshold multiple above which an alert is high.
	HighSeverityMultiplier = decimal.NewFromFloat(2.5)
)

// SeverityFor grades value against a positive threshold.
func SeverityFor(value, threshold decimal.Decimal) Severity {
	switch {
	case value.GreaterThan(threshold.Mul(HighSeverityMultiplier)):
		return SeverityHigh
	case value.GreaterThan(threshold.Mul(MediumSeverityMultiplier)):
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Alert is an informational dashboard notice.
type Alert struct {
	// ID is stable across reads so callers can suppress it.
	ID        string
	Kind      AlertKind
	Severity  Severity
	SubjectID string
	Subject   string
	Value     decimal.Decimal
	Threshold decimal.Decimal
}

// AlertID returns the identifier of an alert of kind about subjectID.
func AlertID(kind AlertKind, subjectID string) string {
	return string(kind) + ":" + subjectID
}
