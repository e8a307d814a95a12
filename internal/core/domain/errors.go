package domain

import "go.trai.ch/zerr"

var (
	// ErrInvalidQuantity is returned when a quantity that must be positive is zero or negative.
	ErrInvalidQuantity = zerr.New("invalid quantity")

	// ErrUnsupportedConversion is returned when no direct factor exists between two units.
	ErrUnsupportedConversion = zerr.New("unsupported unit conversion")

	// ErrInvalidWorkingDaysConfig is returned when no weekday is enabled or hours per day is not positive.
	ErrInvalidWorkingDaysConfig = zerr.New("invalid working days configuration")

	// ErrIngredientNotFound is returned when a recipe line references an unknown ingredient.
	ErrIngredientNotFound = zerr.New("ingredient not found")

	// ErrProductNotFound is returned when a requested product is not in the catalog.
	ErrProductNotFound = zerr.New("product not found")

	// ErrInvalidMargin is returned when a margin would make the suggested price undefined.
	ErrInvalidMargin = zerr.New("invalid margin, expected a percentage below 100")

	// ErrUnknownRecurrence is returned when a fixed cost recurrence is not monthly, quarterly or yearly.
	ErrUnknownRecurrence = zerr.New("unknown recurrence, expected 'monthly', 'quarterly' or 'yearly'")

	// ErrUnknownWeekday is returned when a working days entry names an unknown weekday.
	ErrUnknownWeekday = zerr.New("unknown weekday")

	// ErrUnknownGrouping is returned when a margin grouping is neither 'product' nor 'category'.
	ErrUnknownGrouping = zerr.New("unknown margin grouping, expected 'product' or 'category'")

	// ErrDuplicateID is returned when two catalog records of the same kind share an ID.
	ErrDuplicateID = zerr.New("duplicate id")

	// ErrMissingID is returned when a catalog record has no ID.
	ErrMissingID = zerr.New("missing id")

	// ErrInvalidDecimal is returned when a catalog value cannot be parsed as a decimal number.
	ErrInvalidDecimal = zerr.New("invalid decimal value")

	// ErrCatalogNotLoaded is returned when a cost is read before any catalog was set.
	ErrCatalogNotLoaded = zerr.New("catalog not loaded")

	// ErrLineNotFound is returned when a recipe line index is out of range.
	ErrLineNotFound = zerr.New("recipe line not found")

	// ErrCatalogNotFound is returned when no catalog file can be found.
	ErrCatalogNotFound = zerr.New("could not find catalog file")

	// ErrCatalogReadFailed is returned when the catalog file cannot be read.
	ErrCatalogReadFailed = zerr.New("failed to read catalog file")

	// ErrCatalogParseFailed is returned when the catalog file cannot be parsed.
	ErrCatalogParseFailed = zerr.New("failed to parse catalog file")

	// ErrHistoryReadFailed is returned when the price history cannot be read.
	ErrHistoryReadFailed = zerr.New("failed to read price history")

	// ErrHistoryWriteFailed is returned when the price history cannot be written.
	ErrHistoryWriteFailed = zerr.New("failed to write price history")

	// ErrHistoryCreateFailed is returned when the price history directory cannot be created.
	ErrHistoryCreateFailed = zerr.New("failed to create price history directory")

	// ErrHistoryMarshalFailed is returned when the price history cannot be marshaled.
	ErrHistoryMarshalFailed = zerr.New("failed to marshal price history")

	// ErrHistoryUnmarshalFailed is returned when the price history cannot be unmarshaled.
	ErrHistoryUnmarshalFailed = zerr.New("failed to unmarshal price history")

	// ErrWatchFailed is returned when the catalog watcher cannot be started.
	ErrWatchFailed = zerr.New("failed to watch catalog")

	// ErrReportFailed is returned when a report cannot be written.
	ErrReportFailed = zerr.New("failed to write report")
)
