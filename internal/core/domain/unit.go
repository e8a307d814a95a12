package domain

import (
	"cmp"
	"slices"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.trai.ch/zerr"
)

// Unit is a measurement unit symbol such as "kg" or "dúzia".
type Unit string

// Reference unit symbols.
const (
	UnitKilogram   Unit = "kg"
	UnitGram       Unit = "g"
	UnitLiter      Unit = "l"
	UnitMilliliter Unit = "ml"
	UnitPiece      Unit = "un"
	UnitUnit       Unit = "unidade"
	UnitPeca       Unit = "peça"
	UnitDozen      Unit = "dúzia"
)

var unitAliases = map[string]Unit{
	"duzia": UnitDozen,
	"dz":    UnitDozen,
	"peca":  UnitPeca,
}

// NormalizeUnit lower-cases and trims a unit symbol and folds known spelling aliases.
func NormalizeUnit(s string) Unit {
	u := strings.ToLower(strings.TrimSpace(s))
	if alias, ok := unitAliases[u]; ok {
		return alias
	}
	return Unit(u)
}

// Factor is a directed conversion edge kept as a ratio.
// A quantity in the target unit is the source quantity times Num divided by Den.
type Factor struct {
	Num decimal.Decimal
	Den decimal.Decimal
}

// Apply converts q using the factor.
func (f Factor) Apply(q decimal.Decimal) decimal.Decimal {
	return q.Mul(f.Num).Div(f.Den)
}

// Inverse returns the factor of the opposite edge.
func (f Factor) Inverse() Factor {
	return Factor{Num: f.Den, Den: f.Num}
}

// Value returns the factor as a single decimal.
func (f Factor) Value() decimal.Decimal {
	return f.Num.Div(f.Den)
}

// UnitFamily is a set of mutually convertible units.
// Members maps each unit to its size expressed in the family's base unit.
type UnitFamily struct {
	Name    string
	Members map[Unit]decimal.Decimal
}

// DefaultFamilies returns the mass, volume and count families.
func DefaultFamilies() []UnitFamily {
	return []UnitFamily{
		{
			Name: "mass",
			Members: map[Unit]decimal.Decimal{
				UnitKilogram: decimal.NewFromInt(1000),
				UnitGram:     decimal.NewFromInt(1),
			},
		},
		{
			Name: "volume",
			Members: map[Unit]decimal.Decimal{
				UnitLiter:      decimal.NewFromInt(1000),
				UnitMilliliter: decimal.NewFromInt(1),
			},
		},
		{
			Name: "count",
			Members: map[Unit]decimal.Decimal{
				UnitPiece: decimal.NewFromInt(1),
				UnitUnit:  decimal.NewFromInt(1),
				UnitPeca:  decimal.NewFromInt(1),
				UnitDozen: decimal.NewFromInt(12),
			},
		},
	}
}

type edge struct {
	from Unit
	to   Unit
}

// ConversionTable is a flat table of direct conversion factors.
// Lookups are single-hop: two units convert only if an edge links them directly.
type ConversionTable struct {
	mu      sync.RWMutex
	factors map[edge]Factor
	known   map[Unit]struct{}
}

// NewConversionTable expands each family into direct edges between every pair of its members.
func NewConversionTable(families ...UnitFamily) *ConversionTable {
	t := &ConversionTable{
		factors: make(map[edge]Factor),
		known:   make(map[Unit]struct{}),
	}
	for _, family := range families {
		for from, fromSize := range family.Members {
			for to, toSize := range family.Members {
				if from == to {
					continue
				}
				t.Register(from, to, fromSize, toSize)
			}
		}
	}
	return t
}

// DefaultConversionTable returns a table built from DefaultFamilies.
func DefaultConversionTable() *ConversionTable {
	return NewConversionTable(DefaultFamilies()...)
}

// Register adds the edge from -> to with ratio num/den and its inverse edge.
// Registering an existing edge replaces it.
func (t *ConversionTable) Register(from, to Unit, num, den decimal.Decimal) {
	from = NormalizeUnit(string(from))
	to = NormalizeUnit(string(to))
	f := Factor{Num: num, Den: den}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.factors[edge{from: from, to: to}] = f
	t.factors[edge{from: to, to: from}] = f.Inverse()
	t.known[from] = struct{}{}
	t.known[to] = struct{}{}
}

// Factor returns the direct factor from -> to. Equal units yield 1/1.
func (t *ConversionTable) Factor(from, to Unit) (Factor, bool) {
	from = NormalizeUnit(string(from))
	to = NormalizeUnit(string(to))
	if from == to {
		return Factor{Num: decimal.NewFromInt(1), Den: decimal.NewFromInt(1)}, true
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	f, ok := t.factors[edge{from: from, to: to}]
	return f, ok
}

// AreCompatible reports whether a and b are equal after normalization or linked by a direct factor.
func (t *ConversionTable) AreCompatible(a, b Unit) bool {
	_, ok := t.Factor(a, b)
	return ok
}

// Convert converts q from one unit into another.
// It returns q unchanged for equal units and ErrUnsupportedConversion when no direct factor exists.
func (t *ConversionTable) Convert(q decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	f, ok := t.Factor(from, to)
	if !ok {
		err := zerr.With(ErrUnsupportedConversion, "from", string(NormalizeUnit(string(from))))
		return decimal.Zero, zerr.With(err, "to", string(NormalizeUnit(string(to))))
	}
	if NormalizeUnit(string(from)) == NormalizeUnit(string(to)) {
		return q, nil
	}
	return f.Apply(q), nil
}

// Units returns every unit that appears in the table, sorted.
func (t *ConversionTable) Units() []Unit {
	t.mu.RLock()
	defer t.mu.RUnlock()

	units := make([]Unit, 0, len(t.known))
	for u := range t.known {
		units = append(units, u)
	}
	slices.Sort(units)
	return units
}

// Pairs returns every directed edge of the table, sorted.
func (t *ConversionTable) Pairs() [][2]Unit {
	t.mu.RLock()
	defer t.mu.RUnlock()

	pairs := make([][2]Unit, 0, len(t.factors))
	for e := range t.factors {
		pairs = append(pairs, [2]Unit{e.from, e.to})
	}
	slices.SortFunc(pairs, func(a, b [2]Unit) int {
		if c := cmp.Compare(a[0], b[0]); c != 0 {
			return c
		}
		return cmp.Compare(a[1], b[1])
	})
	return pairs
}
