package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/costwise/internal/core/domain"
	"go.trai.ch/zerr"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func TestNormalizeUnit(t *testing.T) {
	tests := []struct {
		in   string
		want domain.Unit
	}{
		{in: "KG", want: "kg"},
		{in: "  g ", want: "g"},
		{in: "Dúzia", want: domain.UnitDozen},
		{in: "duzia", want: domain.UnitDozen},
		{in: "DZ", want: domain.UnitDozen},
		{in: "peca", want: domain.UnitPeca},
		{in: "Unidade", want: domain.UnitUnit},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.NormalizeUnit(tt.in))
		})
	}
}

func TestConvert_ReferenceValues(t *testing.T) {
	table := domain.DefaultConversionTable()

	got, err := table.Convert(dec("1000"), "g", "kg")
	require.NoError(t, err)
	assertDecimal(t, "1", got)

	got, err = table.Convert(dec("1.5"), "L", "ml")
	require.NoError(t, err)
	assertDecimal(t, "1500", got)

	got, err = table.Convert(dec("2"), "dz", "un")
	require.NoError(t, err)
	assertDecimal(t, "24", got)

	got, err = table.Convert(dec("3"), "peça", "unidade")
	require.NoError(t, err)
	assertDecimal(t, "3", got)
}

func TestConvert_UnitsToDozen(t *testing.T) {
	table := domain.DefaultConversionTable()
	twelve := decimal.NewFromInt(12)

	for _, x := range []string{"0", "1", "7", "12", "13.5", "100", "0.001"} {
		t.Run(x, func(t *testing.T) {
			got, err := table.Convert(dec(x), "un", "dúzia")
			require.NoError(t, err)
			assert.True(t, dec(x).Div(twelve).Equal(got), "got %s", got)
		})
	}
}

func TestConvert_IncompatibleFamilies(t *testing.T) {
	table := domain.DefaultConversionTable()

	_, err := table.Convert(dec("1"), "kg", "l")
	require.Error(t, err)
	require.ErrorContains(t, err, domain.ErrUnsupportedConversion.Error())

	zErr, ok := err.(*zerr.Error)
	require.True(t, ok, "expected *zerr.Error")
	meta := zErr.Metadata()
	assert.Equal(t, "kg", meta["from"])
	assert.Equal(t, "l", meta["to"])

	assert.False(t, table.AreCompatible("kg", "l"))
	assert.False(t, table.AreCompatible("g", "un"))
}

func TestConvert_UnknownUnit(t *testing.T) {
	table := domain.DefaultConversionTable()

	_, err := table.Convert(dec("1"), "cup", "ml")
	require.ErrorContains(t, err, domain.ErrUnsupportedConversion.Error())

	got, err := table.Convert(dec("2"), "cup", " CUP ")
	require.NoError(t, err, "equal units convert even when unknown")
	assertDecimal(t, "2", got)
}

func TestConvert_Identity(t *testing.T) {
	table := domain.DefaultConversionTable()
	q := dec("123.456")

	for _, u := range table.Units() {
		got, err := table.Convert(q, u, u)
		require.NoError(t, err)
		assert.True(t, q.Equal(got), "unit %s", u)
		assert.True(t, table.AreCompatible(u, u))
	}
}

func TestConvert_RoundTrip(t *testing.T) {
	table := domain.DefaultConversionTable()
	tolerance := dec("0.000000000001")

	for _, pair := range table.Pairs() {
		for _, q := range []string{"1", "7", "0.3", "1234.5678"} {
			there, err := table.Convert(dec(q), pair[0], pair[1])
			require.NoError(t, err)
			back, err := table.Convert(there, pair[1], pair[0])
			require.NoError(t, err)
			assert.True(t, back.Sub(dec(q)).Abs().LessThan(tolerance),
				"%s %s -> %s -> %s = %s", q, pair[0], pair[1], pair[0], back)
		}
	}
}

func TestFactor_InverseProductIsOne(t *testing.T) {
	table := domain.DefaultConversionTable()

	for _, pair := range table.Pairs() {
		ab, ok := table.Factor(pair[0], pair[1])
		require.True(t, ok)
		ba, ok := table.Factor(pair[1], pair[0])
		require.True(t, ok)
		// Multiply the ratios without dividing so the check is exact.
		num := ab.Num.Mul(ba.Num)
		den := ab.Den.Mul(ba.Den)
		assert.True(t, num.Equal(den), "%s <-> %s", pair[0], pair[1])
	}
}

func TestConversionTable_SingleHop(t *testing.T) {
	table := domain.DefaultConversionTable()
	table.Register("xicara", "ml", dec("240"), dec("1"))

	got, err := table.Convert(dec("2"), "Xicara", "ml")
	require.NoError(t, err)
	assertDecimal(t, "480", got)

	got, err = table.Convert(dec("480"), "ml", "xicara")
	require.NoError(t, err)
	assertDecimal(t, "2", got)

	// xicara -> l needs two hops and is not attempted.
	_, err = table.Convert(dec("1"), "xicara", "l")
	require.ErrorContains(t, err, domain.ErrUnsupportedConversion.Error())
}
