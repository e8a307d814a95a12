package commands_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/costwise/cmd/costwise/commands"
	"go.trai.ch/costwise/internal/adapters/metrics"
	"go.trai.ch/costwise/internal/adapters/telemetry"
	"go.trai.ch/costwise/internal/app"
	"go.trai.ch/costwise/internal/core/domain"
	"go.trai.ch/costwise/internal/core/ports/mocks"
	"go.trai.ch/costwise/internal/engine/dashboard"
	"go.trai.ch/costwise/internal/engine/invalidation"
	"go.trai.ch/costwise/internal/engine/pricing"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	cli    *commands.CLI
	out    *bytes.Buffer
	loader *mocks.MockCatalogLoader
	logger *mocks.MockLogger
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)

	loader := mocks.NewMockCatalogLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	history := mocks.NewMockPriceHistory(ctrl)
	history.EXPECT().SetRoot(gomock.Any()).AnyTimes()
	collector := metrics.NewCollector()
	resolver := pricing.NewResolver(invalidation.New(collector), dashboard.New(), telemetry.NewNoOpTracer(), collector)

	a := app.New(
		loader,
		history,
		mocks.NewMockWatcher(ctrl),
		logger,
		resolver,
		dashboard.New(),
		collector,
	)

	out := &bytes.Buffer{}
	cli := commands.New(a, logger)
	cli.SetOut(out)
	return fixture{cli: cli, out: out, loader: loader, logger: logger}
}

func catalog() *domain.Catalog {
	cfg := domain.WorkingDaysConfig{HoursPerDay: decimal.NewFromInt(8)}
	for d := time.Monday; d <= time.Friday; d++ {
		cfg.Days[d] = true
	}
	return &domain.Catalog{
		Ingredients: []domain.Ingredient{
			{ID: "flour", Name: "Flour", Price: decimal.NewFromInt(10), Quantity: decimal.NewFromInt(1), Unit: domain.UnitKilogram},
		},
		Products: []domain.Product{
			{
				ID: "roll", Name: "Roll",
				Lines: []domain.RecipeLine{{IngredientID: "flour", Quantity: decimal.NewFromInt(100), Unit: domain.UnitGram}},
			},
		},
		WorkingDays: cfg,
		Settings:    domain.Settings{DefaultMargin: decimal.NewFromInt(50)},
		Year:        2025,
	}
}

func TestCost(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(".").Return(catalog(), nil)

	f.cli.SetArgs([]string{"cost", "roll"})
	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "Roll (roll)")
	assert.Contains(t, f.out.String(), "suggested price  2.00")
}

func TestDirFlag(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load("shop").Return(catalog(), nil)

	f.cli.SetArgs([]string{"-C", "shop", "workdays"})
	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Contains(t, f.out.String(), "Working days 2025")
}

func TestConvert(t *testing.T) {
	t.Run("conversion", func(t *testing.T) {
		f := newFixture(t)
		f.loader.EXPECT().DiscoverCatalogPath(".").Return("", domain.ErrCatalogNotFound)

		f.cli.SetArgs([]string{"convert", "2", "dz", "un"})
		require.NoError(t, f.cli.Execute(context.Background()))
		assert.Equal(t, "2 dúzia = 24 un\n", f.out.String())
	})

	t.Run("missing arguments", func(t *testing.T) {
		f := newFixture(t)

		f.cli.SetArgs([]string{"convert", "2", "kg"})
		require.Error(t, f.cli.Execute(context.Background()))
	})

	t.Run("list takes no arguments", func(t *testing.T) {
		f := newFixture(t)

		f.cli.SetArgs([]string{"convert", "--list", "kg"})
		require.Error(t, f.cli.Execute(context.Background()))
	})
}

func TestDashboardRejectsArguments(t *testing.T) {
	f := newFixture(t)

	f.cli.SetArgs([]string{"dashboard", "extra"})
	require.Error(t, f.cli.Execute(context.Background()))
}

func TestVersion(t *testing.T) {
	f := newFixture(t)

	f.cli.SetArgs([]string{"version"})
	require.NoError(t, f.cli.Execute(context.Background()))
	assert.Equal(t, "costwise version dev\n", f.out.String())
}
