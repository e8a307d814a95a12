// Package app implements the application layer for costwise.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/shopspring/decimal"
	"go.trai.ch/costwise/internal/adapters/metrics" //nolint:depguard // Wired in app layer
	"go.trai.ch/costwise/internal/adapters/report"  //nolint:depguard // Wired in app layer
	"go.trai.ch/costwise/internal/adapters/watcher" //nolint:depguard // Wired in app layer
	"go.trai.ch/costwise/internal/core/domain"
	"go.trai.ch/costwise/internal/core/ports"
	"go.trai.ch/costwise/internal/engine/dashboard"
	"go.trai.ch/costwise/internal/engine/pricing"
	"go.trai.ch/costwise/internal/engine/reconcile"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	loader     ports.CatalogLoader
	history    ports.PriceHistory
	watcher    ports.Watcher
	logger     ports.Logger
	resolver   *pricing.Resolver
	aggregator *dashboard.Aggregator
	collector  *metrics.Collector

	cwd      string
	out      io.Writer
	now      func() time.Time
	debounce time.Duration
}

// New creates a new App instance.
func New(
	loader ports.CatalogLoader,
	history ports.PriceHistory,
	w ports.Watcher,
	log ports.Logger,
	resolver *pricing.Resolver,
	aggregator *dashboard.Aggregator,
	collector *metrics.Collector,
) *App {
	return &App{
		loader:     loader,
		history:    history,
		watcher:    w,
		logger:     log,
		resolver:   resolver,
		aggregator: aggregator,
		collector:  collector,
		cwd:        ".",
		out:        os.Stdout,
		now:        time.Now,
		debounce:   watcher.DefaultDebounceWindow,
	}
}

// WithOutput sets the writer reports are rendered to.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithDir sets the directory the catalog is discovered from.
// The price history and Clean use the state directory under it.
func (a *App) WithDir(dir string) *App {
	a.cwd = dir
	a.history.SetRoot(dir)
	return a
}

// WithClock replaces the wall clock. Used by tests.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// WithDebounce sets the quiet period the watch loop waits for before reloading.
func (a *App) WithDebounce(window time.Duration) *App {
	a.debounce = window
	return a
}

// load reads the catalog and makes it the current snapshot.
// When a snapshot already exists, only the keys affected by the edit are invalidated
// and ingredient price changes are appended to the history.
// A history failure is returned along with the changes, which are already applied.
func (a *App) load(dir string) (reconcile.Changes, error) {
	next, err := a.loader.Load(dir)
	if err != nil {
		return reconcile.Changes{}, zerr.Wrap(err, "failed to load catalog")
	}

	prev := a.resolver.Catalog()
	a.resolver.SetCatalog(next)
	if prev == nil {
		return reconcile.Changes{}, nil
	}

	changes := reconcile.Diff(prev, next)
	reconcile.Apply(a.resolver.Graph(), changes)
	if prices := changes.PriceChanges(a.now()); len(prices) > 0 {
		if err := a.history.Append(prices...); err != nil {
			return changes, err
		}
	}
	return changes, nil
}

func (a *App) renderer() *report.Renderer {
	currency := ""
	if c := a.resolver.Catalog(); c != nil {
		currency = c.Settings.Currency
	}
	return report.New(a.out, currency)
}

// warnUnavailable logs every product whose cost could not be computed.
func (a *App) warnUnavailable(results []dashboard.ProductResult) {
	for _, r := range results {
		if !r.Available() {
			a.logger.Warn(fmt.Sprintf("cost of %s unavailable: %s", r.Product.ID, r.Err))
		}
	}
}

// CostOptions configuration for the Cost method.
type CostOptions struct {
	// Products limits the report to the given IDs. Empty means every product.
	Products []string
}

// Cost renders the pricing breakdown of the catalog products.
func (a *App) Cost(ctx context.Context, opts CostOptions) error {
	if _, err := a.load(a.cwd); err != nil {
		return err
	}

	results, err := a.resolver.Products(ctx)
	if err != nil {
		return err
	}

	if len(opts.Products) > 0 {
		selected := make([]dashboard.ProductResult, 0, len(opts.Products))
		for _, id := range opts.Products {
			i := slices.IndexFunc(results, func(r dashboard.ProductResult) bool { return r.Product.ID == id })
			if i < 0 {
				return zerr.With(domain.ErrProductNotFound, "product", id)
			}
			selected = append(selected, results[i])
		}
		results = selected
	}

	a.warnUnavailable(results)
	return a.renderer().Products(results)
}

// DashboardOptions configuration for the Dashboard method.
type DashboardOptions struct {
	// Dismissed holds alert IDs that are not reported.
	Dismissed []string
}

// Dashboard renders the catalog summary and the current alerts.
func (a *App) Dashboard(ctx context.Context, opts DashboardOptions) error {
	if _, err := a.load(a.cwd); err != nil {
		return err
	}
	return a.renderDashboard(ctx, opts)
}

func (a *App) renderDashboard(ctx context.Context, opts DashboardOptions) error {
	summary, err := a.resolver.Summary(ctx)
	if err != nil {
		return err
	}
	products, err := a.resolver.Products(ctx)
	if err != nil {
		return err
	}

	now := a.now()
	changes, err := a.history.Since(now.Add(-dashboard.AlertWindow))
	if err != nil {
		return err
	}
	summary.ChangesToday = dashboard.ChangesToday(changes, now)

	suppressed := make(map[string]struct{}, len(opts.Dismissed))
	for _, id := range opts.Dismissed {
		suppressed[id] = struct{}{}
	}

	catalog := a.resolver.Catalog()
	alerts := a.aggregator.EvaluateAlerts(dashboard.AlertInput{
		Ingredients: catalog.Ingredients,
		Products:    products,
		Changes:     changes,
		Settings:    catalog.Settings,
		Now:         now,
		Suppressed:  suppressed,
	})

	a.warnUnavailable(products)
	return a.renderer().Dashboard(summary, alerts)
}

// ConvertOptions configuration for the Convert method.
type ConvertOptions struct {
	Quantity string
	From     string
	To       string
	// List renders every known conversion instead of converting.
	List bool
}

// Convert converts a quantity between units using the catalog's table.
// Without a catalog the built-in units are used.
func (a *App) Convert(_ context.Context, opts ConvertOptions) error {
	table, err := a.conversionTable()
	if err != nil {
		return err
	}

	if opts.List {
		return a.renderer().Units(table)
	}

	q, err := decimal.NewFromString(opts.Quantity)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrInvalidDecimal.Error()), "field", "quantity")
		return zerr.With(err, "value", opts.Quantity)
	}

	from := domain.NormalizeUnit(opts.From)
	to := domain.NormalizeUnit(opts.To)
	result, err := table.Convert(q, from, to)
	if err != nil {
		return err
	}
	return a.renderer().Conversion(q, from, result, to)
}

func (a *App) conversionTable() (*domain.ConversionTable, error) {
	if _, err := a.loader.DiscoverCatalogPath(a.cwd); err != nil {
		return domain.DefaultConversionTable(), nil //nolint:nilerr // No catalog means the built-in units.
	}
	if _, err := a.load(a.cwd); err != nil {
		return nil, err
	}
	return a.resolver.Catalog().ConversionTable(), nil
}

// Workdays renders the working days summary of the catalog year and the hourly rates.
func (a *App) Workdays(ctx context.Context) error {
	if _, err := a.load(a.cwd); err != nil {
		return err
	}

	summary, err := a.resolver.WorkingHours(ctx)
	if err != nil {
		return err
	}

	var rates *domain.Rates
	if r, err := a.resolver.Rates(ctx); err != nil {
		a.logger.Warn(fmt.Sprintf("hourly rates unavailable: %s", err))
	} else {
		rates = &r
	}
	return a.renderer().WorkingDays(summary, rates)
}

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	DashboardOptions
	// MetricsFile receives the cache counters in the Prometheus text format after every reload.
	MetricsFile string
}

// Watch renders the dashboard and re-renders it whenever the catalog file changes,
// until ctx is cancelled. A catalog that fails to load keeps the previous snapshot.
func (a *App) Watch(ctx context.Context, opts WatchOptions) error {
	path, err := a.loader.DiscoverCatalogPath(a.cwd)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)

	if _, err := a.load(dir); err != nil {
		return err
	}
	if err := a.renderDashboard(ctx, opts.DashboardOptions); err != nil {
		return err
	}
	if err := a.writeMetrics(opts.MetricsFile); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	if err := a.watcher.Start(ctx, path); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	unsubscribe := a.resolver.Graph().Subscribe(func(ev domain.Invalidation) {
		a.logger.Info(fmt.Sprintf("%s invalidated %d keys", ev.Cause, len(ev.Keys)))
	})
	defer unsubscribe()

	a.logger.Info(fmt.Sprintf("watching %s", path))

	reloads := make(chan struct{}, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func([]string) {
		select {
		case reloads <- struct{}{}:
		default:
		}
	})

	// Event Routine
	g.Go(func() error {
		for ev := range a.watcher.Events() {
			debouncer.Add(ev.Path)
		}
		return nil
	})

	// Reload Routine
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-reloads:
				if err := a.reload(ctx, dir, opts); err != nil && ctx.Err() == nil {
					return err
				}
			}
		}
	})

	return g.Wait()
}

// reload is the single writer of the watch loop.
// Catalog and history errors are logged. Only report and metrics failures stop the loop.
func (a *App) reload(ctx context.Context, dir string, opts WatchOptions) error {
	changes, err := a.load(dir)
	if err != nil {
		a.logger.Error(err)
	}
	if changes.Empty() {
		return nil
	}

	a.logger.Info(fmt.Sprintf("catalog reloaded: %s", changes))
	if err := a.renderDashboard(ctx, opts.DashboardOptions); err != nil {
		return err
	}
	return a.writeMetrics(opts.MetricsFile)
}

func (a *App) writeMetrics(path string) error {
	if path == "" {
		return nil
	}
	return a.collector.WriteTextfile(path)
}

// Clean removes the costwise state directory.
func (a *App) Clean(_ context.Context) error {
	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.Wrap(err, fmt.Sprintf("failed to remove %s", name)))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	remove(filepath.Join(a.cwd, domain.DefaultStatePath()), "costwise state")
	return errs
}
