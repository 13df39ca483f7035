package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Mohnish-Sivakumar/FTCInventory/internal/config"
	"github.com/Mohnish-Sivakumar/FTCInventory/internal/feed"
	"github.com/Mohnish-Sivakumar/FTCInventory/internal/repository/feeds"
	"github.com/Mohnish-Sivakumar/FTCInventory/internal/service/inventory"
)

const fetchTimeout = 20 * time.Second

// Refresher owns the feed refresh policy: a one-shot startup gate that
// retries on a fixed delay until the first successful summary fetch, then
// independent periodic polls for the catalog, summary, and resources
// feeds. Each poll replaces its snapshot wholesale on success; failures
// are logged and the previous snapshot retained.
type Refresher struct {
	cron       *cron.Cron
	source     feeds.Source
	store      *inventory.Store
	cfg        config.PollingConfig
	logger     *zap.Logger
	gateCancel context.CancelFunc
}

// NewRefresher creates a refresher polling the given source into the store.
func NewRefresher(cfg config.PollingConfig, source feeds.Source, store *inventory.Store, logger *zap.Logger) *Refresher {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Refresher{
		cron:   cron.New(),
		source: source,
		store:  store,
		cfg:    cfg,
		logger: logger,
	}
}

// Start launches the startup gate and the steady-state polls. The catalog
// and summary timers are independent and never synchronized; readers may
// observe the two snapshots at different generations.
func (r *Refresher) Start() {
	r.logger.Info("starting feed refresher", zap.Duration("interval", r.cfg.Interval))

	gateCtx, cancel := context.WithCancel(context.Background())
	r.gateCancel = cancel
	go r.runReadyGate(gateCtx)

	every := fmt.Sprintf("@every %s", r.cfg.Interval)
	for name, refresh := range map[string]func(context.Context) error{
		"catalog":   r.refreshCatalog,
		"summary":   r.refreshSummary,
		"resources": r.refreshResources,
	} {
		if _, err := r.cron.AddFunc(every, r.pollJob(name, refresh)); err != nil {
			r.logger.Error("failed to schedule poll", zap.String("feed", name), zap.Error(err))
		}
	}

	r.cron.Start()
}

// Stop tears down the timers and any in-flight startup gate so no orphaned
// work keeps mutating the store after the consumer is gone.
func (r *Refresher) Stop() {
	r.logger.Info("stopping feed refresher")
	if r.gateCancel != nil {
		r.gateCancel()
	}
	r.cron.Stop()
}

// runReadyGate retries the initial fetch on a fixed delay until the first
// success. This is the only unbounded retry in the system; it gates the
// initial loading state.
func (r *Refresher) runReadyGate(ctx context.Context) {
	for attempt := 1; ; attempt++ {
		err := r.refreshSummary(ctx)
		if err == nil {
			if err := r.refreshCatalog(ctx); err != nil {
				r.logger.Warn("initial catalog fetch failed, polling will retry", zap.Error(err))
			}
			if err := r.refreshResources(ctx); err != nil {
				r.logger.Warn("initial resources fetch failed, polling will retry", zap.Error(err))
			}
			r.store.MarkReady()
			r.logger.Info("initial data loaded", zap.Int("attempts", attempt))
			return
		}

		r.logger.Warn("initial fetch not ready", zap.Int("attempt", attempt), zap.Error(err))

		select {
		case <-ctx.Done():
			return
		case <-time.After(r.cfg.ReadyRetryDelay):
		}
	}
}

func (r *Refresher) pollJob(name string, refresh func(context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		if err := refresh(ctx); err != nil {
			// Previous snapshot stays in place: stale-but-valid over empty.
			r.logger.Warn("feed poll failed", zap.String("feed", name), zap.Error(err))
		}
	}
}

func (r *Refresher) refreshCatalog(ctx context.Context) error {
	rows, err := r.source.CatalogRows(ctx)
	if err != nil {
		return err
	}

	result := feed.BuildCatalog(rows)
	r.store.ReplaceCatalog(result.Items)
	r.logger.Debug("catalog refreshed", zap.Int("items", len(result.Items)))
	return nil
}

func (r *Refresher) refreshSummary(ctx context.Context) error {
	rows, err := r.source.SummaryRows(ctx)
	if err != nil {
		return err
	}

	result := feed.BuildSummary(rows)
	for _, warning := range result.Warnings {
		r.logger.Debug("summary parse warning", zap.String("warning", warning))
	}

	r.store.ReplaceStock(result.Stock)
	r.logger.Debug("stock model refreshed", zap.Int("items", len(result.Stock)))
	return nil
}

func (r *Refresher) refreshResources(ctx context.Context) error {
	rows, err := r.source.ResourceRows(ctx)
	if err != nil {
		return err
	}
	if rows == nil {
		return nil
	}

	result := feed.BuildDirectory(rows)
	r.store.ReplaceResources(result.Entries)
	return nil
}
