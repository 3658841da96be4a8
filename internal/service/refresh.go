package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/UnknownOlympus/kiez/internal/catalog"
	"github.com/UnknownOlympus/kiez/internal/datasets"
	"github.com/UnknownOlympus/kiez/internal/metrics"
	"github.com/UnknownOlympus/kiez/internal/models"
	"golang.org/x/sync/errgroup"
)

// ErrRefreshInProgress is returned when a refresh is triggered while another one is running.
var ErrRefreshInProgress = errors.New("refresh already in progress")

// Report summarizes one refresh cycle.
type Report struct {
	SnapshotID string                     `json:"snapshot_id,omitempty"` // Empty when nothing was published.
	Updated    map[models.Category]int    `json:"updated"`               // Candidate count per refreshed category.
	Failed     map[models.Category]string `json:"failed,omitempty"`      // Error message per failed category.
}

// RefreshService keeps the catalog store up to date with the dataset sources,
// including logging, metrics tracking, and bounded concurrent fetching.
type RefreshService struct {
	log             *slog.Logger      // Logger for logging service activities
	store           *catalog.Store    // Store receiving the refreshed datasets
	sources         []datasets.Source // Dataset sources, at most one per category
	metrics         *metrics.Metrics  // Metrics for tracking service performance
	numWorkers      int               // Number of sources fetched concurrently
	fetchTimeout    time.Duration     // Upper bound for a single source fetch
	refreshInterval time.Duration     // Interval between scheduled refreshes
	running         atomic.Bool
	now             func() time.Time
}

// NewRefreshService creates a new instance of RefreshService.
func NewRefreshService(
	log *slog.Logger,
	store *catalog.Store,
	sources []datasets.Source,
	metrics *metrics.Metrics,
	numWorkers int,
	fetchTimeout time.Duration,
	refreshInterval time.Duration,
) *RefreshService {
	if numWorkers < 1 {
		numWorkers = 1
	}

	return &RefreshService{
		log:             log,
		store:           store,
		sources:         sources,
		metrics:         metrics,
		numWorkers:      numWorkers,
		fetchTimeout:    fetchTimeout,
		refreshInterval: refreshInterval,
		now:             time.Now,
	}
}

// Run refreshes all datasets immediately and then on every tick of the refresh interval.
// It listens for a cancellation signal from the context to gracefully stop the service.
func (rs *RefreshService) Run(ctx context.Context) {
	ticker := time.NewTicker(rs.refreshInterval)
	defer ticker.Stop()

	rs.log.InfoContext(ctx, "Refresh service started", "interval", rs.refreshInterval, "sources", len(rs.sources))
	rs.refreshLogged(ctx)

	for {
		select {
		case <-ctx.Done():
			rs.log.InfoContext(ctx, "Refresh service stopped.")
			return
		case <-ticker.C:
			rs.log.InfoContext(ctx, "Refreshing datasets...")
			rs.refreshLogged(ctx)
		}
	}
}

func (rs *RefreshService) refreshLogged(ctx context.Context) {
	report, err := rs.Refresh(ctx)
	switch {
	case errors.Is(err, ErrRefreshInProgress):
		rs.log.InfoContext(ctx, "Skipping scheduled refresh, another one is running")
	case err != nil:
		rs.log.ErrorContext(ctx, "Refresh finished with failures", "updated", len(report.Updated), "error", err)
	default:
		rs.log.InfoContext(ctx, "Refresh finished", "snapshot", report.SnapshotID, "updated", len(report.Updated))
	}
}

type fetchResult struct {
	dataset catalog.Dataset
	err     error
}

// Refresh fetches every source and publishes the successful datasets in one snapshot.
// A failing source keeps the previously published dataset of its category; its error
// is part of the returned joined error and of Report.Failed.
func (rs *RefreshService) Refresh(ctx context.Context) (Report, error) {
	if !rs.running.CompareAndSwap(false, true) {
		return Report{}, ErrRefreshInProgress
	}
	defer rs.running.Store(false)

	rs.metrics.RefreshInProgress.Set(1)
	defer rs.metrics.RefreshInProgress.Set(0)

	results := make([]fetchResult, len(rs.sources))

	var group errgroup.Group
	group.SetLimit(rs.numWorkers)
	for i, source := range rs.sources {
		group.Go(func() error {
			results[i] = rs.fetch(ctx, source)
			return nil
		})
	}
	_ = group.Wait()

	report := Report{
		Updated: make(map[models.Category]int),
		Failed:  make(map[models.Category]string),
	}

	var (
		fresh []catalog.Dataset
		errs  []error
	)
	for i, res := range results {
		category := rs.sources[i].Category()
		if res.err != nil {
			report.Failed[category] = res.err.Error()
			errs = append(errs, fmt.Errorf("%s: %w", category, res.err))
			continue
		}
		report.Updated[category] = len(res.dataset.Candidates)
		fresh = append(fresh, res.dataset)
	}

	if len(fresh) > 0 {
		snapshot := rs.store.Swap(fresh...)
		report.SnapshotID = snapshot.ID
		for _, ds := range fresh {
			rs.metrics.DatasetCandidates.WithLabelValues(string(ds.Category)).Set(float64(len(ds.Candidates)))
		}
	}

	return report, errors.Join(errs...)
}

// fetch runs a single source under the fetch timeout and records its outcome.
func (rs *RefreshService) fetch(ctx context.Context, source datasets.Source) fetchResult {
	category := string(source.Category())

	fetchCtx := ctx
	if rs.fetchTimeout > 0 {
		var cancel context.CancelFunc
		fetchCtx, cancel = context.WithTimeout(ctx, rs.fetchTimeout)
		defer cancel()
	}

	rs.log.DebugContext(ctx, "Fetching dataset", "category", category, "source", source.Name())

	startTime := time.Now()
	candidates, err := source.Fetch(fetchCtx)
	rs.metrics.RefreshSeconds.WithLabelValues(category).Observe(time.Since(startTime).Seconds())

	if err != nil {
		rs.metrics.RefreshTotal.WithLabelValues(category, "failure").Inc()
		rs.log.ErrorContext(ctx, "Failed to fetch dataset", "category", category, "source", source.Name(), "error", err)
		return fetchResult{err: err}
	}

	rs.metrics.RefreshTotal.WithLabelValues(category, "success").Inc()
	rs.log.InfoContext(ctx, "Dataset fetched", "category", category, "candidates", len(candidates))

	return fetchResult{dataset: catalog.Dataset{
		Category:   source.Category(),
		Candidates: candidates,
		FetchedAt:  rs.now(),
		Source:     source.Name(),
	}}
}
