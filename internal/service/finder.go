package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/kiez/internal/catalog"
	"github.com/UnknownOlympus/kiez/internal/metrics"
	"github.com/UnknownOlympus/kiez/internal/models"
	"github.com/UnknownOlympus/kiez/internal/ranker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrDatasetNotLoaded is returned for lookups in a category that has never been loaded.
var ErrDatasetNotLoaded = errors.New("dataset not loaded")

const tracerName = "github.com/UnknownOlympus/kiez/internal/service"

// Answer is the result of a nearest amenity lookup.
type Answer struct {
	Category   models.Category       `json:"category"`
	SnapshotID string                `json:"snapshot_id"`
	FetchedAt  time.Time             `json:"fetched_at"`
	Results    []models.RankedResult `json:"results"`
	Excluded   int                   `json:"excluded"`
}

// Finder answers nearest amenity lookups against the current catalog snapshot.
type Finder struct {
	log     *slog.Logger
	store   *catalog.Store
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

func NewFinder(log *slog.Logger, store *catalog.Store, metrics *metrics.Metrics) *Finder {
	return &Finder{
		log:     log,
		store:   store,
		metrics: metrics,
		tracer:  otel.Tracer(tracerName),
	}
}

// Nearest returns the k candidates of the category closest to query.
// Errors are ErrDatasetNotLoaded or a ranker error of kind InvalidQueryKind or InvalidArgumentKind.
func (f *Finder) Nearest(ctx context.Context, category models.Category, query models.GeoPoint, k int) (Answer, error) {
	ctx, span := f.tracer.Start(ctx, "Finder.Nearest", trace.WithAttributes(
		attribute.String("category", string(category)),
		attribute.Int("k", k),
	))
	defer span.End()

	snapshot := f.store.Current()
	dataset, ok := snapshot.Dataset(category)
	if !ok {
		f.metrics.NearestQueries.WithLabelValues(string(category), "not_loaded").Inc()
		span.SetStatus(codes.Error, ErrDatasetNotLoaded.Error())
		return Answer{}, fmt.Errorf("%w: %s", ErrDatasetNotLoaded, category)
	}

	ranking, err := ranker.Rank(query, dataset.Candidates, k)
	if err != nil {
		f.metrics.NearestQueries.WithLabelValues(string(category), "invalid").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Answer{}, err
	}

	if ranking.Excluded > 0 {
		f.metrics.CandidatesExcluded.WithLabelValues(string(category)).Add(float64(ranking.Excluded))
		f.log.WarnContext(ctx, "Candidates excluded from ranking",
			"category", category, "excluded", ranking.Excluded, "snapshot", snapshot.ID)
	}

	f.metrics.NearestQueries.WithLabelValues(string(category), "success").Inc()
	span.SetAttributes(
		attribute.String("snapshot.id", snapshot.ID),
		attribute.Int("results", len(ranking.Results)),
		attribute.Int("excluded", ranking.Excluded),
	)

	return Answer{
		Category:   category,
		SnapshotID: snapshot.ID,
		FetchedAt:  dataset.FetchedAt,
		Results:    ranking.Results,
		Excluded:   ranking.Excluded,
	}, nil
}
