package service

import (
	"log/slog"
	"math"
	"os"
	"testing"
	"time"

	"github.com/UnknownOlympus/kiez/internal/catalog"
	"github.com/UnknownOlympus/kiez/internal/metrics"
	"github.com/UnknownOlympus/kiez/internal/models"
	"github.com/UnknownOlympus/kiez/internal/ranker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinder_Nearest(t *testing.T) {
	ctx := t.Context()
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	store := catalog.NewStore()
	m := metrics.NewMetrics(prometheus.NewRegistry())
	finder := NewFinder(logger, store, m)

	berlin := models.GeoPoint{Latitude: 52.5200, Longitude: 13.4050}
	fetchedAt := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

	t.Run("dataset not loaded", func(t *testing.T) {
		_, err := finder.Nearest(ctx, models.CategoryToilets, berlin, 3)

		require.ErrorIs(t, err, ErrDatasetNotLoaded)
		assert.InDelta(t, 1, testutil.ToFloat64(m.NearestQueries.WithLabelValues("toilets", "not_loaded")), 0)
	})

	snapshot := store.Swap(catalog.Dataset{
		Category:  models.CategoryToilets,
		FetchedAt: fetchedAt,
		Candidates: []models.Candidate{
			{ID: "hamburg", Location: &models.GeoPoint{Latitude: 53.5511, Longitude: 9.9937}},
			{ID: "near", Location: &models.GeoPoint{Latitude: 52.5300, Longitude: 13.4000}},
			{ID: "missing"},
			{ID: "nan", Location: &models.GeoPoint{Latitude: math.NaN(), Longitude: 13.4}},
		},
	})

	t.Run("returns nearest candidates", func(t *testing.T) {
		answer, err := finder.Nearest(ctx, models.CategoryToilets, berlin, 2)
		require.NoError(t, err)

		assert.Equal(t, models.CategoryToilets, answer.Category)
		assert.Equal(t, snapshot.ID, answer.SnapshotID)
		assert.Equal(t, fetchedAt, answer.FetchedAt)
		require.Len(t, answer.Results, 2)
		assert.Equal(t, "near", answer.Results[0].Candidate.ID)
		assert.Equal(t, "hamburg", answer.Results[1].Candidate.ID)
		assert.Equal(t, 2, answer.Excluded)

		assert.InDelta(t, 2, testutil.ToFloat64(m.CandidatesExcluded.WithLabelValues("toilets")), 0)
		assert.InDelta(t, 1, testutil.ToFloat64(m.NearestQueries.WithLabelValues("toilets", "success")), 0)
	})

	t.Run("invalid query", func(t *testing.T) {
		_, err := finder.Nearest(ctx, models.CategoryToilets, models.GeoPoint{Latitude: 91}, 2)

		require.ErrorIs(t, err, ranker.ErrInvalidQuery)
		assert.InDelta(t, 1, testutil.ToFloat64(m.NearestQueries.WithLabelValues("toilets", "invalid")), 0)
	})

	t.Run("invalid k", func(t *testing.T) {
		_, err := finder.Nearest(ctx, models.CategoryToilets, berlin, 0)

		require.ErrorIs(t, err, ranker.ErrInvalidArgument)
	})

	t.Run("answer survives a later swap", func(t *testing.T) {
		answer, err := finder.Nearest(ctx, models.CategoryToilets, berlin, 1)
		require.NoError(t, err)

		store.Swap(catalog.Dataset{Category: models.CategoryToilets, Candidates: nil})

		assert.Equal(t, "near", answer.Results[0].Candidate.ID)
		empty, err := finder.Nearest(ctx, models.CategoryToilets, berlin, 1)
		require.NoError(t, err)
		assert.Empty(t, empty.Results)
		assert.NotEqual(t, answer.SnapshotID, empty.SnapshotID)
	})
}
