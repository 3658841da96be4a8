package ranker_test

import (
	"math"
	"testing"

	"github.com/UnknownOlympus/kiez/internal/models"
	"github.com/UnknownOlympus/kiez/internal/ranker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(lat, lon float64) *models.GeoPoint {
	p := models.NewGeoPoint(lat, lon)
	return &p
}

func ids(results []models.RankedResult) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r.Candidate.ID)
	}
	return out
}

var berlin = models.NewGeoPoint(52.5200, 13.4050)

func TestRank(t *testing.T) {
	t.Parallel()

	t.Run("berlin center with hamburg outside top two", func(t *testing.T) {
		t.Parallel()
		candidates := []models.Candidate{
			{ID: "A", Location: point(52.5200, 13.4050)},
			{ID: "B", Location: point(52.5300, 13.4100)},
			{ID: "C", Location: point(53.5511, 9.9937)},
		}

		ranking, err := ranker.Rank(berlin, candidates, 2)

		require.NoError(t, err)
		require.Len(t, ranking.Results, 2)
		assert.Equal(t, []string{"A", "B"}, ids(ranking.Results))
		assert.InDelta(t, 0.0, ranking.Results[0].DistanceKm, 1e-9)
		assert.InDelta(t, 1.15, ranking.Results[1].DistanceKm, 0.05)
		assert.Zero(t, ranking.Excluded)
	})

	t.Run("k larger than collection", func(t *testing.T) {
		t.Parallel()
		candidates := []models.Candidate{
			{ID: "C", Location: point(53.5511, 9.9937)},
			{ID: "A", Location: point(52.5200, 13.4050)},
		}

		ranking, err := ranker.Rank(berlin, candidates, 10)

		require.NoError(t, err)
		assert.Equal(t, []string{"A", "C"}, ids(ranking.Results))
		assert.InDelta(t, 255, ranking.Results[1].DistanceKm, 3)
	})

	t.Run("empty collection", func(t *testing.T) {
		t.Parallel()

		ranking, err := ranker.Rank(berlin, nil, 5)

		require.NoError(t, err)
		assert.Empty(t, ranking.Results)
		assert.Zero(t, ranking.Excluded)
	})

	t.Run("non-numeric longitude is excluded and counted", func(t *testing.T) {
		t.Parallel()
		candidates := []models.Candidate{
			{ID: "bad", Location: point(52.5200, math.NaN())},
			{ID: "B", Location: point(52.5300, 13.4100)},
			{ID: "A", Location: point(52.5200, 13.4050)},
		}

		ranking, err := ranker.Rank(berlin, candidates, 5)

		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B"}, ids(ranking.Results))
		assert.Equal(t, 1, ranking.Excluded)
	})

	t.Run("missing and out of range coordinates are excluded", func(t *testing.T) {
		t.Parallel()
		candidates := []models.Candidate{
			{ID: "missing"},
			{ID: "north", Location: point(91, 13.4)},
			{ID: "inf", Location: point(52.5, math.Inf(1))},
			{ID: "A", Location: point(52.5200, 13.4050)},
		}

		ranking, err := ranker.Rank(berlin, candidates, 5)

		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, ids(ranking.Results))
		assert.Equal(t, 3, ranking.Excluded)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		t.Parallel()
		candidates := []models.Candidate{
			{ID: "far", Location: point(52.6, 13.5)},
			{ID: "first", Location: point(52.53, 13.41)},
			{ID: "second", Location: point(52.53, 13.41)},
			{ID: "third", Location: point(52.53, 13.41)},
		}

		ranking, err := ranker.Rank(berlin, candidates, 4)

		require.NoError(t, err)
		assert.Equal(t, []string{"first", "second", "third", "far"}, ids(ranking.Results))
	})

	t.Run("query point itself ranks first at zero", func(t *testing.T) {
		t.Parallel()
		query := models.NewGeoPoint(52.4862, 13.4247)
		candidates := []models.Candidate{
			{ID: "other", Location: point(52.49, 13.42)},
			{ID: "self", Location: point(query.Latitude, query.Longitude)},
		}

		ranking, err := ranker.Rank(query, candidates, 1)

		require.NoError(t, err)
		require.Len(t, ranking.Results, 1)
		assert.Equal(t, "self", ranking.Results[0].Candidate.ID)
		assert.Equal(t, 0.0, ranking.Results[0].DistanceKm)
	})

	t.Run("results are non-decreasing and bounded by k", func(t *testing.T) {
		t.Parallel()
		candidates := make([]models.Candidate, 0, 50)
		for i := range 50 {
			lat := 52.3 + float64((i*37)%50)/100
			lon := 13.1 + float64((i*11)%50)/80
			candidates = append(candidates, models.Candidate{ID: string(rune('a' + i%26)), Location: point(lat, lon)})
		}

		for _, k := range []int{1, 7, 50, 80} {
			ranking, err := ranker.Rank(berlin, candidates, k)

			require.NoError(t, err)
			assert.Len(t, ranking.Results, min(k, len(candidates)))
			for i := 1; i < len(ranking.Results); i++ {
				assert.LessOrEqual(t, ranking.Results[i-1].DistanceKm, ranking.Results[i].DistanceKm)
			}
		}
	})

	t.Run("input slice is not reordered", func(t *testing.T) {
		t.Parallel()
		candidates := []models.Candidate{
			{ID: "C", Location: point(53.5511, 9.9937)},
			{ID: "A", Location: point(52.5200, 13.4050)},
		}

		_, err := ranker.Rank(berlin, candidates, 2)

		require.NoError(t, err)
		assert.Equal(t, "C", candidates[0].ID)
		assert.Equal(t, "A", candidates[1].ID)
	})
}

func TestRank_Errors(t *testing.T) {
	t.Parallel()
	candidates := []models.Candidate{{ID: "A", Location: point(52.52, 13.405)}}

	t.Run("zero k", func(t *testing.T) {
		t.Parallel()

		_, err := ranker.Rank(berlin, candidates, 0)

		require.ErrorIs(t, err, ranker.ErrInvalidArgument)
		assert.NotErrorIs(t, err, ranker.ErrInvalidQuery)
	})

	t.Run("negative k", func(t *testing.T) {
		t.Parallel()

		_, err := ranker.Rank(berlin, candidates, -3)

		var rankErr *ranker.Error
		require.ErrorAs(t, err, &rankErr)
		assert.Equal(t, ranker.InvalidArgumentKind, rankErr.Kind)
		assert.Contains(t, err.Error(), "got -3")
	})

	t.Run("query latitude out of range", func(t *testing.T) {
		t.Parallel()

		_, err := ranker.Rank(models.NewGeoPoint(123, 13.4), candidates, 5)

		require.ErrorIs(t, err, ranker.ErrInvalidQuery)
	})

	t.Run("query longitude is NaN", func(t *testing.T) {
		t.Parallel()

		_, err := ranker.Rank(models.NewGeoPoint(52.5, math.NaN()), candidates, 5)

		require.ErrorIs(t, err, ranker.ErrInvalidQuery)
	})

	t.Run("empty collection still validates the query", func(t *testing.T) {
		t.Parallel()

		_, err := ranker.Rank(models.NewGeoPoint(-95, 0), nil, 5)

		require.ErrorIs(t, err, ranker.ErrInvalidQuery)
	})
}
