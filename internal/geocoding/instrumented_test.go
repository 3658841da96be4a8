package geocoding_test

import (
	"testing"

	"github.com/UnknownOlympus/kiez/internal/geocoding"
	"github.com/UnknownOlympus/kiez/internal/metrics"
	"github.com/UnknownOlympus/kiez/internal/models"
	"github.com/UnknownOlympus/kiez/test/mocks"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumented(t *testing.T) {
	ctx := t.Context()

	t.Run("nil provider stays nil", func(t *testing.T) {
		appMetrics := metrics.NewMetrics(prometheus.NewRegistry())

		assert.Nil(t, geocoding.Instrumented(nil, "none", appMetrics))
	})

	t.Run("counts errors and observes latency", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		appMetrics := metrics.NewMetrics(reg)
		inner := mocks.NewProvider(t)
		provider := geocoding.Instrumented(inner, "nominatim", appMetrics)
		point := &models.GeoPoint{Latitude: 52.5, Longitude: 13.4}

		inner.On("Geocode", ctx, "ok").Return(point, nil).Once()
		inner.On("Geocode", ctx, "bad").Return(nil, assert.AnError).Once()

		got, err := provider.Geocode(ctx, "ok")
		require.NoError(t, err)
		assert.Equal(t, point, got)

		_, err = provider.Geocode(ctx, "bad")
		require.ErrorIs(t, err, assert.AnError)

		assert.InDelta(t, 1, testutil.ToFloat64(appMetrics.GeocodeErrors), 0)
		assert.Equal(t, 1, testutil.CollectAndCount(appMetrics.GeocodeSeconds))
	})
}
