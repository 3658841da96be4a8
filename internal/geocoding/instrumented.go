package geocoding

import (
	"context"
	"time"

	"github.com/UnknownOlympus/kiez/internal/metrics"
	"github.com/UnknownOlympus/kiez/internal/models"
)

type instrumented struct {
	next    Provider
	name    string
	metrics *metrics.Metrics
}

// Instrumented decorates provider with latency and error metrics labeled by name.
// A nil provider stays nil.
func Instrumented(provider Provider, name string, m *metrics.Metrics) Provider {
	if provider == nil {
		return nil
	}

	return &instrumented{next: provider, name: name, metrics: m}
}

func (i *instrumented) Geocode(ctx context.Context, address string) (*models.GeoPoint, error) {
	start := time.Now()
	point, err := i.next.Geocode(ctx, address)
	i.metrics.GeocodeSeconds.WithLabelValues(i.name).Observe(time.Since(start).Seconds())
	if err != nil {
		i.metrics.GeocodeErrors.Inc()
	}

	return point, err
}
