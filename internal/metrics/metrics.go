package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	RefreshTotal       *prometheus.CounterVec
	RefreshSeconds     *prometheus.HistogramVec
	RefreshInProgress  prometheus.Gauge
	DatasetCandidates  *prometheus.GaugeVec
	CandidatesExcluded *prometheus.CounterVec
	NearestQueries     *prometheus.CounterVec
	GeocodeSeconds     *prometheus.HistogramVec
	GeocodeErrors      prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RefreshTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "kiez_dataset_refresh_total",
			Help: "Total number of dataset refresh attempts.",
		}, []string{"category", "status"}),
		RefreshSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kiez_dataset_refresh_duration_seconds",
			Help:    "Duration of fetching and parsing a dataset.",
			Buckets: prometheus.DefBuckets,
		}, []string{"category"}),
		RefreshInProgress: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "kiez_refresh_in_progress",
			Help: "Set to 1 while a refresh cycle is running.",
		}),
		DatasetCandidates: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "kiez_dataset_candidates",
			Help: "Number of candidates in the currently published dataset.",
		}, []string{"category"}),
		CandidatesExcluded: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "kiez_candidates_excluded_total",
			Help: "Total number of candidates skipped by lookups for a missing or invalid coordinate.",
		}, []string{"category"}),
		NearestQueries: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "kiez_nearest_queries_total",
			Help: "Total number of nearest amenity lookups.",
		}, []string{"category", "status"}),
		GeocodeSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "kiez_geocoder_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		GeocodeErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "kiez_geocoder_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
	}
}
