// Package datasets loads the amenity datasets from the City of Berlin and BWB websites
// and converts their records into ranking candidates.
package datasets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/kiez/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Source produces the full candidate list of one category.
type Source interface {
	Category() models.Category
	Name() string
	Fetch(ctx context.Context) ([]models.Candidate, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ErrUnexpectedStatus is returned when a download answers with anything but 200.
var ErrUnexpectedStatus = errors.New("unexpected HTTP status")

const (
	userAgent   = "kiez-amenity-finder/1.0 (https://github.com/UnknownOlympus/kiez)"
	maxDownload = 64 << 20
)

// NewHTTPClient returns the client used for dataset downloads. Requests are traced.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// fetch downloads location when it is an http(s) URL and reads it from disk otherwise,
// which allows running against local mirrors of the upstream files.
func fetch(ctx context.Context, client HTTPClient, location string) ([]byte, error) {
	if !isRemote(location) {
		data, err := os.ReadFile(strings.TrimPrefix(location, "file://"))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", location, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w %d from %s", ErrUnexpectedStatus, resp.StatusCode, location)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDownload))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}

func isRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// parseCoordinate reads a decimal degree value, accepting a decimal comma.
// An empty cell is reported as absent; text that is not a number yields NaN so
// the record is kept and later reported as malformed by the ranker.
func parseCoordinate(raw string) (float64, bool) {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if raw == "" {
		return 0, false
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN(), true
	}

	return value, true
}

// location builds a candidate location from raw latitude and longitude text.
func location(rawLat, rawLon string) *models.GeoPoint {
	lat, okLat := parseCoordinate(rawLat)
	lon, okLon := parseCoordinate(rawLon)
	if !okLat || !okLon {
		return nil
	}

	return &models.GeoPoint{Latitude: lat, Longitude: lon}
}
