// Package geocoding resolves free-form Berlin addresses and postcodes to coordinates.
// It is used when a dataset record names a place instead of carrying a coordinate.
package geocoding

import (
	"context"

	"github.com/UnknownOlympus/kiez/internal/models"
)

// Provider resolves an address into a coordinate.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.GeoPoint, error)
}
