package models

import (
	"math"
	"strconv"
)

// Latitude and longitude bounds in degrees.
const (
	MaxLatitude  = 90.0
	MaxLongitude = 180.0
)

// GeoPoint represents a geographical point defined by its latitude and longitude in degrees.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`  // Latitude of the geographical point.
	Longitude float64 `json:"longitude"` // Longitude of the geographical point.
}

// NewGeoPoint returns a point with the given latitude and longitude.
func NewGeoPoint(lat, lon float64) GeoPoint {
	return GeoPoint{Latitude: lat, Longitude: lon}
}

// Valid reports whether both components are finite and inside the WGS84 ranges.
func (p GeoPoint) Valid() bool {
	if math.IsNaN(p.Latitude) || math.IsInf(p.Latitude, 0) {
		return false
	}
	if math.IsNaN(p.Longitude) || math.IsInf(p.Longitude, 0) {
		return false
	}

	return math.Abs(p.Latitude) <= MaxLatitude && math.Abs(p.Longitude) <= MaxLongitude
}

// String formats the point as "lat,lon", the form map links expect.
func (p GeoPoint) String() string {
	return strconv.FormatFloat(p.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(p.Longitude, 'f', -1, 64)
}
