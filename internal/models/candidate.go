package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCategory is returned for category names outside Categories.
var ErrUnknownCategory = errors.New("unknown category")

// Category identifies one of the amenity datasets.
type Category string

const (
	// CategoryToilets is the dataset of public toilets.
	CategoryToilets Category = "toilets"
	// CategoryFountains is the dataset of drinking water fountains.
	CategoryFountains Category = "fountains"
	// CategoryDemonstrations is the dataset of demonstrations registered for today.
	CategoryDemonstrations Category = "demonstrations"
)

// Categories lists every known category in a stable order.
func Categories() []Category {
	return []Category{CategoryToilets, CategoryFountains, CategoryDemonstrations}
}

// ParseCategory converts a user supplied name into a Category.
func ParseCategory(name string) (Category, error) {
	cat := Category(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Categories() {
		if cat == known {
			return cat, nil
		}
	}

	return "", fmt.Errorf("%w %q", ErrUnknownCategory, name)
}

// Candidate is a labeled point of interest eligible for ranking.
// A nil Location means the source record carried no coordinate at all.
type Candidate struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Location    *GeoPoint         `json:"location,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// Attr returns the attribute stored under key, or an empty string.
func (c Candidate) Attr(key string) string {
	return c.Attributes[key]
}

// Locatable reports whether the candidate carries a usable coordinate.
func (c Candidate) Locatable() bool {
	return c.Location != nil && c.Location.Valid()
}

// RankedResult pairs a candidate with its distance to the query point, rounded to 2 decimals.
type RankedResult struct {
	Candidate  Candidate `json:"candidate"`
	DistanceKm float64   `json:"distance_km"`
}
