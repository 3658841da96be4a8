package models_test

import (
	"math"
	"testing"

	"github.com/UnknownOlympus/kiez/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, name := range []string{"toilets", " Fountains ", "DEMONSTRATIONS"} {
		cat, err := models.ParseCategory(name)
		require.NoError(t, err)
		assert.Contains(t, models.Categories(), cat)
	}

	_, err := models.ParseCategory("kiosks")
	require.ErrorIs(t, err, models.ErrUnknownCategory)
	assert.Contains(t, err.Error(), `"kiosks"`)
}

func TestGeoPoint_Valid(t *testing.T) {
	tests := []struct {
		name  string
		point models.GeoPoint
		want  bool
	}{
		{"berlin", models.NewGeoPoint(52.52, 13.405), true},
		{"poles and antimeridian", models.NewGeoPoint(-90, 180), true},
		{"latitude too large", models.NewGeoPoint(90.0001, 0), false},
		{"longitude too small", models.NewGeoPoint(0, -180.5), false},
		{"nan", models.NewGeoPoint(math.NaN(), 0), false},
		{"infinite", models.NewGeoPoint(0, math.Inf(1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.point.Valid())
		})
	}
}

func TestGeoPoint_String(t *testing.T) {
	assert.Equal(t, "52.5219,13.4132", models.NewGeoPoint(52.5219, 13.4132).String())
	assert.Equal(t, "-1,0", models.NewGeoPoint(-1, 0).String())
}

func TestCandidate(t *testing.T) {
	c := models.Candidate{Attributes: map[string]string{"PLZ": "10178"}}
	assert.Equal(t, "10178", c.Attr("PLZ"))
	assert.Empty(t, c.Attr("Thema"))
	assert.False(t, c.Locatable())

	c.Location = &models.GeoPoint{Latitude: 52.5, Longitude: 13.4}
	assert.True(t, c.Locatable())
}
