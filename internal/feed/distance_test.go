package feed

import (
	"math"
	"testing"

	"github.com/makanlah-app/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestHaversineKm(t *testing.T) {
	// Same point is zero.
	assert.Equal(t, 0.0, haversineKm(3.1578, 101.7117, 3.1578, 101.7117))

	// One degree of latitude along a meridian is about 111.19 km.
	assert.InDelta(t, 111.19, haversineKm(0, 0, 1, 0), 0.05)

	// KLCC to Berjaya Times Square is roughly 1.6 km.
	d := haversineKm(3.1578, 101.7117, 3.1425, 101.7103)
	assert.InDelta(t, 1.6, d, 0.2)

	// Symmetric in its arguments.
	assert.InDelta(t,
		haversineKm(3.1578, 101.7117, 3.1425, 101.7103),
		haversineKm(3.1425, 101.7103, 3.1578, 101.7117),
		1e-9)
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 1.23, roundKm(1.23456))
	assert.Equal(t, 1.24, roundKm(1.236))
	assert.Equal(t, 0.0, roundKm(0))
	assert.Equal(t, 111.19, roundKm(111.1949))
}

func TestValidCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		lat, lng float64
		want     bool
	}{
		{"kuala lumpur", 3.1578, 101.7117, true},
		{"equator prime meridian", 0, 0, true},
		{"latitude boundary", 90, 0, true},
		{"longitude boundary", 0, -180, true},
		{"latitude too large", 90.01, 0, false},
		{"longitude too large", 0, 180.5, false},
		{"nan latitude", math.NaN(), 0, false},
		{"inf longitude", 0, math.Inf(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidCoordinate(tt.lat, tt.lng))
		})
	}
}

func locatedPost(lat, lng float64) models.Post {
	return models.Post{
		ID:                 primitive.NewObjectID(),
		RestaurantLocation: models.NewGeoPoint(lat, lng),
	}
}

func TestRankByDistance(t *testing.T) {
	near := locatedPost(3.1580, 101.7120)   // a few hundred meters away
	mid := locatedPost(3.1425, 101.7103)    // ~1.6 km away
	far := locatedPost(5.4141, 100.3288)    // Penang, hundreds of km away
	noLoc := models.Post{ID: primitive.NewObjectID()}
	malformed := models.Post{
		ID:                 primitive.NewObjectID(),
		RestaurantLocation: &models.GeoPoint{Type: "Point", Coordinates: []float64{101.7}},
	}

	ranked := rankByDistance(3.1578, 101.7117, []models.Post{far, noLoc, near, malformed, mid})

	assert.Len(t, ranked, 3)
	assert.Equal(t, near.ID, ranked[0].post.ID)
	assert.Equal(t, mid.ID, ranked[1].post.ID)
	assert.Equal(t, far.ID, ranked[2].post.ID)

	// Distances are non-decreasing and rounded to 2 decimals.
	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i].distanceKm, ranked[i-1].distanceKm)
	}
	for _, rp := range ranked {
		assert.Equal(t, roundKm(rp.distanceKm), rp.distanceKm)
	}
}

func TestRankByDistanceStableForTies(t *testing.T) {
	first := locatedPost(3.20, 101.75)
	second := locatedPost(3.20, 101.75)

	ranked := rankByDistance(3.1578, 101.7117, []models.Post{first, second})

	assert.Len(t, ranked, 2)
	assert.Equal(t, first.ID, ranked[0].post.ID)
	assert.Equal(t, second.ID, ranked[1].post.ID)
}
