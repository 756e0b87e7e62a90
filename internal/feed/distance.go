package feed

import (
	"math"
	"sort"

	"github.com/makanlah-app/backend/internal/models"
)

const earthRadiusKm = 6371

// haversineKm computes the great-circle distance in kilometers between two
// coordinates using the haversine formula.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*math.Pi/180)*math.Cos(lat2*math.Pi/180)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// roundKm rounds a distance to 2 decimal places for presentation.
func roundKm(d float64) float64 {
	return math.Round(d*100) / 100
}

// ValidCoordinate reports whether a latitude/longitude pair is finite and
// within range.
func ValidCoordinate(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

type rankedPost struct {
	post       models.Post
	distanceKm float64
}

// rankByDistance orders posts by great-circle distance from the viewer,
// nearest first. Posts without a usable restaurant coordinate are dropped.
// The sort is stable so equidistant posts keep their incoming order.
func rankByDistance(viewerLat, viewerLng float64, posts []models.Post) []rankedPost {
	ranked := make([]rankedPost, 0, len(posts))
	for _, p := range posts {
		loc := p.RestaurantLocation
		if loc == nil || len(loc.Coordinates) != 2 {
			continue
		}
		d := haversineKm(viewerLat, viewerLng, loc.Latitude(), loc.Longitude())
		ranked = append(ranked, rankedPost{post: p, distanceKm: roundKm(d)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].distanceKm < ranked[j].distanceKm
	})
	return ranked
}
