package common

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

// DistanceKm is the great-circle distance between two lat/lng positions
func DistanceKm(fromLat, fromLng, toLat, toLng float64) float64 {
	// orb points are (lng, lat)
	from := orb.Point{fromLng, fromLat}
	to := orb.Point{toLng, toLat}
	return geo.DistanceHaversine(from, to) / 1000
}

// FormatDistance renders a distance label such as "0.8 km"
func FormatDistance(km float64) string {
	return fmt.Sprintf("%.1f km", km)
}

// ValidPosition reports whether lat/lng are usable coordinates
func ValidPosition(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
