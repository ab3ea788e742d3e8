// Package geo implements great-circle distance helpers over decimal-degree
// coordinates.
package geo

import (
	"math"
	"math/rand"
)

// EarthRadiusKm is the mean Earth radius used by Distance.
const EarthRadiusKm = 6371.0

// Location is a point in decimal degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Distance returns the haversine distance between a and b in kilometers.
func Distance(a, b Location) float64 {
	dLat := toRad(b.Lat - a.Lat)
	dLng := toRad(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Lat))*math.Cos(toRad(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// RoundTenth rounds km to one decimal place.
func RoundTenth(km float64) float64 {
	return math.Round(km*10) / 10
}

// Jitter returns a point offset from center by up to spread/2 degrees on
// each axis.
func Jitter(center Location, spread float64, rnd *rand.Rand) Location {
	return Location{
		Lat: center.Lat + (rnd.Float64()-0.5)*spread,
		Lng: center.Lng + (rnd.Float64()-0.5)*spread,
	}
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}
