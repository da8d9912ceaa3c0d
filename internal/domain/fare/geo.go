package fare

import (
	"fmt"
	"math"

	"github.com/farefinder/service-fares/internal/domain"
)

const (
	// earthRadiusKm is used for great-circle distances.
	earthRadiusKm = 6371.0
	// earthRadiusMeters is used for small coordinate offsets.
	earthRadiusMeters = 6378137.0
	// metersPerFoot converts the API's foot-denominated radii to meters.
	metersPerFoot = 0.3048
)

// Coordinate is an immutable latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the coordinate lies within valid degree ranges.
func (c Coordinate) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return domain.NewValidationError(fmt.Sprintf("latitude out of range: %f", c.Latitude))
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return domain.NewValidationError(fmt.Sprintf("longitude out of range: %f", c.Longitude))
	}
	return nil
}

// Bearing is one of the eight compass directions used for candidate offsets.
type Bearing string

const (
	BearingN  Bearing = "N"
	BearingE  Bearing = "E"
	BearingS  Bearing = "S"
	BearingW  Bearing = "W"
	BearingNE Bearing = "NE"
	BearingNW Bearing = "NW"
	BearingSE Bearing = "SE"
	BearingSW Bearing = "SW"
)

// Bearings lists all compass bearings in candidate-generation order.
var Bearings = []Bearing{BearingN, BearingE, BearingS, BearingW, BearingNE, BearingNW, BearingSE, BearingSW}

// IsValid returns true if the bearing is one of the eight compass directions.
func (b Bearing) IsValid() bool {
	switch b {
	case BearingN, BearingE, BearingS, BearingW, BearingNE, BearingNW, BearingSE, BearingSW:
		return true
	}
	return false
}

// DistanceKm returns the great-circle distance between two coordinates in
// kilometers using the haversine formula.
func DistanceKm(a, b Coordinate) float64 {
	dLat := degreesToRadians(b.Latitude - a.Latitude)
	dLng := degreesToRadians(b.Longitude - a.Longitude)

	latAR := degreesToRadians(a.Latitude)
	latBR := degreesToRadians(b.Latitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLng/2)*math.Sin(dLng/2)*math.Cos(latAR)*math.Cos(latBR)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Offset moves the origin by the given number of meters along a compass
// bearing. It uses a flat-Earth approximation at the origin's latitude, which
// is accurate to well under 1% for the few hundred meters the candidate
// generator uses; it is not geodesically exact over long distances.
func Offset(origin Coordinate, meters float64, bearing Bearing) (Coordinate, error) {
	if !bearing.IsValid() {
		return Coordinate{}, domain.NewValidationError(fmt.Sprintf("unknown bearing: %q", bearing))
	}

	deltaLat := (meters / earthRadiusMeters) * (180 / math.Pi)
	deltaLng := deltaLat / math.Cos(degreesToRadians(origin.Latitude))

	c := origin
	switch bearing {
	case BearingN:
		c.Latitude += deltaLat
	case BearingS:
		c.Latitude -= deltaLat
	case BearingE:
		c.Longitude += deltaLng
	case BearingW:
		c.Longitude -= deltaLng
	case BearingNE:
		c.Latitude += deltaLat
		c.Longitude += deltaLng
	case BearingNW:
		c.Latitude += deltaLat
		c.Longitude -= deltaLng
	case BearingSE:
		c.Latitude -= deltaLat
		c.Longitude += deltaLng
	case BearingSW:
		c.Latitude -= deltaLat
		c.Longitude -= deltaLng
	}
	return c, nil
}

// FeetToMeters converts feet to meters.
func FeetToMeters(feet float64) float64 {
	return feet * metersPerFoot
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
