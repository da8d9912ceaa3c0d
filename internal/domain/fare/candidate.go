package fare

import (
	"fmt"

	"github.com/farefinder/service-fares/internal/domain"
)

// CandidatePoint is a labeled coordinate considered as an alternative pickup
// spot. The label is what the caller sees in results, e.g. "NE 250ft".
type CandidatePoint struct {
	Label string     `json:"label"`
	Point Coordinate `json:"point"`
}

// GenerateCandidates produces the deterministic candidate sequence for a
// search: the origin itself first, then for each of the eight bearings an
// offset at half the search radius and one at the full radius. The sequence
// order is the canonical tie-break order for fare ranking, so it must be
// identical for identical inputs.
//
// The radius is given in feet, matching the public API; offsets are computed
// in meters.
func GenerateCandidates(origin Coordinate, radiusFeet int) ([]CandidatePoint, error) {
	if radiusFeet <= 0 {
		return nil, domain.NewValidationError(fmt.Sprintf("search radius must be positive, got %d", radiusFeet))
	}

	distancesFt := []int{radiusFeet / 2, radiusFeet}

	candidates := make([]CandidatePoint, 0, 1+len(Bearings)*len(distancesFt))
	candidates = append(candidates, CandidatePoint{Label: "Original", Point: origin})

	for _, bearing := range Bearings {
		for _, feet := range distancesFt {
			point, err := Offset(origin, FeetToMeters(float64(feet)), bearing)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, CandidatePoint{
				Label: fmt.Sprintf("%s %dft", bearing, feet),
				Point: point,
			})
		}
	}

	return candidates, nil
}
