package fare

import (
	"testing"

	"github.com/farefinder/service-fares/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCandidates(t *testing.T) {
	origin := Coordinate{Latitude: 40.0, Longitude: -73.0}

	t.Run("seventeen points with origin first", func(t *testing.T) {
		candidates, err := GenerateCandidates(origin, 500)
		require.NoError(t, err)
		require.Len(t, candidates, 17)

		assert.Equal(t, "Original", candidates[0].Label)
		assert.Equal(t, origin, candidates[0].Point)
	})

	t.Run("labels follow bearing and distance", func(t *testing.T) {
		candidates, err := GenerateCandidates(origin, 500)
		require.NoError(t, err)

		assert.Equal(t, "N 250ft", candidates[1].Label)
		assert.Equal(t, "N 500ft", candidates[2].Label)
		assert.Equal(t, "E 250ft", candidates[3].Label)
		assert.Equal(t, "SW 500ft", candidates[16].Label)
	})

	t.Run("deterministic for identical inputs", func(t *testing.T) {
		first, err := GenerateCandidates(origin, 500)
		require.NoError(t, err)
		second, err := GenerateCandidates(origin, 500)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("offsets stay near the origin", func(t *testing.T) {
		candidates, err := GenerateCandidates(origin, 500)
		require.NoError(t, err)
		for _, c := range candidates[1:] {
			// 500ft is ~152m; diagonals reach sqrt(2) further.
			distMeters := DistanceKm(origin, c.Point) * 1000
			assert.Greater(t, distMeters, 0.0, "candidate %s", c.Label)
			assert.Less(t, distMeters, 250.0, "candidate %s", c.Label)
		}
	})

	t.Run("non-positive radius is a validation error", func(t *testing.T) {
		for _, radius := range []int{0, -100} {
			_, err := GenerateCandidates(origin, radius)
			require.Error(t, err)
			appErr := &domain.AppError{}
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, domain.CodeValidation, appErr.Code)
		}
	})
}
