package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/farefinder/service-fares/internal/domain/fare"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLyftClientQuotes(t *testing.T) {
	pickup := fare.Coordinate{Latitude: 40.0, Longitude: -73.0}
	dropoff := fare.Coordinate{Latitude: 40.01, Longitude: -73.01}

	t.Run("maps cents estimates directly", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/cost", r.URL.Path)
			assert.NotEmpty(t, r.URL.Query().Get("start_lat"))
			assert.NotEmpty(t, r.URL.Query().Get("end_lng"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"cost_estimates":[
				{"cost_token":"tok-1","display_name":"Lyft","estimated_cost_cents_min":950,"estimated_cost_cents_max":1400,"estimated_duration_seconds":600,"ride_type":"lyft","currency":"USD"},
				{"cost_token":"tok-2","display_name":"Lyft XL","estimated_cost_cents_min":1800,"estimated_cost_cents_max":2600,"estimated_duration_seconds":600,"ride_type":"lyft_plus","currency":"USD"}
			]}`))
		}))
		defer srv.Close()

		client := NewLyftClient(srv.URL)
		assert.Equal(t, "lyft", client.Name())

		quotes, err := client.Quotes(context.Background(), pickup, dropoff)
		require.NoError(t, err)
		require.Len(t, quotes, 2)

		assert.Equal(t, "Lyft", quotes[0].DisplayName)
		assert.Equal(t, "lyft", quotes[0].RideType)
		assert.Equal(t, int64(950), quotes[0].LowEstimateCents)
		assert.Equal(t, int64(1400), quotes[0].HighEstimateCents)
		assert.Equal(t, "tok-1", quotes[0].CostToken)
		assert.Equal(t, 600, quotes[0].DurationSeconds)
		assert.Equal(t, "USD", quotes[0].Currency)
	})

	t.Run("empty estimates yields empty quotes", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"cost_estimates":[]}`))
		}))
		defer srv.Close()

		quotes, err := NewLyftClient(srv.URL).Quotes(context.Background(), pickup, dropoff)
		require.NoError(t, err)
		assert.Empty(t, quotes)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := NewLyftClient(srv.URL).Quotes(context.Background(), pickup, dropoff)
		assert.Error(t, err)
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		_, err := NewLyftClient(srv.URL).Quotes(context.Background(), pickup, dropoff)
		assert.Error(t, err)
	})
}
