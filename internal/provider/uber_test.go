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

func TestUberClientQuotes(t *testing.T) {
	pickup := fare.Coordinate{Latitude: 40.0, Longitude: -73.0}
	dropoff := fare.Coordinate{Latitude: 40.01, Longitude: -73.01}

	t.Run("normalizes dollars to cents", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1.2/estimates/price", r.URL.Path)
			assert.NotEmpty(t, r.URL.Query().Get("start_latitude"))
			assert.Equal(t, "1", r.URL.Query().Get("seat_count"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"prices":[
				{"display_name":"UberX","product_id":"uberx-id","low_estimate":10.0,"high_estimate":13.0,"duration":540,"currency_code":"USD"},
				{"display_name":"UberXL","product_id":"uberxl-id","low_estimate":15.55,"duration":540,"currency_code":"USD"}
			]}`))
		}))
		defer srv.Close()

		client := NewUberClient(srv.URL)
		assert.Equal(t, "uber", client.Name())

		quotes, err := client.Quotes(context.Background(), pickup, dropoff)
		require.NoError(t, err)
		require.Len(t, quotes, 2)

		assert.Equal(t, "UberX", quotes[0].DisplayName)
		assert.Equal(t, "uberx-id", quotes[0].RideType)
		assert.Equal(t, int64(1000), quotes[0].LowEstimateCents)
		assert.Equal(t, int64(1300), quotes[0].HighEstimateCents)
		assert.Equal(t, 540, quotes[0].DurationSeconds)
		assert.Equal(t, "USD", quotes[0].Currency)

		assert.Equal(t, int64(1555), quotes[1].LowEstimateCents)
		assert.Zero(t, quotes[1].HighEstimateCents)
	})

	t.Run("skips estimates without a low price", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"prices":[
				{"display_name":"Taxi","product_id":"taxi-id","low_estimate":null,"duration":540,"currency_code":"USD"},
				{"display_name":"UberX","product_id":"uberx-id","low_estimate":8.5,"duration":540,"currency_code":"USD"}
			]}`))
		}))
		defer srv.Close()

		quotes, err := NewUberClient(srv.URL).Quotes(context.Background(), pickup, dropoff)
		require.NoError(t, err)
		require.Len(t, quotes, 1)
		assert.Equal(t, "UberX", quotes[0].DisplayName)
		assert.Equal(t, int64(850), quotes[0].LowEstimateCents)
	})

	t.Run("empty prices yields empty quotes", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"prices":[]}`))
		}))
		defer srv.Close()

		quotes, err := NewUberClient(srv.URL).Quotes(context.Background(), pickup, dropoff)
		require.NoError(t, err)
		assert.Empty(t, quotes)
	})

	t.Run("non-200 is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		_, err := NewUberClient(srv.URL).Quotes(context.Background(), pickup, dropoff)
		assert.Error(t, err)
	})

	t.Run("malformed body is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{`))
		}))
		defer srv.Close()

		_, err := NewUberClient(srv.URL).Quotes(context.Background(), pickup, dropoff)
		assert.Error(t, err)
	})
}
