package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/farefinder/service-fares/internal/domain/fare"
)

// UberClient fetches price estimates from an Uber-shaped estimates endpoint
// and normalizes them into fare.ProviderQuote values.
type UberClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewUberClient creates a client for the given API base URL.
func NewUberClient(baseURL string) *UberClient {
	return &UberClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies this provider in logs and results.
func (c *UberClient) Name() string { return "uber" }

// Quotes fetches price estimates for the given trip. Estimates without a low
// price are dropped; dollar amounts are normalized to integer cents.
func (c *UberClient) Quotes(ctx context.Context, pickup, dropoff fare.Coordinate) ([]fare.ProviderQuote, error) {
	params := url.Values{}
	params.Set("start_latitude", fmt.Sprintf("%f", pickup.Latitude))
	params.Set("start_longitude", fmt.Sprintf("%f", pickup.Longitude))
	params.Set("end_latitude", fmt.Sprintf("%f", dropoff.Latitude))
	params.Set("end_longitude", fmt.Sprintf("%f", dropoff.Longitude))
	params.Set("seat_count", "1")

	endpoint := c.baseURL + "/v1.2/estimates/price?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build uber request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("uber request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("uber returned status %d", resp.StatusCode)
	}

	var payload struct {
		Prices []struct {
			DisplayName  string   `json:"display_name"`
			ProductID    string   `json:"product_id"`
			LowEstimate  *float64 `json:"low_estimate"`
			HighEstimate *float64 `json:"high_estimate"`
			Duration     int      `json:"duration"`
			CurrencyCode string   `json:"currency_code"`
		} `json:"prices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode uber response: %w", err)
	}

	quotes := make([]fare.ProviderQuote, 0, len(payload.Prices))
	for _, p := range payload.Prices {
		if p.LowEstimate == nil {
			continue
		}
		quote := fare.ProviderQuote{
			DisplayName:      p.DisplayName,
			RideType:         p.ProductID,
			LowEstimateCents: dollarsToCents(*p.LowEstimate),
			DurationSeconds:  p.Duration,
			Currency:         p.CurrencyCode,
		}
		if p.HighEstimate != nil {
			quote.HighEstimateCents = dollarsToCents(*p.HighEstimate)
		}
		quotes = append(quotes, quote)
	}
	return quotes, nil
}

func dollarsToCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}
