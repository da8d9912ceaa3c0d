package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/farefinder/service-fares/internal/domain/fare"
)

// LyftClient fetches cost estimates from a Lyft-shaped cost endpoint and
// normalizes them into fare.ProviderQuote values.
type LyftClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewLyftClient creates a client for the given API base URL.
func NewLyftClient(baseURL string) *LyftClient {
	return &LyftClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name identifies this provider in logs and results.
func (c *LyftClient) Name() string { return "lyft" }

// Quotes fetches cost estimates for the given trip. Lyft already reports
// cents-denominated min/max costs, so no unit conversion is needed.
func (c *LyftClient) Quotes(ctx context.Context, pickup, dropoff fare.Coordinate) ([]fare.ProviderQuote, error) {
	params := url.Values{}
	params.Set("start_lat", fmt.Sprintf("%f", pickup.Latitude))
	params.Set("start_lng", fmt.Sprintf("%f", pickup.Longitude))
	params.Set("end_lat", fmt.Sprintf("%f", dropoff.Latitude))
	params.Set("end_lng", fmt.Sprintf("%f", dropoff.Longitude))

	endpoint := c.baseURL + "/v1/cost?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build lyft request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lyft request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lyft returned status %d", resp.StatusCode)
	}

	var payload struct {
		CostEstimates []struct {
			CostToken             string `json:"cost_token"`
			DisplayName           string `json:"display_name"`
			EstimatedCostCentsMin int64  `json:"estimated_cost_cents_min"`
			EstimatedCostCentsMax int64  `json:"estimated_cost_cents_max"`
			EstimatedDuration     int    `json:"estimated_duration_seconds"`
			RideType              string `json:"ride_type"`
			Currency              string `json:"currency"`
		} `json:"cost_estimates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode lyft response: %w", err)
	}

	quotes := make([]fare.ProviderQuote, 0, len(payload.CostEstimates))
	for _, e := range payload.CostEstimates {
		quotes = append(quotes, fare.ProviderQuote{
			DisplayName:       e.DisplayName,
			RideType:          e.RideType,
			LowEstimateCents:  e.EstimatedCostCentsMin,
			HighEstimateCents: e.EstimatedCostCentsMax,
			DurationSeconds:   e.EstimatedDuration,
			CostToken:         e.CostToken,
			Currency:          e.Currency,
		})
	}
	return quotes, nil
}
