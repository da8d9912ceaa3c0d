package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/farefinder/service-fares/internal/domain/fare"
	"go.uber.org/zap"
)

const defaultBaseURL = "https://maps.googleapis.com"

// GoogleValidator checks pickup candidates against the Google Maps reverse
// geocoding API. A coordinate is considered a valid pickup point when any
// returned result carries a "route" type tag.
type GoogleValidator struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewGoogleValidator creates a validator backed by the Google geocoding API.
func NewGoogleValidator(apiKey string, logger *zap.Logger) *GoogleValidator {
	return &GoogleValidator{
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

// NewGoogleValidatorWithBaseURL creates a validator against a custom endpoint.
// Used by tests to point at a stub server.
func NewGoogleValidatorWithBaseURL(baseURL, apiKey string, logger *zap.Logger) *GoogleValidator {
	v := NewGoogleValidator(apiKey, logger)
	v.baseURL = baseURL
	return v
}

// IsValidStreet issues one reverse-geocode lookup and reports whether the
// coordinate sits on a routable street. A non-success response is returned as
// an error; the orchestrator excludes just that candidate.
func (v *GoogleValidator) IsValidStreet(ctx context.Context, point fare.Coordinate) (bool, error) {
	params := url.Values{}
	params.Set("latlng", fmt.Sprintf("%f,%f", point.Latitude, point.Longitude))
	params.Set("key", v.apiKey)

	endpoint := v.baseURL + "/maps/api/geocode/json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return false, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("geocode returned status %d", resp.StatusCode)
	}

	var payload struct {
		Results []struct {
			Types []string `json:"types"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return false, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	for _, result := range payload.Results {
		for _, t := range result.Types {
			if t == "route" {
				return true, nil
			}
		}
	}
	return false, nil
}

// BypassValidator accepts every coordinate. It is used when no geocoding key
// is configured so the service stays usable without external credentials.
type BypassValidator struct{}

// NewBypassValidator creates a validator that treats every point as valid.
func NewBypassValidator() *BypassValidator {
	return &BypassValidator{}
}

// IsValidStreet always returns true.
func (*BypassValidator) IsValidStreet(context.Context, fare.Coordinate) (bool, error) {
	return true, nil
}

// NewValidator selects the Google-backed validator when an API key is
// configured and the fail-open bypass otherwise.
func NewValidator(apiKey string, logger *zap.Logger) fare.StreetValidator {
	if apiKey == "" {
		logger.Info("no geocoding key configured, street validation bypassed")
		return NewBypassValidator()
	}
	return NewGoogleValidator(apiKey, logger)
}
