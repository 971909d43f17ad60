package gateway_http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/gocab/gocab/internal/pkg/models"
	"github.com/gocab/gocab/services/dispatch"
)

const defaultMapsTimeout = 5 * time.Second

// MapsClient is an HTTP client for a Google-Maps-shaped geocoding API. Every
// call carries the configured API key and is bounded by the client timeout.
type MapsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewMapsClient creates a new maps client from provider configuration
func NewMapsClient(cfg models.MapsConfig) *MapsClient {
	timeout := time.Duration(cfg.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = defaultMapsTimeout
	}
	return &MapsClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []struct {
			Distance struct {
				Value int64 `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int64 `json:"value"`
			} `json:"duration"`
		} `json:"legs"`
	} `json:"routes"`
}

type autocompleteResponse struct {
	Status      string `json:"status"`
	Predictions []struct {
		Description string `json:"description"`
	} `json:"predictions"`
}

// ResolveAddress geocodes a free-text address to a coordinate
func (m *MapsClient) ResolveAddress(ctx context.Context, address string) (models.Coordinate, error) {
	var resp geocodeResponse
	err := m.get(ctx, "/geocode/json", url.Values{"address": {address}}, &resp)
	if err != nil {
		return models.Coordinate{}, err
	}
	if resp.Status == "ZERO_RESULTS" || len(resp.Results) == 0 {
		return models.Coordinate{}, fmt.Errorf("%w: %q", dispatch.ErrNoResult, address)
	}
	if resp.Status != "OK" {
		return models.Coordinate{}, fmt.Errorf("%w: status %s", dispatch.ErrProvider, resp.Status)
	}

	loc := resp.Results[0].Geometry.Location
	return models.Coordinate{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}

// RouteMetrics returns driving distance and duration between two coordinates
func (m *MapsClient) RouteMetrics(ctx context.Context, origin, dest models.Coordinate) (*models.RouteMetrics, error) {
	params := url.Values{
		"origin":      {fmt.Sprintf("%f,%f", origin.Latitude, origin.Longitude)},
		"destination": {fmt.Sprintf("%f,%f", dest.Latitude, dest.Longitude)},
	}

	var resp directionsResponse
	if err := m.get(ctx, "/directions/json", params, &resp); err != nil {
		return nil, err
	}
	if resp.Status == "ZERO_RESULTS" || len(resp.Routes) == 0 || len(resp.Routes[0].Legs) == 0 {
		return nil, fmt.Errorf("%w: no route", dispatch.ErrNoResult)
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("%w: status %s", dispatch.ErrProvider, resp.Status)
	}

	metrics := &models.RouteMetrics{}
	for _, leg := range resp.Routes[0].Legs {
		metrics.DistanceMeters += leg.Distance.Value
		metrics.DurationSeconds += leg.Duration.Value
	}
	return metrics, nil
}

// Suggest returns address completions for a partial query
func (m *MapsClient) Suggest(ctx context.Context, partial string) ([]string, error) {
	var resp autocompleteResponse
	err := m.get(ctx, "/place/autocomplete/json", url.Values{"input": {partial}}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.Status == "ZERO_RESULTS" {
		return []string{}, nil
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("%w: status %s", dispatch.ErrProvider, resp.Status)
	}

	suggestions := make([]string, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		suggestions = append(suggestions, p.Description)
	}
	return suggestions, nil
}

func (m *MapsClient) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	params.Set("key", m.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", m.baseURL, endpoint, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", dispatch.ErrProvider, err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", dispatch.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: provider returned %d", dispatch.ErrProvider, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: undecodable response: %v", dispatch.ErrProvider, err)
	}
	return nil
}
