package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"solar-wind-forecast/internal/models"
	"solar-wind-forecast/pkg/logger"
)

const (
	OpenMeteoGeocodingBaseURL = "https://geocoding-api.open-meteo.com/v1/search"

	msgGeocodingNetwork = "Could not reach the geocoding service. Please check your network connection."
)

type OpenMeteoGeocodingRepository struct {
	baseURL    string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewOpenMeteoGeocodingRepository(baseURL string, l *logger.Logger, httpClient HTTPClient) *OpenMeteoGeocodingRepository {
	if baseURL == "" {
		baseURL = OpenMeteoGeocodingBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &OpenMeteoGeocodingRepository{
		baseURL:    baseURL,
		httpClient: httpClient,
		l:          l,
	}
}

func (g *OpenMeteoGeocodingRepository) Name() string {
	return "open-meteo-geocoding"
}

type geocodingResponse struct {
	Results []models.GeocodingResult `json:"results"`
}

// Search asks for the single best match. An empty slice with a nil error means nothing matched;
// the API omits "results" entirely in that case.
func (g *OpenMeteoGeocodingRepository) Search(ctx context.Context, name string) ([]models.GeocodingResult, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("count", "1")
	params.Set("format", "json")
	reqURL := g.baseURL + "?" + params.Encode()

	g.l.Info("making geocoding API request", map[string]any{
		"repository": g.Name(),
		"name":       name,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, models.NewError(models.NetworkError, msgGeocodingNetwork, fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, models.NewError(models.NetworkError, msgGeocodingNetwork, fmt.Errorf("failed to do request: %w", err))
	}
	defer resp.Body.Close()

	g.l.Info("received geocoding API response", map[string]any{
		"repository": g.Name(),
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.NewError(models.NetworkError, msgGeocodingNetwork, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, models.NewError(
			models.UpstreamError,
			"Geocoding API error: "+resp.Status,
			fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, upstreamReason(body)),
		)
	}

	var response geocodingResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, models.NewError(
			models.UpstreamError,
			"Geocoding API returned a response that could not be read.",
			fmt.Errorf("failed to parse JSON response: %w", err),
		)
	}

	g.l.Debug("parsed geocoding API response", map[string]any{
		"repository": g.Name(),
		"results":    len(response.Results),
	})

	return response.Results, nil
}
