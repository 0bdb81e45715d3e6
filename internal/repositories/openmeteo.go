package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"solar-wind-forecast/internal/models"
	"solar-wind-forecast/pkg/logger"
)

const (
	OpenMeteoBaseURL = "https://api.open-meteo.com/v1/forecast"

	// hourlyFields are requested in this order; temperature is fetched but not displayed.
	hourlyFields = "temperature_2m,windspeed_10m,direct_radiation,diffuse_radiation"
)

type OpenMeteoRepository struct {
	baseURL    string
	httpClient HTTPClient
	l          *logger.Logger
}

func NewOpenMeteoRepository(baseURL string, l *logger.Logger, httpClient HTTPClient) *OpenMeteoRepository {
	if baseURL == "" {
		baseURL = OpenMeteoBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &OpenMeteoRepository{
		baseURL:    baseURL,
		httpClient: httpClient,
		l:          l,
	}
}

func (o *OpenMeteoRepository) Name() string {
	return "open-meteo"
}

func (o *OpenMeteoRepository) forecastURL(coords models.Coordinates, days int) string {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Set("hourly", hourlyFields)
	params.Set("timezone", "auto")
	params.Set("forecast_days", strconv.Itoa(days))

	return o.baseURL + "?" + params.Encode()
}

// FetchForecast issues exactly one request. The payload shape is returned unchecked;
// validation happens when the forecast is rendered.
func (o *OpenMeteoRepository) FetchForecast(ctx context.Context, coords models.Coordinates, days int) (*models.ForecastPayload, error) {
	reqURL := o.forecastURL(coords, days)

	o.l.Info("making openmeteo API request", map[string]any{
		"repository": o.Name(),
		"coords":     coords.String(),
		"days":       days,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, models.NewError(models.NetworkError, models.MsgNetwork, fmt.Errorf("failed to create request: %w", err))
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, models.NewError(models.NetworkError, models.MsgNetwork, fmt.Errorf("failed to do request: %w", err))
	}
	defer resp.Body.Close()

	o.l.Info("received openmeteo API response", map[string]any{
		"repository": o.Name(),
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.NewError(models.NetworkError, models.MsgNetwork, fmt.Errorf("failed to read response body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, models.NewError(
			models.UpstreamError,
			"Forecast API error: "+resp.Status,
			fmt.Errorf("HTTP error (status %d): %s", resp.StatusCode, upstreamReason(body)),
		)
	}

	var payload models.ForecastPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, models.NewError(
			models.UpstreamError,
			"Forecast API returned a response that could not be read.",
			fmt.Errorf("failed to parse JSON response: %w", err),
		)
	}

	hours := 0
	if payload.Hourly != nil {
		hours = len(payload.Hourly.Time)
	}
	o.l.Debug("parsed openmeteo API response", map[string]any{
		"repository": o.Name(),
		"params":     payload.RequestParams(),
		"hours":      hours,
	})

	return &payload, nil
}

// OpenMeteoErrorResponse is the body Open-Meteo sends with 4xx responses.
type OpenMeteoErrorResponse struct {
	Error  bool   `json:"error"`
	Reason string `json:"reason"`
}

func upstreamReason(body []byte) string {
	var errorResp OpenMeteoErrorResponse
	if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error && errorResp.Reason != "" {
		return errorResp.Reason
	}
	if len(body) > 256 {
		body = body[:256]
	}
	return string(body)
}
