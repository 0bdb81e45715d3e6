package repositories

import (
	"context"
	"net/http"
	"time"

	"solar-wind-forecast/config"
	"solar-wind-forecast/internal/models"
	"solar-wind-forecast/pkg/logger"
)

// HTTPClient is satisfied by *http.Client and by test doubles.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// GeocodingRepository resolves a place name into candidate locations, best match first.
type GeocodingRepository interface {
	Name() string
	Search(ctx context.Context, name string) ([]models.GeocodingResult, error)
}

// ForecastRepository fetches the raw hourly forecast for a point.
type ForecastRepository interface {
	Name() string
	FetchForecast(ctx context.Context, coords models.Coordinates, days int) (*models.ForecastPayload, error)
}

// InitRepositories builds the Open-Meteo clients from configuration, each behind its own rate limiter.
func InitRepositories(cfg *config.Config, l *logger.Logger) (GeocodingRepository, ForecastRepository) {
	geoCfg := cfg.Upstream.Geocoding
	fcCfg := cfg.Upstream.Forecast

	geocoding := NewOpenMeteoGeocodingRepository(
		geoCfg.BaseURL,
		l,
		&http.Client{Timeout: time.Duration(geoCfg.Timeout) * time.Second},
	)
	forecast := NewOpenMeteoRepository(
		fcCfg.BaseURL,
		l,
		&http.Client{Timeout: time.Duration(fcCfg.Timeout) * time.Second},
	)

	return NewRateLimitedGeocoding(geocoding, geoCfg.RPS, geoCfg.Burst),
		NewRateLimitedForecast(forecast, fcCfg.RPS, fcCfg.Burst)
}
