package repositories

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"solar-wind-forecast/internal/models"
)

const msgRateLimited = "The weather service is busy right now. Please try again in a moment."

// newLimiter treats a non-positive rps as "no limit".
func newLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(rps), burst)
}

func waitLimiter(ctx context.Context, limiter *rate.Limiter) error {
	if err := limiter.Wait(ctx); err != nil {
		return models.NewError(models.NetworkError, msgRateLimited, fmt.Errorf("rate limit wait canceled: %w", err))
	}
	return nil
}

// RateLimitedGeocoding wraps a GeocodingRepository with a token bucket.
type RateLimitedGeocoding struct {
	repo    GeocodingRepository
	limiter *rate.Limiter
}

func NewRateLimitedGeocoding(repo GeocodingRepository, rps float64, burst int) *RateLimitedGeocoding {
	return &RateLimitedGeocoding{
		repo:    repo,
		limiter: newLimiter(rps, burst),
	}
}

func (r *RateLimitedGeocoding) Name() string {
	return r.repo.Name()
}

func (r *RateLimitedGeocoding) Search(ctx context.Context, name string) ([]models.GeocodingResult, error) {
	if err := waitLimiter(ctx, r.limiter); err != nil {
		return nil, err
	}
	return r.repo.Search(ctx, name)
}

// RateLimitedForecast wraps a ForecastRepository with a token bucket.
type RateLimitedForecast struct {
	repo    ForecastRepository
	limiter *rate.Limiter
}

func NewRateLimitedForecast(repo ForecastRepository, rps float64, burst int) *RateLimitedForecast {
	return &RateLimitedForecast{
		repo:    repo,
		limiter: newLimiter(rps, burst),
	}
}

func (r *RateLimitedForecast) Name() string {
	return r.repo.Name()
}

func (r *RateLimitedForecast) FetchForecast(ctx context.Context, coords models.Coordinates, days int) (*models.ForecastPayload, error) {
	if err := waitLimiter(ctx, r.limiter); err != nil {
		return nil, err
	}
	return r.repo.FetchForecast(ctx, coords, days)
}

var (
	_ GeocodingRepository = (*RateLimitedGeocoding)(nil)
	_ ForecastRepository  = (*RateLimitedForecast)(nil)
	_ GeocodingRepository = (*OpenMeteoGeocodingRepository)(nil)
	_ ForecastRepository  = (*OpenMeteoRepository)(nil)
)
