// Package power turns a raw forecast payload into validated hourly series and
// derives the solar and wind power-density estimates from them.
package power

import (
	"fmt"
	"math"
	"time"

	"solar-wind-forecast/internal/models"
)

// AirDensity is the sea-level air density in kg/m³ used by the wind formula.
const AirDensity = 1.225

var timeLayouts = []string{"2006-01-02T15:04", "2006-01-02T15:04:05"}

// SolarPower is max(0, direct+diffuse).
func SolarPower(direct, diffuse float64) float64 {
	return math.Max(0, direct+diffuse)
}

// WindPower is ½·ρ·v³ with negative speeds clamped to zero.
func WindPower(speed float64) float64 {
	v := math.Max(0, speed)
	return 0.5 * AirDensity * v * v * v
}

// Derive computes both series. It is pure and recomputed on every render.
func Derive(series *models.ForecastSeries) models.DerivedPower {
	n := series.Len()
	out := models.DerivedPower{
		Solar: make([]float64, n),
		Wind:  make([]float64, n),
	}

	for i := 0; i < n; i++ {
		out.Solar[i] = SolarPower(series.DirectRadiation[i], series.DiffuseRadiation[i])
		out.Wind[i] = WindPower(series.WindSpeed[i])
	}

	return out
}

// Validate checks the payload shape and builds a ForecastSeries.
// Every failure is an InvalidDataError.
func Validate(payload *models.ForecastPayload) (*models.ForecastSeries, error) {
	if payload == nil || payload.Hourly == nil {
		return nil, invalid("hourly block missing")
	}

	h := payload.Hourly
	switch {
	case h.Time == nil:
		return nil, invalid("hourly.time missing")
	case h.WindSpeed10m == nil:
		return nil, invalid("hourly.windspeed_10m missing")
	case h.DirectRadiation == nil:
		return nil, invalid("hourly.direct_radiation missing")
	case h.DiffuseRadiation == nil:
		return nil, invalid("hourly.diffuse_radiation missing")
	}

	n := len(h.Time)
	if len(h.WindSpeed10m) != n || len(h.DirectRadiation) != n || len(h.DiffuseRadiation) != n {
		return nil, invalid(fmt.Sprintf("length mismatch: time=%d windspeed=%d direct=%d diffuse=%d",
			n, len(h.WindSpeed10m), len(h.DirectRadiation), len(h.DiffuseRadiation)))
	}

	loc := Location(payload)
	timestamps := make([]time.Time, n)
	for i, raw := range h.Time {
		ts, err := parseTime(raw, loc)
		if err != nil {
			return nil, invalid(fmt.Sprintf("hourly.time[%d]: %v", i, err))
		}
		timestamps[i] = ts
	}

	return &models.ForecastSeries{
		Timestamps:       timestamps,
		WindSpeed:        h.WindSpeed10m,
		DirectRadiation:  h.DirectRadiation,
		DiffuseRadiation: h.DiffuseRadiation,
	}, nil
}

// Location resolves the zone the timestamps are expressed in. Unknown zone names fall back to
// the reported UTC offset.
func Location(payload *models.ForecastPayload) *time.Location {
	if payload.Timezone != "" {
		if loc, err := time.LoadLocation(payload.Timezone); err == nil {
			return loc
		}
	}
	name := payload.Timezone
	if name == "" {
		name = "UTC"
	}
	return time.FixedZone(name, payload.UTCOffsetSeconds)
}

func parseTime(raw string, loc *time.Location) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		ts, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func invalid(detail string) error {
	return models.NewError(models.InvalidDataError, models.MsgInvalidData, fmt.Errorf("%s", detail))
}
