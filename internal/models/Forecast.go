package models

import (
	"fmt"
	"time"
)

// ForecastPayload is the forecast API response as received. Its shape is not validated on fetch.
type ForecastPayload struct {
	Latitude         float64     `json:"latitude"`
	Longitude        float64     `json:"longitude"`
	Timezone         string      `json:"timezone"`
	UTCOffsetSeconds int         `json:"utc_offset_seconds"`
	Hourly           *HourlyData `json:"hourly"`
}

// RequestParams is the short description used in log lines.
func (f *ForecastPayload) RequestParams() string {
	return fmt.Sprintf("lat: %.4f lon: %.4f tz: %s", f.Latitude, f.Longitude, f.Timezone)
}

// ForecastSeries holds the validated hourly series. All slices have the same length and
// index i refers to the same hour in each of them.
type ForecastSeries struct {
	Timestamps       []time.Time
	WindSpeed        []float64
	DirectRadiation  []float64
	DiffuseRadiation []float64
}

func (s *ForecastSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Timestamps)
}
