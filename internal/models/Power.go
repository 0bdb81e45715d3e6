package models

// SeriesID identifies one of the two power series.
type SeriesID string

const (
	SeriesSolar SeriesID = "solar"
	SeriesWind  SeriesID = "wind"
)

// AllSeries is the fixed display order.
var AllSeries = []SeriesID{SeriesSolar, SeriesWind}

func ParseSeriesID(s string) (SeriesID, bool) {
	switch SeriesID(s) {
	case SeriesSolar:
		return SeriesSolar, true
	case SeriesWind:
		return SeriesWind, true
	}
	return "", false
}

// DerivedPower holds the W/m² estimates, same length as the ForecastSeries they came from.
type DerivedPower struct {
	Solar []float64
	Wind  []float64
}

func (d DerivedPower) Series(id SeriesID) []float64 {
	if id == SeriesWind {
		return d.Wind
	}
	return d.Solar
}
