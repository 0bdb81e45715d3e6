package models

// HourlyData mirrors the "hourly" object of the forecast API: parallel arrays indexed by hour.
// A field missing from the payload (or sent as null) stays nil.
type HourlyData struct {
	Time             []string  `json:"time"`
	Temperature2m    []float64 `json:"temperature_2m"`
	WindSpeed10m     []float64 `json:"windspeed_10m"`
	DirectRadiation  []float64 `json:"direct_radiation"`
	DiffuseRadiation []float64 `json:"diffuse_radiation"`
}
