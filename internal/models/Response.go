package models

import "time"

// ForecastResponse is the JSON body of the stateless forecast API.
type ForecastResponse struct {
	Location    string      `json:"location" example:"Berlin"`
	Coordinates Coordinates `json:"coordinates"`
	Timezone    string      `json:"timezone" example:"Europe/Berlin"`
	PageSize    int         `json:"page_size" example:"6"`
	Pages       int         `json:"pages" example:"12"`
	Hours       []HourPower `json:"hours"`
}

type HourPower struct {
	Time       time.Time `json:"time" example:"2026-10-16T13:00:00+02:00"`
	SolarPower float64   `json:"solar_power" example:"412.5"`
	WindPower  float64   `json:"wind_power" example:"27.21"`
}

// ErrorResponse is returned by the JSON endpoints on failure.
type ErrorResponse struct {
	Error string `json:"error" example:"Error finding location: Location \"Nowhere12345\" not found. Please be more specific or use coordinates."`
	Kind  string `json:"kind,omitempty" example:"not_found"`
}
