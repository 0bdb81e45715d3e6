package models

import (
	"fmt"
	"math"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Coordinates is a WGS84 point as accepted by the forecast API.
type Coordinates struct {
	Latitude  float64 `json:"latitude" example:"52.52"`
	Longitude float64 `json:"longitude" example:"13.41"`
}

// Valid reports whether both components are finite and within range.
func (c Coordinates) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) {
		return false
	}
	return c.Latitude >= MinLatitude && c.Latitude <= MaxLatitude &&
		c.Longitude >= MinLongitude && c.Longitude <= MaxLongitude
}

func (c Coordinates) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}

// GeocodingResult is one match returned by the geocoding API.
type GeocodingResult struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Admin1    string  `json:"admin1"`
	Timezone  string  `json:"timezone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (g GeocodingResult) Coordinates() Coordinates {
	return Coordinates{Latitude: g.Latitude, Longitude: g.Longitude}
}
