package types

import "time"

// WeatherDay is the forecast for a single day of the trip.
type WeatherDay struct {
	Date          time.Time `json:"date"`
	Temperature   float64   `json:"temperature"`
	MinTemp       float64   `json:"min_temperature"`
	MaxTemp       float64   `json:"max_temperature"`
	Condition     string    `json:"condition"`
	Precipitation float64   `json:"precipitation"`
}

// WeatherSummary aggregates a forecast over the requested date range.
type WeatherSummary struct {
	AverageTemperature float64 `json:"average_temperature"`
	MinTemperature     float64 `json:"min_temperature"`
	MaxTemperature     float64 `json:"max_temperature"`
}

// WeatherForecast is the response of GET /weather/{city}.
type WeatherForecast struct {
	City     string         `json:"city"`
	Summary  WeatherSummary `json:"summary"`
	Forecast []WeatherDay   `json:"forecast,omitempty"`
}
