// Package models defines data structures used throughout the application
package models

// ForecastDay represents one compacted day of the provider forecast.
// Min/max temperatures are kept unrounded; rounding is a display concern.
type ForecastDay struct {
	Date        string  `json:"date"`
	TempMin     float64 `json:"tempMin"`
	TempMax     float64 `json:"tempMax"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

// WeatherSnapshot combines current conditions with a short forecast,
// normalized from the provider responses. Forecast entries are in
// ascending date order, at most one per calendar day, at most five total.
type WeatherSnapshot struct {
	Location    string        `json:"location"`
	Country     string        `json:"country"`
	Temperature int           `json:"temperature"`
	FeelsLike   int           `json:"feelsLike"`
	Humidity    int           `json:"humidity"`
	WindSpeed   float64       `json:"windSpeed"`
	Description string        `json:"description"`
	Icon        string        `json:"icon"`
	Forecast    []ForecastDay `json:"forecast"`
}

// AdvisoryRequest represents data required to produce an advisory answer
type AdvisoryRequest struct {
	Message  string           `json:"message" form:"message" binding:"required,notblank"`
	Language string           `json:"lang" form:"lang" binding:"omitempty,oneof=en ja"`
	Weather  *WeatherSnapshot `json:"weather,omitempty"`
}

// GroundedPrompt is the composed model input: a fixed persona instruction
// plus the user content, with the weather block prepended when grounded
type GroundedPrompt struct {
	SystemInstruction string
	UserContent       string
}

// TranscriptResponse represents the transcript returned by the speech endpoint
type TranscriptResponse struct {
	Text string `json:"text"`
}

// ErrorResponse represents an error message structure for API responses
type ErrorResponse struct {
	Error string `json:"error"`
}
