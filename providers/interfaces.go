package providers

import (
	"context"
	"fmt"

	"agroadvisor.app/models"
)

// WeatherQuery identifies a location for the weather provider, either by
// canonical city name or by coordinates. Lang selects the provider's
// response locale for condition texts.
type WeatherQuery struct {
	City      string
	Lat, Lon  float64
	HasCoords bool
	Lang      string
}

// Key returns a stable identifier for cache lookups
func (q WeatherQuery) Key() string {
	if q.HasCoords {
		return fmt.Sprintf("%.4f,%.4f:%s", q.Lat, q.Lon, q.Lang)
	}
	return fmt.Sprintf("%s:%s", q.City, q.Lang)
}

// WeatherProvider defines the two provider operations the aggregator
// consumes: current conditions and the 5-day/3-hour forecast
type WeatherProvider interface {
	CurrentWeather(ctx context.Context, query WeatherQuery) (*CurrentConditions, error)
	Forecast(ctx context.Context, query WeatherQuery) (*ForecastResponse, error)
}

// ModelChunk is one streamed fragment from the language model. Err is
// terminal: after a chunk with non-nil Err the channel is closed.
type ModelChunk struct {
	Token string
	Err   error
}

// ModelProvider abstracts the streaming language model
type ModelProvider interface {
	StreamChat(ctx context.Context, prompt models.GroundedPrompt) (<-chan ModelChunk, error)
}

// Transcriber abstracts the speech-to-text service: audio bytes in,
// transcript text out
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename, contentType string) (string, error)
}
