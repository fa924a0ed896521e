package service

import (
	"context"

	"agroadvisor.app/models"
	"agroadvisor.app/providers"
)

// WeatherServiceInterface defines the interface for weather aggregation
type WeatherServiceInterface interface {
	GetSnapshot(ctx context.Context, query providers.WeatherQuery) (*models.WeatherSnapshot, error)
}

// AdvisoryServiceInterface defines the interface for running the advisory
// pipeline. The returned channel carries model tokens and is closed when the
// stream ends; errors returned directly occurred before any token was sent.
type AdvisoryServiceInterface interface {
	Advise(ctx context.Context, req *models.AdvisoryRequest) (<-chan string, error)
}

// TranscribeServiceInterface defines the interface for speech-to-text
type TranscribeServiceInterface interface {
	TranscribeAudio(ctx context.Context, audio []byte, filename, contentType string) (string, error)
}

// Ensure implementations satisfy interfaces
var _ WeatherServiceInterface = (*WeatherService)(nil)
var _ AdvisoryServiceInterface = (*AdvisoryService)(nil)
var _ TranscribeServiceInterface = (*TranscribeService)(nil)
