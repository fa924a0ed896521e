package service

import (
	"context"
	"log/slog"

	"agroadvisor.app/errors"
	"agroadvisor.app/pkg/validation"
	"agroadvisor.app/providers"
)

// TranscribeService turns uploaded audio into text through the configured
// speech-to-text provider.
type TranscribeService struct {
	transcriber providers.Transcriber
}

// NewTranscribeService creates a transcription service
func NewTranscribeService(transcriber providers.Transcriber) *TranscribeService {
	return &TranscribeService{transcriber: transcriber}
}

// TranscribeAudio returns the transcript for the given audio bytes. An empty
// transcript is a TranscriptionError: the caller has nothing to send to the
// advisory pipeline.
func (s *TranscribeService) TranscribeAudio(ctx context.Context, audio []byte, filename, contentType string) (string, error) {
	if len(audio) == 0 {
		return "", errors.NewValidationError("audio payload cannot be empty")
	}

	text, err := s.transcriber.Transcribe(ctx, audio, filename, contentType)
	if err != nil {
		slog.Error("transcription failed", "filename", filename, "error", err)
		return "", err
	}

	trimmed, ok := validation.TrimAndValidate(text)
	if !ok {
		return "", errors.NewTranscriptionError("transcript is empty", nil)
	}
	return trimmed, nil
}
