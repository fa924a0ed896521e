package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"agroadvisor.app/config"
	"agroadvisor.app/errors"
	"agroadvisor.app/metrics"
	"agroadvisor.app/models"
	"agroadvisor.app/stream"
)

// GroqProvider implements ModelProvider and Transcriber against Groq's
// OpenAI-compatible API. One process-scoped instance is created at startup
// and shared by all requests.
type GroqProvider struct {
	apiKey             string
	baseURL            string
	chatModel          string
	temperature        float64
	transcribeModel    string
	transcribeLanguage string
	client             *http.Client
	metrics            *metrics.AdvisoryMetrics
}

// NewGroqProvider creates a Groq client from configuration.
// Latency metrics are optional; pass nil to disable them.
func NewGroqProvider(cfg *config.ModelConfig, advisorMetrics *metrics.AdvisoryMetrics) *GroqProvider {
	return &GroqProvider{
		apiKey:             cfg.APIKey,
		baseURL:            cfg.BaseURL,
		chatModel:          cfg.ChatModel,
		temperature:        cfg.Temperature,
		transcribeModel:    cfg.TranscribeModel,
		transcribeLanguage: cfg.TranscribeLanguage,
		client:             &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		metrics:            advisorMetrics,
	}
}

// observeLatency records provider latency for one upstream call. For chat
// this covers the time until response headers, not the whole stream.
func (p *GroqProvider) observeLatency(operation string, elapsed time.Duration) {
	if p.metrics == nil {
		return
	}
	p.metrics.RecordProviderLatency("groq", operation, elapsed.Seconds())
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

type groqAPIError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// StreamChat starts a streaming chat completion for the grounded prompt and
// returns a channel of token chunks. The channel is closed after the final
// chunk; a chunk with non-nil Err terminates the stream.
func (p *GroqProvider) StreamChat(ctx context.Context, prompt models.GroundedPrompt) (<-chan ModelChunk, error) {
	if p.apiKey == "" {
		return nil, errors.NewConfigurationError("groq API key is not configured", nil)
	}

	payload, err := json.Marshal(chatCompletionRequest{
		Model: p.chatModel,
		Messages: []chatMessage{
			{Role: "system", Content: prompt.SystemInstruction},
			{Role: "user", Content: prompt.UserContent},
		},
		Temperature: p.temperature,
		Stream:      true,
	})
	if err != nil {
		return nil, errors.NewModelError("encode chat completion request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, errors.NewModelError("build chat completion request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Accept", "text/event-stream")

	start := time.Now()
	resp, err := p.client.Do(req)
	p.observeLatency("chat", time.Since(start))
	if err != nil {
		return nil, errors.NewModelError("chat completion request failed", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer func() {
			if closeErr := resp.Body.Close(); closeErr != nil {
				slog.Warn("close response body", "error", closeErr)
			}
		}()
		return nil, p.handleChatHTTPError(resp)
	}

	chunks := make(chan ModelChunk)
	go p.pumpStream(resp.Body, chunks)
	return chunks, nil
}

// pumpStream reads the SSE body chunk by chunk, decodes tokens through the
// carry-over decoder, and forwards them until end of stream.
func (p *GroqProvider) pumpStream(body io.ReadCloser, chunks chan<- ModelChunk) {
	defer close(chunks)
	defer func() {
		if closeErr := body.Close(); closeErr != nil {
			slog.Warn("close stream body", "error", closeErr)
		}
	}()

	decoder := stream.NewDecoder(stream.SSEEnvelope{})
	defer decoder.Close()

	buf := make([]byte, 4096)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			if text := decoder.Feed(buf[:n]); text != "" {
				chunks <- ModelChunk{Token: text}
			}
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			chunks <- ModelChunk{Err: errors.NewModelError("model stream interrupted", err)}
			return
		}
	}
}

func (p *GroqProvider) handleChatHTTPError(resp *http.Response) error {
	var apiErr groqAPIError
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)
	message := apiErr.Error.Message
	if message == "" {
		message = fmt.Sprintf("groq: HTTP %d error", resp.StatusCode)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return errors.NewConfigurationError("groq: invalid API key", nil)
	}
	return errors.NewModelError(message, nil)
}

// Transcribe sends audio bytes to the speech-to-text endpoint and returns
// the transcript. Any non-success outcome is a TranscriptionError; the
// caller does not retry.
func (p *GroqProvider) Transcribe(ctx context.Context, audio []byte, filename, contentType string) (string, error) {
	if p.apiKey == "" {
		return "", errors.NewConfigurationError("groq API key is not configured", nil)
	}
	if len(audio) == 0 {
		return "", errors.NewValidationError("audio payload cannot be empty")
	}
	if filename == "" {
		filename = "audio.webm"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", errors.NewTranscriptionError("build transcription request", err)
	}
	if _, err := part.Write(audio); err != nil {
		return "", errors.NewTranscriptionError("build transcription request", err)
	}
	if err := writer.WriteField("model", p.transcribeModel); err != nil {
		return "", errors.NewTranscriptionError("build transcription request", err)
	}
	if p.transcribeLanguage != "" {
		if err := writer.WriteField("language", p.transcribeLanguage); err != nil {
			return "", errors.NewTranscriptionError("build transcription request", err)
		}
	}
	if err := writer.WriteField("response_format", "json"); err != nil {
		return "", errors.NewTranscriptionError("build transcription request", err)
	}
	if err := writer.Close(); err != nil {
		return "", errors.NewTranscriptionError("build transcription request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", errors.NewTranscriptionError("build transcription request", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	start := time.Now()
	resp, err := p.client.Do(req)
	p.observeLatency("transcribe", time.Since(start))
	if err != nil {
		return "", errors.NewTranscriptionError("transcription request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		var apiErr groqAPIError
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		message := apiErr.Error.Message
		if message == "" {
			message = fmt.Sprintf("groq: HTTP %d error", resp.StatusCode)
		}
		return "", errors.NewTranscriptionError(message, nil)
	}

	var result transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.NewTranscriptionError("decode transcription response", err)
	}
	return result.Text, nil
}
