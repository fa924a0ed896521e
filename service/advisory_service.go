package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"agroadvisor.app/errors"
	"agroadvisor.app/locale"
	"agroadvisor.app/metrics"
	"agroadvisor.app/models"
	"agroadvisor.app/nlp"
	"agroadvisor.app/pkg/validation"
	"agroadvisor.app/providers"
)

// State is one stage of the advisory pipeline
type State string

const (
	StateReceivedRequest   State = "received_request"
	StateExtractingContext State = "extracting_context"
	StateGrounding         State = "grounding"
	StateUngrounded        State = "ungrounded"
	StateComposing         State = "composing"
	StateStreaming         State = "streaming"
	StateDone              State = "done"
	StateFailed            State = "failed"
)

// TransitionObserver receives every pipeline state transition. Used for
// structured logging by default and for assertions in tests.
type TransitionObserver func(requestID uuid.UUID, from, to State, fields map[string]interface{})

// LogTransitions is the default observer: one slog line per transition.
func LogTransitions(requestID uuid.UUID, from, to State, fields map[string]interface{}) {
	args := []any{"request_id", requestID.String(), "from", string(from), "to", string(to)}
	for k, v := range fields {
		args = append(args, k, v)
	}
	slog.Info("advisory transition", args...)
}

// AdvisoryService orchestrates the advisory pipeline: location extraction,
// weather grounding, prompt composition, and model streaming. Weather
// failures degrade the request to an ungrounded answer; only validation and
// model startup failures abort it.
type AdvisoryService struct {
	weatherService WeatherServiceInterface
	model          providers.ModelProvider
	composer       *PromptComposer
	advisorMetrics *metrics.AdvisoryMetrics
	defaultLang    locale.Language
	observer       TransitionObserver
}

// NewAdvisoryService creates the orchestrator. A nil observer defaults to
// LogTransitions.
func NewAdvisoryService(
	weatherService WeatherServiceInterface,
	model providers.ModelProvider,
	composer *PromptComposer,
	advisorMetrics *metrics.AdvisoryMetrics,
	defaultLang locale.Language,
	observer TransitionObserver,
) *AdvisoryService {
	if observer == nil {
		observer = LogTransitions
	}
	return &AdvisoryService{
		weatherService: weatherService,
		model:          model,
		composer:       composer,
		advisorMetrics: advisorMetrics,
		defaultLang:    defaultLang,
		observer:       observer,
	}
}

// Advise runs the pipeline for one request. On success the returned channel
// streams model tokens and closes when the answer is complete; if the model
// fails mid-stream, a locale fallback notice is appended to the partial
// output before the channel closes. A non-nil error means nothing was
// streamed and the caller should answer with a mapped error response.
func (s *AdvisoryService) Advise(ctx context.Context, req *models.AdvisoryRequest) (<-chan string, error) {
	requestID := uuid.New()
	state := StateReceivedRequest
	s.observer(requestID, "", state, map[string]interface{}{"lang": req.Language})

	if !validation.IsNotEmpty(req.Message) {
		s.transition(requestID, &state, StateFailed, map[string]interface{}{"reason": "blank message"})
		s.recordOutcome(metrics.OutcomeFailed)
		return nil, errors.NewValidationError("message cannot be empty")
	}

	lang := locale.Parse(req.Language, s.defaultLang)

	s.transition(requestID, &state, StateExtractingContext, nil)
	snapshot, grounded := s.ground(ctx, requestID, &state, req, lang)

	s.transition(requestID, &state, StateComposing, map[string]interface{}{"grounded": grounded})
	prompt := s.composer.Compose(lang, req.Message, snapshot)

	chunks, err := s.model.StreamChat(ctx, prompt)
	if err != nil {
		s.transition(requestID, &state, StateFailed, map[string]interface{}{"error": err.Error()})
		s.recordOutcome(metrics.OutcomeFailed)
		return nil, err
	}
	s.transition(requestID, &state, StateStreaming, nil)

	out := make(chan string)
	go s.pumpTokens(requestID, state, lang, grounded, chunks, out)
	return out, nil
}

// ground extracts a location from the message and fetches a weather snapshot
// for it. Extraction misses and provider failures both leave the request
// ungrounded; they never abort it. A snapshot supplied with the request is
// used as-is.
func (s *AdvisoryService) ground(ctx context.Context, requestID uuid.UUID, state *State, req *models.AdvisoryRequest, lang locale.Language) (*models.WeatherSnapshot, bool) {
	if req.Weather != nil {
		s.transition(requestID, state, StateGrounding, map[string]interface{}{"source": "request"})
		return req.Weather, true
	}

	city, found := nlp.ExtractLocation(req.Message)
	if !found || !nlp.IsWeatherQuery(req.Message) {
		s.transition(requestID, state, StateUngrounded, map[string]interface{}{"location_found": found})
		return nil, false
	}

	s.transition(requestID, state, StateGrounding, map[string]interface{}{"city": city})
	snapshot, err := s.weatherService.GetSnapshot(ctx, providers.WeatherQuery{City: city, Lang: string(lang)})
	if err != nil {
		slog.Warn("weather grounding failed, continuing ungrounded",
			"request_id", requestID.String(), "city", city, "error", err)
		return nil, false
	}
	return snapshot, true
}

func (s *AdvisoryService) pumpTokens(requestID uuid.UUID, state State, lang locale.Language, grounded bool, chunks <-chan providers.ModelChunk, out chan<- string) {
	defer close(out)

	tokenCount := 0
	for chunk := range chunks {
		if chunk.Err != nil {
			slog.Error("model stream failed", "request_id", requestID.String(), "tokens", tokenCount, "error", chunk.Err)
			out <- "\n\n" + locale.Table(lang).ErrorChat
			s.transition(requestID, &state, StateFailed, map[string]interface{}{"tokens": tokenCount})
			s.recordOutcome(metrics.OutcomeFailed)
			s.recordTokens(tokenCount)
			return
		}
		out <- chunk.Token
		tokenCount++
	}

	s.transition(requestID, &state, StateDone, map[string]interface{}{"tokens": tokenCount})
	if grounded {
		s.recordOutcome(metrics.OutcomeGrounded)
	} else {
		s.recordOutcome(metrics.OutcomeUngrounded)
	}
	s.recordTokens(tokenCount)
}

func (s *AdvisoryService) transition(requestID uuid.UUID, state *State, to State, fields map[string]interface{}) {
	s.observer(requestID, *state, to, fields)
	*state = to
}

func (s *AdvisoryService) recordOutcome(outcome string) {
	if s.advisorMetrics != nil {
		s.advisorMetrics.RecordOutcome(outcome)
	}
}

func (s *AdvisoryService) recordTokens(count int) {
	if s.advisorMetrics != nil {
		s.advisorMetrics.RecordStreamedTokens(count)
	}
}
