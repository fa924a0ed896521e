package api

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"agroadvisor.app/config"
	advisorerr "agroadvisor.app/errors"
	"agroadvisor.app/locale"
	"agroadvisor.app/metrics"
	"agroadvisor.app/models"
	"agroadvisor.app/providers"
	"agroadvisor.app/service"
	"agroadvisor.app/stream"
)

// Server represents the HTTP server and API handler
type Server struct {
	router            *gin.Engine
	config            *config.Config
	weatherService    service.WeatherServiceInterface
	advisoryService   service.AdvisoryServiceInterface
	transcribeService service.TranscribeServiceInterface
	cacheMetrics      *metrics.CacheMetrics
}

// NewServer creates and configures a new HTTP server
func NewServer(
	config *config.Config,
	weatherService service.WeatherServiceInterface,
	advisoryService service.AdvisoryServiceInterface,
	transcribeService service.TranscribeServiceInterface,
	cacheMetrics *metrics.CacheMetrics,
) *Server {
	registerValidators()
	router := gin.Default()

	server := &Server{
		router:            router,
		config:            config,
		weatherService:    weatherService,
		advisoryService:   advisoryService,
		transcribeService: transcribeService,
		cacheMetrics:      cacheMetrics,
	}

	server.setupRoutes()
	return server
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	}
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	{
		api.POST("/chat", s.chat)
		api.GET("/weather", s.getWeather)
		api.POST("/transcribe", s.transcribe)
		api.GET("/health", s.health)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.ServeAdvisorUI()
}

// Start begins the HTTP server
func (s *Server) Start() error {
	return s.router.Run(fmt.Sprintf(":%d", s.config.Server.Port))
}

// GetRouter returns the router for testing purposes
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// chat runs the advisory pipeline and streams the answer as framed token
// lines, flushed per token. Errors after the first token cannot change the
// response status; the pipeline appends a fallback notice to the stream
// instead.
func (s *Server) chat(c *gin.Context) {
	var req models.AdvisoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Error("Request binding error", "error", err)
		s.handleError(c, advisorerr.NewValidationError("message is required"))
		return
	}

	tokens, err := s.advisoryService.Advise(c.Request.Context(), &req)
	if err != nil {
		slog.Error("Advisory pipeline error", "error", err)
		s.handleError(c, err)
		return
	}

	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Status(http.StatusOK)

	for token := range tokens {
		if _, err := c.Writer.Write(stream.FormatDataLine(token)); err != nil {
			slog.Warn("Client disconnected mid-stream", "error", err)
			// Drain so the pipeline goroutine can finish.
			for range tokens {
			}
			return
		}
		c.Writer.Flush()
	}
}

func (s *Server) getWeather(c *gin.Context) {
	query, err := s.parseWeatherQuery(c)
	if err != nil {
		s.handleError(c, err)
		return
	}

	slog.Debug("Getting weather snapshot", "key", query.Key())
	snapshot, err := s.weatherService.GetSnapshot(c.Request.Context(), query)
	if err != nil {
		slog.Error("Weather service error", "error", err, "key", query.Key())
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (s *Server) parseWeatherQuery(c *gin.Context) (providers.WeatherQuery, error) {
	lang := locale.Parse(c.Query("lang"), locale.Parse(s.config.Advisor.DefaultLanguage, locale.Japanese))
	query := providers.WeatherQuery{Lang: string(lang)}

	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr != "" || lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			return query, advisorerr.NewValidationError("lat and lon must both be valid numbers")
		}
		query.Lat, query.Lon, query.HasCoords = lat, lon, true
		return query, nil
	}

	city := c.Query("city")
	if city == "" {
		return query, advisorerr.NewValidationError("city or lat/lon parameters are required")
	}
	query.City = city
	return query, nil
}

func (s *Server) transcribe(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		s.handleError(c, advisorerr.NewValidationError("audio file is required"))
		return
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			slog.Warn("close uploaded file", "error", closeErr)
		}
	}()

	audio, err := io.ReadAll(file)
	if err != nil {
		s.handleError(c, advisorerr.NewValidationError("could not read audio file"))
		return
	}

	slog.Debug("Transcribing audio", "filename", header.Filename, "bytes", len(audio))
	text, err := s.transcribeService.TranscribeAudio(c.Request.Context(), audio, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		slog.Error("Transcription error", "error", err, "filename", header.Filename)
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.TranscriptResponse{Text: text})
}

func (s *Server) health(c *gin.Context) {
	body := gin.H{"status": "ok"}
	if s.cacheMetrics != nil {
		body["cache"] = s.cacheMetrics.GetStats()
	}
	c.JSON(http.StatusOK, body)
}

// handleError handles different types of application errors
func (s *Server) handleError(c *gin.Context, err error) {
	var appErr *advisorerr.AppError
	var statusCode int
	var message string

	if errors.As(err, &appErr) {
		switch appErr.Type {
		case advisorerr.ValidationError:
			statusCode = http.StatusBadRequest
			message = appErr.Message
		case advisorerr.NotFoundError:
			statusCode = http.StatusNotFound
			message = appErr.Message
		case advisorerr.ExternalAPIError:
			statusCode = http.StatusServiceUnavailable
			message = "Weather service unavailable"
		case advisorerr.ModelError:
			statusCode = http.StatusBadGateway
			message = "Advisory model unavailable"
		case advisorerr.TranscriptionError:
			statusCode = http.StatusBadGateway
			message = "Transcription failed"
		case advisorerr.ConfigurationError:
			statusCode = http.StatusInternalServerError
			message = "Service misconfigured"
		default:
			statusCode = http.StatusInternalServerError
			message = "Internal server error"
		}
	} else {
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, models.ErrorResponse{Error: message})
}
