package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sony/gobreaker"
	"agroadvisor.app/config"
	"agroadvisor.app/errors"
	"agroadvisor.app/metrics"
)

// OpenWeatherProvider implements WeatherProvider against the OpenWeatherMap
// data/2.5 API. Both operations go through a shared circuit breaker so a
// failing provider degrades fast instead of stalling every request.
type OpenWeatherProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	metrics *metrics.AdvisoryMetrics
}

// CurrentConditions mirrors the provider's current weather response
type CurrentConditions struct {
	Name string `json:"name"`
	Sys  struct {
		Country string `json:"country"`
	} `json:"sys"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []WeatherCondition `json:"weather"`
}

// ForecastResponse mirrors the provider's 5-day/3-hour forecast response
type ForecastResponse struct {
	List []ForecastEntry `json:"list"`
}

// ForecastEntry is one 3-hour interval of the provider forecast
type ForecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []WeatherCondition `json:"weather"`
}

// WeatherCondition is the provider's condition descriptor
type WeatherCondition struct {
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type providerError struct {
	Message string `json:"message"`
}

// NewOpenWeatherProvider creates a provider client from configuration.
// Latency metrics are optional; pass nil to disable them.
func NewOpenWeatherProvider(cfg *config.WeatherConfig, advisorMetrics *metrics.AdvisoryMetrics) *OpenWeatherProvider {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "openweather",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &OpenWeatherProvider{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		breaker: breaker,
		metrics: advisorMetrics,
	}
}

// CurrentWeather retrieves current conditions for the queried location
func (p *OpenWeatherProvider) CurrentWeather(ctx context.Context, query WeatherQuery) (*CurrentConditions, error) {
	var result CurrentConditions
	if err := p.get(ctx, "/weather", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Forecast retrieves the 5-day/3-hour forecast for the queried location
func (p *OpenWeatherProvider) Forecast(ctx context.Context, query WeatherQuery) (*ForecastResponse, error) {
	var result ForecastResponse
	if err := p.get(ctx, "/forecast", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *OpenWeatherProvider) get(ctx context.Context, path string, query WeatherQuery, out interface{}) error {
	if p.apiKey == "" {
		return errors.NewConfigurationError("openweathermap API key is not configured", nil)
	}
	if !query.HasCoords && query.City == "" {
		return errors.NewValidationError("city or coordinates are required")
	}

	params := url.Values{}
	params.Set("appid", p.apiKey)
	params.Set("units", "metric")
	if query.Lang != "" {
		params.Set("lang", query.Lang)
	}
	if query.HasCoords {
		params.Set("lat", strconv.FormatFloat(query.Lat, 'f', -1, 64))
		params.Set("lon", strconv.FormatFloat(query.Lon, 'f', -1, 64))
	} else {
		params.Set("q", query.City)
	}

	requestURL := fmt.Sprintf("%s%s?%s", p.baseURL, path, params.Encode())

	start := time.Now()
	result, err := p.breaker.Execute(func() (interface{}, error) {
		return p.fetch(ctx, requestURL, path)
	})
	p.observeLatency(path, time.Since(start))
	if err != nil {
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return errors.NewExternalAPIError("openweathermap circuit breaker open", err)
		}
		return err
	}

	fetched := result.(fetchResult)
	if fetched.verdict != nil {
		return fetched.verdict
	}

	if err := json.Unmarshal(fetched.body, out); err != nil {
		return errors.NewExternalAPIError(fmt.Sprintf("decode openweathermap %s response", path), err)
	}
	return nil
}

func (p *OpenWeatherProvider) observeLatency(path string, elapsed time.Duration) {
	if p.metrics == nil {
		return
	}
	operation := "current"
	if path == "/forecast" {
		operation = "forecast"
	}
	p.metrics.RecordProviderLatency("openweather", operation, elapsed.Seconds())
}

// fetchResult separates the breaker's view from the caller's: verdict holds
// non-retryable provider responses (unknown city, bad key) that must not
// count as breaker failures.
type fetchResult struct {
	body    []byte
	verdict error
}

func (p *OpenWeatherProvider) fetch(ctx context.Context, requestURL, path string) (fetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fetchResult{}, errors.NewExternalAPIError("build openweathermap request", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fetchResult{}, errors.NewExternalAPIError("openweathermap request failed", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Warn("close response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		verdict := p.handleHTTPError(resp)
		if errors.IsExternalAPIError(verdict) {
			return fetchResult{}, verdict
		}
		return fetchResult{verdict: verdict}, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fetchResult{}, errors.NewExternalAPIError(fmt.Sprintf("read openweathermap %s response", path), err)
	}
	return fetchResult{body: body}, nil
}

func (p *OpenWeatherProvider) handleHTTPError(resp *http.Response) error {
	var perr providerError
	_ = json.NewDecoder(resp.Body).Decode(&perr)

	switch resp.StatusCode {
	case http.StatusNotFound, http.StatusBadRequest:
		// The provider reports unresolvable locations as 404 (or 400 for
		// malformed coordinates); keep its message for the caller.
		message := perr.Message
		if message == "" {
			message = "city not found"
		}
		return errors.NewNotFoundError(message)
	case http.StatusUnauthorized:
		return errors.NewConfigurationError("openweathermap: invalid API key", nil)
	case http.StatusTooManyRequests:
		return errors.NewExternalAPIError("openweathermap: rate limit exceeded", nil)
	default:
		return errors.NewExternalAPIError(fmt.Sprintf("openweathermap: HTTP %d error", resp.StatusCode), nil)
	}
}
