package service

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"agroadvisor.app/errors"
	"agroadvisor.app/metrics"
	"agroadvisor.app/models"
	"agroadvisor.app/providers"
	"agroadvisor.app/providers/cache"
)

const (
	snapshotKeyPrefix = "snapshot:"
	maxForecastDays   = 5

	// The provider's 3-hour forecast is compacted to one entry per calendar
	// day by keeping the first entry whose UTC hour falls in this window.
	noonWindowStart = 11
	noonWindowEnd   = 13
)

// WeatherService aggregates current conditions and the 5-day forecast into
// one normalized snapshot, with a read-through snapshot cache in front of
// the provider.
type WeatherService struct {
	provider     providers.WeatherProvider
	cache        cache.SnapshotCacheInterface
	cacheTTL     time.Duration
	cacheMetrics *metrics.CacheMetrics
}

// NewWeatherService creates a weather service with the specified provider.
// The snapshot cache is optional; pass nil to disable caching.
func NewWeatherService(provider providers.WeatherProvider, snapshotCache cache.SnapshotCacheInterface, cacheTTL time.Duration, cacheMetrics *metrics.CacheMetrics) *WeatherService {
	return &WeatherService{
		provider:     provider,
		cache:        snapshotCache,
		cacheTTL:     cacheTTL,
		cacheMetrics: cacheMetrics,
	}
}

// GetSnapshot retrieves the normalized weather snapshot for the queried
// location. The two provider calls run concurrently; an unknown location
// fails the whole aggregate with the provider's message.
func (s *WeatherService) GetSnapshot(ctx context.Context, query providers.WeatherQuery) (*models.WeatherSnapshot, error) {
	if !query.HasCoords && query.City == "" {
		return nil, errors.NewValidationError("city or coordinates are required")
	}

	key := snapshotKeyPrefix + query.Key()
	if s.cache != nil {
		if snapshot, found := s.cache.Get(ctx, key); found {
			s.recordCacheHit()
			slog.Debug("weather snapshot cache hit", "key", key)
			return snapshot, nil
		}
		s.recordCacheMiss()
	}

	var (
		wg          sync.WaitGroup
		current     *providers.CurrentConditions
		currentErr  error
		forecast    *providers.ForecastResponse
		forecastErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		current, currentErr = s.provider.CurrentWeather(ctx, query)
	}()
	go func() {
		defer wg.Done()
		forecast, forecastErr = s.provider.Forecast(ctx, query)
	}()
	wg.Wait()

	if currentErr != nil {
		return nil, currentErr
	}
	if forecastErr != nil {
		return nil, forecastErr
	}

	snapshot := buildSnapshot(current, forecast)
	if s.cache != nil {
		s.cache.Set(ctx, key, snapshot, s.cacheTTL)
	}
	return snapshot, nil
}

func (s *WeatherService) recordCacheHit() {
	if s.cacheMetrics != nil {
		s.cacheMetrics.RecordHit()
	}
}

func (s *WeatherService) recordCacheMiss() {
	if s.cacheMetrics != nil {
		s.cacheMetrics.RecordMiss()
	}
}

// roundHalfUp rounds halves toward positive infinity, so -20.5 becomes -20.
// math.Round would round halves away from zero instead.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}

// buildSnapshot normalizes the two provider responses. Current temperature
// and feels-like are rounded to whole degrees; forecast temperatures pass
// through unrounded.
func buildSnapshot(current *providers.CurrentConditions, forecast *providers.ForecastResponse) *models.WeatherSnapshot {
	var description, icon string
	if len(current.Weather) > 0 {
		description = current.Weather[0].Description
		icon = current.Weather[0].Icon
	}

	return &models.WeatherSnapshot{
		Location:    current.Name,
		Country:     current.Sys.Country,
		Temperature: roundHalfUp(current.Main.Temp),
		FeelsLike:   roundHalfUp(current.Main.FeelsLike),
		Humidity:    current.Main.Humidity,
		WindSpeed:   current.Wind.Speed,
		Description: description,
		Icon:        icon,
		Forecast:    compactForecast(forecast.List),
	}
}

// compactForecast reduces the 3-hour entries to at most five daily entries.
// Entries are visited in provider order; the first noon-window entry for a
// calendar date wins, and dates without a noon-window entry are omitted.
func compactForecast(entries []providers.ForecastEntry) []models.ForecastDay {
	days := make([]models.ForecastDay, 0, maxForecastDays)
	seenDates := make(map[string]bool)

	for _, entry := range entries {
		if len(days) == maxForecastDays {
			break
		}

		ts := time.Unix(entry.Dt, 0).UTC()
		if hour := ts.Hour(); hour < noonWindowStart || hour > noonWindowEnd {
			continue
		}

		date := ts.Format("2006-01-02")
		if seenDates[date] {
			continue
		}
		seenDates[date] = true

		var description, icon string
		if len(entry.Weather) > 0 {
			description = entry.Weather[0].Description
			icon = entry.Weather[0].Icon
		}

		days = append(days, models.ForecastDay{
			Date:        date,
			TempMin:     entry.Main.TempMin,
			TempMax:     entry.Main.TempMax,
			Description: description,
			Icon:        icon,
			Humidity:    entry.Main.Humidity,
			WindSpeed:   entry.Wind.Speed,
		})
	}
	return days
}
