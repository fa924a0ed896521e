package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "agroadvisor.app/errors"
	"agroadvisor.app/providers"
	"agroadvisor.app/providers/cache"
)

// Mock weather provider - implements providers.WeatherProvider
type mockWeatherProvider struct {
	mock.Mock
}

func (m *mockWeatherProvider) CurrentWeather(ctx context.Context, query providers.WeatherQuery) (*providers.CurrentConditions, error) {
	args := m.Called(query)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*providers.CurrentConditions), nil
}

func (m *mockWeatherProvider) Forecast(ctx context.Context, query providers.WeatherQuery) (*providers.ForecastResponse, error) {
	args := m.Called(query)
	if args.Error(1) != nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*providers.ForecastResponse), nil
}

var _ providers.WeatherProvider = (*mockWeatherProvider)(nil)

func makeCurrent(name, country string, temp, feelsLike float64, humidity int, wind float64, description string) *providers.CurrentConditions {
	current := &providers.CurrentConditions{Name: name}
	current.Sys.Country = country
	current.Main.Temp = temp
	current.Main.FeelsLike = feelsLike
	current.Main.Humidity = humidity
	current.Wind.Speed = wind
	current.Weather = []providers.WeatherCondition{{Description: description, Icon: "01d"}}
	return current
}

func makeEntry(at time.Time, tempMin, tempMax float64, description string, humidity int, wind float64) providers.ForecastEntry {
	entry := providers.ForecastEntry{Dt: at.Unix()}
	entry.Main.TempMin = tempMin
	entry.Main.TempMax = tempMax
	entry.Main.Humidity = humidity
	entry.Wind.Speed = wind
	entry.Weather = []providers.WeatherCondition{{Description: description, Icon: "03d"}}
	return entry
}

func utc(year int, month time.Month, day, hour int) time.Time {
	return time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
}

func TestWeatherService_GetSnapshot(t *testing.T) {
	tokyoQuery := providers.WeatherQuery{City: "Tokyo", Lang: "ja"}

	t.Run("NormalizesSnapshot", func(t *testing.T) {
		provider := new(mockWeatherProvider)
		provider.On("CurrentWeather", tokyoQuery).Return(makeCurrent("Tokyo", "JP", 21.6, 20.4, 65, 3.6, "晴れ"), nil)
		provider.On("Forecast", tokyoQuery).Return(&providers.ForecastResponse{
			List: []providers.ForecastEntry{
				makeEntry(utc(2026, 9, 1, 12), 19.5, 26.3, "曇り", 60, 2.5),
			},
		}, nil)

		weatherService := NewWeatherService(provider, nil, 0, nil)
		snapshot, err := weatherService.GetSnapshot(context.Background(), tokyoQuery)

		require.NoError(t, err)
		assert.Equal(t, "Tokyo", snapshot.Location)
		assert.Equal(t, "JP", snapshot.Country)
		// Current temperatures round to whole degrees.
		assert.Equal(t, 22, snapshot.Temperature)
		assert.Equal(t, 20, snapshot.FeelsLike)
		assert.Equal(t, 65, snapshot.Humidity)
		assert.Equal(t, 3.6, snapshot.WindSpeed)
		assert.Equal(t, "晴れ", snapshot.Description)
		assert.Equal(t, "01d", snapshot.Icon)

		require.Len(t, snapshot.Forecast, 1)
		day := snapshot.Forecast[0]
		assert.Equal(t, "2026-09-01", day.Date)
		// Forecast temperatures pass through unrounded.
		assert.Equal(t, 19.5, day.TempMin)
		assert.Equal(t, 26.3, day.TempMax)
		assert.Equal(t, "曇り", day.Description)
		assert.Equal(t, 60, day.Humidity)
		assert.Equal(t, 2.5, day.WindSpeed)
	})

	t.Run("NegativeHalvesRoundTowardPositiveInfinity", func(t *testing.T) {
		provider := new(mockWeatherProvider)
		provider.On("CurrentWeather", tokyoQuery).Return(makeCurrent("Sapporo", "JP", -20.5, -19.5, 70, 5.0, "雪"), nil)
		provider.On("Forecast", tokyoQuery).Return(&providers.ForecastResponse{}, nil)

		weatherService := NewWeatherService(provider, nil, 0, nil)
		snapshot, err := weatherService.GetSnapshot(context.Background(), tokyoQuery)

		require.NoError(t, err)
		assert.Equal(t, -20, snapshot.Temperature)
		assert.Equal(t, -19, snapshot.FeelsLike)
	})

	t.Run("NoonWindowCompaction", func(t *testing.T) {
		// Five dates; the third has no entry inside the 11:00-13:00 window,
		// so only four forecast days come out.
		var entries []providers.ForecastEntry
		for day := 1; day <= 5; day++ {
			for hour := 0; hour < 24; hour += 3 {
				if day == 3 && (hour == 12) {
					continue
				}
				entries = append(entries, makeEntry(utc(2026, 9, day, hour), 18, 25, "晴れ", 55, 2))
			}
		}

		provider := new(mockWeatherProvider)
		provider.On("CurrentWeather", tokyoQuery).Return(makeCurrent("Tokyo", "JP", 20, 20, 50, 1, "晴れ"), nil)
		provider.On("Forecast", tokyoQuery).Return(&providers.ForecastResponse{List: entries}, nil)

		weatherService := NewWeatherService(provider, nil, 0, nil)
		snapshot, err := weatherService.GetSnapshot(context.Background(), tokyoQuery)

		require.NoError(t, err)
		require.Len(t, snapshot.Forecast, 4)
		assert.Equal(t, "2026-09-01", snapshot.Forecast[0].Date)
		assert.Equal(t, "2026-09-02", snapshot.Forecast[1].Date)
		assert.Equal(t, "2026-09-04", snapshot.Forecast[2].Date)
		assert.Equal(t, "2026-09-05", snapshot.Forecast[3].Date)
	})

	t.Run("FirstNoonEntryPerDayWins", func(t *testing.T) {
		first := makeEntry(utc(2026, 9, 1, 11), 17, 23, "雨", 80, 4)
		second := makeEntry(utc(2026, 9, 1, 12), 19, 26, "晴れ", 50, 2)

		provider := new(mockWeatherProvider)
		provider.On("CurrentWeather", tokyoQuery).Return(makeCurrent("Tokyo", "JP", 20, 20, 50, 1, "晴れ"), nil)
		provider.On("Forecast", tokyoQuery).Return(&providers.ForecastResponse{
			List: []providers.ForecastEntry{first, second},
		}, nil)

		weatherService := NewWeatherService(provider, nil, 0, nil)
		snapshot, err := weatherService.GetSnapshot(context.Background(), tokyoQuery)

		require.NoError(t, err)
		require.Len(t, snapshot.Forecast, 1)
		assert.Equal(t, "雨", snapshot.Forecast[0].Description)
	})

	t.Run("CapsAtFiveDays", func(t *testing.T) {
		var entries []providers.ForecastEntry
		for day := 1; day <= 7; day++ {
			entries = append(entries, makeEntry(utc(2026, 9, day, 12), 18, 25, "晴れ", 55, 2))
		}

		provider := new(mockWeatherProvider)
		provider.On("CurrentWeather", tokyoQuery).Return(makeCurrent("Tokyo", "JP", 20, 20, 50, 1, "晴れ"), nil)
		provider.On("Forecast", tokyoQuery).Return(&providers.ForecastResponse{List: entries}, nil)

		weatherService := NewWeatherService(provider, nil, 0, nil)
		snapshot, err := weatherService.GetSnapshot(context.Background(), tokyoQuery)

		require.NoError(t, err)
		require.Len(t, snapshot.Forecast, 5)
		assert.Equal(t, "2026-09-05", snapshot.Forecast[4].Date)
	})

	t.Run("UnknownLocationFailsAggregate", func(t *testing.T) {
		query := providers.WeatherQuery{City: "Nowhereville", Lang: "ja"}

		provider := new(mockWeatherProvider)
		provider.On("CurrentWeather", query).Return(nil, apperrors.NewNotFoundError("city not found"))
		provider.On("Forecast", query).Return(nil, apperrors.NewNotFoundError("city not found"))

		weatherService := NewWeatherService(provider, nil, 0, nil)
		snapshot, err := weatherService.GetSnapshot(context.Background(), query)

		assert.Nil(t, snapshot)
		assert.True(t, apperrors.IsNotFoundError(err))
		assert.Contains(t, err.Error(), "city not found")
	})

	t.Run("ForecastFailureFailsAggregate", func(t *testing.T) {
		provider := new(mockWeatherProvider)
		provider.On("CurrentWeather", tokyoQuery).Return(makeCurrent("Tokyo", "JP", 20, 20, 50, 1, "晴れ"), nil)
		provider.On("Forecast", tokyoQuery).Return(nil, apperrors.NewExternalAPIError("openweathermap request failed", nil))

		weatherService := NewWeatherService(provider, nil, 0, nil)
		snapshot, err := weatherService.GetSnapshot(context.Background(), tokyoQuery)

		assert.Nil(t, snapshot)
		assert.True(t, apperrors.IsExternalAPIError(err))
	})

	t.Run("EmptyQuery", func(t *testing.T) {
		weatherService := NewWeatherService(new(mockWeatherProvider), nil, 0, nil)
		_, err := weatherService.GetSnapshot(context.Background(), providers.WeatherQuery{})

		assert.True(t, apperrors.IsValidationError(err))
	})

	t.Run("SnapshotCacheAvoidsSecondFetch", func(t *testing.T) {
		provider := new(mockWeatherProvider)
		provider.On("CurrentWeather", tokyoQuery).Return(makeCurrent("Tokyo", "JP", 20, 20, 50, 1, "晴れ"), nil).Once()
		provider.On("Forecast", tokyoQuery).Return(&providers.ForecastResponse{}, nil).Once()

		memCache := cache.NewMemoryCache()
		defer memCache.Stop()

		weatherService := NewWeatherService(provider, cache.NewSnapshotCache(memCache), 10*time.Minute, nil)

		firstCall, err := weatherService.GetSnapshot(context.Background(), tokyoQuery)
		require.NoError(t, err)

		secondCall, err := weatherService.GetSnapshot(context.Background(), tokyoQuery)
		require.NoError(t, err)

		assert.Equal(t, firstCall, secondCall)
		provider.AssertNumberOfCalls(t, "CurrentWeather", 1)
		provider.AssertNumberOfCalls(t, "Forecast", 1)
	})
}
