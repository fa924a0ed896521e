package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"agroadvisor.app/locale"
	"agroadvisor.app/models"
)

func sampleSnapshot() *models.WeatherSnapshot {
	return &models.WeatherSnapshot{
		Location:    "Tokyo",
		Country:     "JP",
		Temperature: 22,
		FeelsLike:   20,
		Humidity:    65,
		WindSpeed:   3.6,
		Description: "晴れ",
		Icon:        "01d",
		Forecast: []models.ForecastDay{
			{Date: "2026-09-01", TempMin: 19.5, TempMax: 26.3, Description: "曇り", Humidity: 60, WindSpeed: 2.5},
			{Date: "2026-09-02", TempMin: 18, TempMax: 24, Description: "雨", Humidity: 85, WindSpeed: 5},
		},
	}
}

func TestPromptComposer_Compose(t *testing.T) {
	composer := NewPromptComposer()

	t.Run("WithoutSnapshotMessageIsUnchanged", func(t *testing.T) {
		message := "  トマトの育て方を教えて  \n"
		prompt := composer.Compose(locale.Japanese, message, nil)

		assert.Equal(t, message, prompt.UserContent)
		assert.Equal(t, locale.Table(locale.Japanese).Persona, prompt.SystemInstruction)
	})

	t.Run("JapaneseWeatherBlock", func(t *testing.T) {
		prompt := composer.Compose(locale.Japanese, "東京の天気は？", sampleSnapshot())

		expected := `現在の天気情報:
場所: Tokyo, JP
気温: 22°C (体感温度: 20°C)
湿度: 65%
風速: 3.6 m/s
天候: 晴れ

5日間の予報:
2026-09-01: 19.5°C〜26.3°C, 曇り, 湿度60%, 風速2.5m/s
2026-09-02: 18°C〜24°C, 雨, 湿度85%, 風速5m/s

ユーザーの質問: 東京の天気は？`

		assert.Equal(t, expected, prompt.UserContent)
		assert.Equal(t, locale.Table(locale.Japanese).Persona, prompt.SystemInstruction)
	})

	t.Run("EnglishWeatherBlock", func(t *testing.T) {
		prompt := composer.Compose(locale.English, "Weather in Tokyo?", sampleSnapshot())

		expected := `Current weather information:
Location: Tokyo, JP
Temperature: 22°C (feels like: 20°C)
Humidity: 65%
Wind speed: 3.6 m/s
Conditions: 晴れ

5-day forecast:
2026-09-01: 19.5°C to 26.3°C, 曇り, humidity 60%, wind 2.5m/s
2026-09-02: 18°C to 24°C, 雨, humidity 85%, wind 5m/s

User question: Weather in Tokyo?`

		assert.Equal(t, expected, prompt.UserContent)
		assert.Equal(t, locale.Table(locale.English).Persona, prompt.SystemInstruction)
	})

	t.Run("EmptyForecastStillComposes", func(t *testing.T) {
		snapshot := sampleSnapshot()
		snapshot.Forecast = nil

		prompt := composer.Compose(locale.Japanese, "水やりは必要？", snapshot)

		assert.Contains(t, prompt.UserContent, "5日間の予報:")
		assert.Contains(t, prompt.UserContent, "ユーザーの質問: 水やりは必要？")
	})
}
