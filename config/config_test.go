package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// Test case 1: Required fields - should return error when missing
	t.Run("RequiredFieldsMissing", func(t *testing.T) {
		os.Clearenv()

		config, err := LoadConfig()

		assert.Error(t, err)
		assert.Nil(t, config)
		assert.Contains(t, err.Error(), "required key OPENWEATHER_API_KEY missing")
	})

	// Test case 2: Default values - should use defaults when not provided
	t.Run("DefaultValues", func(t *testing.T) {
		os.Clearenv()

		require.NoError(t, os.Setenv("OPENWEATHER_API_KEY", "test-weather-key"))
		require.NoError(t, os.Setenv("GROQ_API_KEY", "test-groq-key"))

		config, err := LoadConfig()

		assert.NoError(t, err)
		assert.NotNil(t, config)
		assert.Equal(t, 8080, config.Server.Port)
		assert.Equal(t, "https://api.openweathermap.org/data/2.5", config.Weather.BaseURL)
		assert.Equal(t, 10, config.Weather.TimeoutSeconds)
		assert.Equal(t, "https://api.groq.com/openai/v1", config.Model.BaseURL)
		assert.Equal(t, "llama-3.3-70b-versatile", config.Model.ChatModel)
		assert.Equal(t, 0.7, config.Model.Temperature)
		assert.Equal(t, "whisper-large-v3", config.Model.TranscribeModel)
		assert.Equal(t, "ja", config.Model.TranscribeLanguage)
		assert.Equal(t, CacheTypeMemory, config.Cache.Type)
		assert.Equal(t, 10, config.Cache.TTLMinutes)
		assert.Equal(t, "ja", config.Advisor.DefaultLanguage)
	})

	// Test case 3: Custom values - should use provided values
	t.Run("CustomValues", func(t *testing.T) {
		os.Clearenv()

		require.NoError(t, os.Setenv("SERVER_PORT", "9090"))
		require.NoError(t, os.Setenv("OPENWEATHER_API_KEY", "custom-weather-key"))
		require.NoError(t, os.Setenv("OPENWEATHER_BASE_URL", "https://weather.test.example.com"))
		require.NoError(t, os.Setenv("GROQ_API_KEY", "custom-groq-key"))
		require.NoError(t, os.Setenv("GROQ_CHAT_MODEL", "llama-3.1-8b-instant"))
		require.NoError(t, os.Setenv("GROQ_TEMPERATURE", "0.3"))
		require.NoError(t, os.Setenv("CACHE_TYPE", "redis"))
		require.NoError(t, os.Setenv("CACHE_REDIS_ADDR", "redis.test:6379"))
		require.NoError(t, os.Setenv("ADVISOR_DEFAULT_LANGUAGE", "en"))

		config, err := LoadConfig()

		assert.NoError(t, err)
		assert.NotNil(t, config)
		assert.Equal(t, 9090, config.Server.Port)
		assert.Equal(t, "custom-weather-key", config.Weather.APIKey)
		assert.Equal(t, "https://weather.test.example.com", config.Weather.BaseURL)
		assert.Equal(t, "llama-3.1-8b-instant", config.Model.ChatModel)
		assert.Equal(t, 0.3, config.Model.Temperature)
		assert.Equal(t, CacheTypeRedis, config.Cache.Type)
		assert.Equal(t, "redis.test:6379", config.Cache.RedisAddr)
		assert.Equal(t, "en", config.Advisor.DefaultLanguage)
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server: ServerConfig{Port: 8080},
			Weather: WeatherConfig{
				APIKey:         "key",
				BaseURL:        "https://api.openweathermap.org/data/2.5",
				TimeoutSeconds: 10,
			},
			Model: ModelConfig{
				APIKey:          "key",
				BaseURL:         "https://api.groq.com/openai/v1",
				ChatModel:       "llama-3.3-70b-versatile",
				Temperature:     0.7,
				TranscribeModel: "whisper-large-v3",
				TimeoutSeconds:  120,
			},
			Cache:   CacheConfig{Type: CacheTypeMemory, TTLMinutes: 10},
			Advisor: AdvisorConfig{DefaultLanguage: "ja"},
		}
	}

	t.Run("ValidConfig", func(t *testing.T) {
		assert.NoError(t, valid().Validate())
	})

	t.Run("InvalidServerPort", func(t *testing.T) {
		cfg := valid()
		cfg.Server.Port = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "SERVER_PORT")
	})

	t.Run("MissingWeatherKey", func(t *testing.T) {
		cfg := valid()
		cfg.Weather.APIKey = ""
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "OPENWEATHER_API_KEY")
	})

	t.Run("InvalidWeatherBaseURL", func(t *testing.T) {
		cfg := valid()
		cfg.Weather.BaseURL = "ftp://api.openweathermap.org"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "OPENWEATHER_BASE_URL")
	})

	t.Run("MissingModelKey", func(t *testing.T) {
		cfg := valid()
		cfg.Model.APIKey = ""
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "GROQ_API_KEY")
	})

	t.Run("TemperatureOutOfRange", func(t *testing.T) {
		cfg := valid()
		cfg.Model.Temperature = 2.5
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "GROQ_TEMPERATURE")
	})

	t.Run("UnsupportedCacheType", func(t *testing.T) {
		cfg := valid()
		cfg.Cache.Type = "memcached"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "CACHE_TYPE")
	})

	t.Run("UnsupportedLanguage", func(t *testing.T) {
		cfg := valid()
		cfg.Advisor.DefaultLanguage = "fr"
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "ADVISOR_DEFAULT_LANGUAGE")
	})
}
