package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"agroadvisor.app/errors"
)

// Config represents the application configuration structure
type Config struct {
	Server  ServerConfig  `split_words:"true"`
	Weather WeatherConfig `split_words:"true"`
	Model   ModelConfig   `split_words:"true"`
	Cache   CacheConfig   `split_words:"true"`
	Advisor AdvisorConfig `split_words:"true"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port int `envconfig:"SERVER_PORT" default:"8080"`
}

// WeatherConfig contains settings for the OpenWeather API client
type WeatherConfig struct {
	APIKey         string `envconfig:"OPENWEATHER_API_KEY" required:"true"`
	BaseURL        string `envconfig:"OPENWEATHER_BASE_URL" default:"https://api.openweathermap.org/data/2.5"`
	TimeoutSeconds int    `envconfig:"OPENWEATHER_TIMEOUT_SECONDS" default:"10"`
}

// ModelConfig contains settings for the Groq language model provider
type ModelConfig struct {
	APIKey             string  `envconfig:"GROQ_API_KEY" required:"true"`
	BaseURL            string  `envconfig:"GROQ_BASE_URL" default:"https://api.groq.com/openai/v1"`
	ChatModel          string  `envconfig:"GROQ_CHAT_MODEL" default:"llama-3.3-70b-versatile"`
	Temperature        float64 `envconfig:"GROQ_TEMPERATURE" default:"0.7"`
	TranscribeModel    string  `envconfig:"GROQ_TRANSCRIBE_MODEL" default:"whisper-large-v3"`
	TranscribeLanguage string  `envconfig:"GROQ_TRANSCRIBE_LANGUAGE" default:"ja"`
	TimeoutSeconds     int     `envconfig:"GROQ_TIMEOUT_SECONDS" default:"120"`
}

// CacheConfig contains settings for the weather snapshot cache
type CacheConfig struct {
	Type          string `envconfig:"CACHE_TYPE" default:"memory"`
	TTLMinutes    int    `envconfig:"CACHE_TTL_MINUTES" default:"10"`
	RedisAddr     string `envconfig:"CACHE_REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"CACHE_REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"CACHE_REDIS_DB" default:"0"`
}

// AdvisorConfig contains advisory pipeline defaults
type AdvisorConfig struct {
	DefaultLanguage string `envconfig:"ADVISOR_DEFAULT_LANGUAGE" default:"ja"`
}

// Cache backend identifiers accepted by CACHE_TYPE
const (
	CacheTypeMemory = "memory"
	CacheTypeRedis  = "redis"
)

// LoadConfig loads and validates application configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return nil, errors.NewConfigurationError("error processing config", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Weather.Validate(); err != nil {
		return err
	}
	if err := c.Model.Validate(); err != nil {
		return err
	}
	if err := c.Cache.Validate(); err != nil {
		return err
	}
	if err := c.Advisor.Validate(); err != nil {
		return err
	}
	return nil
}

// Validate checks server configuration
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return errors.NewConfigurationError("SERVER_PORT must be between 1 and 65535", nil)
	}
	return nil
}

// Validate checks weather API configuration
func (w *WeatherConfig) Validate() error {
	if w.APIKey == "" {
		return errors.NewConfigurationError("OPENWEATHER_API_KEY is required", nil)
	}
	if w.BaseURL == "" {
		return errors.NewConfigurationError("OPENWEATHER_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(w.BaseURL, "http://") && !strings.HasPrefix(w.BaseURL, "https://") {
		return errors.NewConfigurationError("OPENWEATHER_BASE_URL must start with http:// or https://", nil)
	}
	if w.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("OPENWEATHER_TIMEOUT_SECONDS must be at least 1", nil)
	}
	return nil
}

// Validate checks model provider configuration
func (m *ModelConfig) Validate() error {
	if m.APIKey == "" {
		return errors.NewConfigurationError("GROQ_API_KEY is required", nil)
	}
	if m.BaseURL == "" {
		return errors.NewConfigurationError("GROQ_BASE_URL cannot be empty", nil)
	}
	if !strings.HasPrefix(m.BaseURL, "http://") && !strings.HasPrefix(m.BaseURL, "https://") {
		return errors.NewConfigurationError("GROQ_BASE_URL must start with http:// or https://", nil)
	}
	if m.ChatModel == "" {
		return errors.NewConfigurationError("GROQ_CHAT_MODEL cannot be empty", nil)
	}
	if m.Temperature < 0 || m.Temperature > 2 {
		return errors.NewConfigurationError("GROQ_TEMPERATURE must be between 0 and 2", nil)
	}
	if m.TranscribeModel == "" {
		return errors.NewConfigurationError("GROQ_TRANSCRIBE_MODEL cannot be empty", nil)
	}
	if m.TimeoutSeconds < 1 {
		return errors.NewConfigurationError("GROQ_TIMEOUT_SECONDS must be at least 1", nil)
	}
	return nil
}

// Validate checks cache configuration
func (c *CacheConfig) Validate() error {
	if c.Type != CacheTypeMemory && c.Type != CacheTypeRedis {
		return errors.NewConfigurationError(
			fmt.Sprintf("CACHE_TYPE must be one of: %s, %s", CacheTypeMemory, CacheTypeRedis), nil)
	}
	if c.TTLMinutes < 1 {
		return errors.NewConfigurationError("CACHE_TTL_MINUTES must be at least 1 minute", nil)
	}
	if c.Type == CacheTypeRedis && c.RedisAddr == "" {
		return errors.NewConfigurationError("CACHE_REDIS_ADDR cannot be empty when CACHE_TYPE is redis", nil)
	}
	return nil
}

// Validate checks advisory defaults
func (a *AdvisorConfig) Validate() error {
	if a.DefaultLanguage != "en" && a.DefaultLanguage != "ja" {
		return errors.NewConfigurationError("ADVISOR_DEFAULT_LANGUAGE must be en or ja", nil)
	}
	return nil
}
