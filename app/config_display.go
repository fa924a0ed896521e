package app

import (
	"log"
	"strings"

	"agroadvisor.app/config"
)

// ConfigDisplayer handles configuration display for startup debugging
type ConfigDisplayer struct{}

// NewConfigDisplayer creates a new configuration displayer
func NewConfigDisplayer() *ConfigDisplayer {
	return &ConfigDisplayer{}
}

// PrintConfig prints all fields in the configuration with secrets masked
func (cd *ConfigDisplayer) PrintConfig(cfg *config.Config) {
	log.Println("==== APPLICATION CONFIGURATION ====")

	log.Printf("SERVER:\n")
	log.Printf("  Port: %d\n", cfg.Server.Port)

	log.Printf("\nWEATHER PROVIDER:\n")
	log.Printf("  BaseURL: %s\n", cfg.Weather.BaseURL)
	log.Printf("  APIKey: %s\n", maskSecret(cfg.Weather.APIKey))
	log.Printf("  TimeoutSeconds: %d\n", cfg.Weather.TimeoutSeconds)

	log.Printf("\nMODEL PROVIDER:\n")
	log.Printf("  BaseURL: %s\n", cfg.Model.BaseURL)
	log.Printf("  APIKey: %s\n", maskSecret(cfg.Model.APIKey))
	log.Printf("  ChatModel: %s\n", cfg.Model.ChatModel)
	log.Printf("  Temperature: %g\n", cfg.Model.Temperature)
	log.Printf("  TranscribeModel: %s\n", cfg.Model.TranscribeModel)
	log.Printf("  TranscribeLanguage: %s\n", cfg.Model.TranscribeLanguage)

	log.Printf("\nCACHE:\n")
	log.Printf("  Type: %s\n", cfg.Cache.Type)
	log.Printf("  TTLMinutes: %d\n", cfg.Cache.TTLMinutes)
	if cfg.Cache.Type == config.CacheTypeRedis {
		log.Printf("  RedisAddr: %s\n", cfg.Cache.RedisAddr)
		log.Printf("  RedisDB: %d\n", cfg.Cache.RedisDB)
	}

	log.Printf("\nADVISOR:\n")
	log.Printf("  DefaultLanguage: %s\n", cfg.Advisor.DefaultLanguage)

	log.Println("===================================")
}

func maskSecret(value string) string {
	if value == "" {
		return "(not set)"
	}
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return value[:4] + strings.Repeat("*", len(value)-4)
}
