package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWeatherQuery(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected bool
	}{
		{"EnglishWeatherTerm", "What is the weather like?", true},
		{"EnglishWeatherTermUppercase", "TEMPERATURE check please", true},
		{"EnglishAgricultureTerm", "When should I harvest the wheat?", true},
		{"EnglishIrrigation", "Is irrigation needed this week?", true},
		{"JapaneseWeatherTerm", "東京の天気はどうですか？", true},
		{"JapaneseAgricultureTerm", "今日は種まきに適していますか", true},
		{"NegatedStillMatches", "it will NOT rain today", true},
		{"NoKeyword", "Tell me a joke", false},
		{"JapaneseNoKeyword", "こんにちは、元気ですか", false},
		{"EmptyMessage", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsWeatherQuery(tt.message))
		})
	}
}

func TestIsWeatherQuery_MonotonicInKeywordPresence(t *testing.T) {
	negatives := []string{
		"Tell me a joke",
		"こんにちは",
		"What is the capital of France?",
	}

	for _, msg := range negatives {
		assert.False(t, IsWeatherQuery(msg), "precondition: %q must not classify", msg)

		// Appending any keyword flips the classification to true.
		for _, keyword := range []string{"rain", "forecast", "収穫", "天気"} {
			assert.True(t, IsWeatherQuery(msg+" "+keyword))
		}
	}
}
