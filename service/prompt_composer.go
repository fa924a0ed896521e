package service

import (
	"fmt"
	"strings"

	"agroadvisor.app/locale"
	"agroadvisor.app/models"
)

// PromptComposer assembles the grounded prompt sent to the language model:
// a fixed per-locale persona as the system instruction, and the user message
// optionally prefixed by a weather context block.
type PromptComposer struct{}

// NewPromptComposer creates a prompt composer
func NewPromptComposer() *PromptComposer {
	return &PromptComposer{}
}

// Compose builds the grounded prompt. With a nil snapshot the user content
// is the message unchanged.
func (c *PromptComposer) Compose(lang locale.Language, message string, snapshot *models.WeatherSnapshot) models.GroundedPrompt {
	strs := locale.Table(lang)

	if snapshot == nil {
		return models.GroundedPrompt{
			SystemInstruction: strs.Persona,
			UserContent:       message,
		}
	}

	var b strings.Builder
	b.WriteString(strs.WeatherHeader)
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %s, %s\n", strs.LocationLabel, snapshot.Location, snapshot.Country)
	fmt.Fprintf(&b, strs.TempFormat, snapshot.Temperature, snapshot.FeelsLike)
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %d%%\n", strs.HumidityLabel, snapshot.Humidity)
	fmt.Fprintf(&b, strs.WindFormat, snapshot.WindSpeed)
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %s\n", strs.ConditionLabel, snapshot.Description)
	b.WriteString("\n")
	b.WriteString(strs.ForecastHeader)
	b.WriteString("\n")
	for _, day := range snapshot.Forecast {
		fmt.Fprintf(&b, strs.ForecastFormat, day.Date, day.TempMin, day.TempMax, day.Description, day.Humidity, day.WindSpeed)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s: %s", strs.QuestionLabel, message)

	return models.GroundedPrompt{
		SystemInstruction: strs.Persona,
		UserContent:       b.String(),
	}
}
