// Package nlp provides the text heuristics of the advisory pipeline:
// extracting a canonical city name from bilingual free text and deciding
// whether a message needs weather grounding. Both are pure functions over
// the message text.
package nlp

import (
	"regexp"
	"strings"
)

// locationStrategy tries to find a city in the message. Strategies are
// applied in order; the first one that matches wins.
type locationStrategy func(message string) (string, bool)

var locationStrategies = []locationStrategy{
	matchDictionary,
	matchEnglishPatterns,
	matchCapitalizedWords,
}

// englishPatterns recognize a capitalized word sequence following a
// preposition or attached to "weather". Tried in order, first match wins.
var englishPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:in|at)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
	regexp.MustCompile(`(?i)([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)'s\s+weather`),
	regexp.MustCompile(`(?i)weather\s+(?:in|at|for)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)`),
}

var capitalizedWordPattern = regexp.MustCompile(`\b[A-Z][a-z]{1,19}(?:\s+[A-Z][a-z]{1,19})?\b`)

// stopWords are common sentence-initial words the capitalized-word
// fallback must not mistake for city names.
var stopWords = map[string]bool{
	"I": true, "Is": true, "The": true, "What": true, "Where": true,
	"When": true, "Should": true, "Can": true, "Do": true, "Does": true,
	"Today": true, "Tomorrow": true,
}

// ExtractLocation returns the canonical city name found in the message, or
// false when no location could be identified. A message naming several
// cities yields only the first match in strategy precedence order.
func ExtractLocation(message string) (string, bool) {
	if strings.TrimSpace(message) == "" {
		return "", false
	}

	for _, strategy := range locationStrategies {
		if city, ok := strategy(message); ok {
			return city, true
		}
	}
	return "", false
}

func matchDictionary(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, entry := range cityDictionary {
		if strings.Contains(message, entry.key) || strings.Contains(lower, entry.key) {
			return entry.city, true
		}
	}
	return "", false
}

func matchEnglishPatterns(message string) (string, bool) {
	for _, pattern := range englishPatterns {
		if m := pattern.FindStringSubmatch(message); m != nil && m[1] != "" {
			return m[1], true
		}
	}
	return "", false
}

// matchCapitalizedWords is the heuristic of last resort: the first 1-2 word
// title-case sequence not in the stoplist is assumed to be a city name.
func matchCapitalizedWords(message string) (string, bool) {
	for _, word := range capitalizedWordPattern.FindAllString(message, -1) {
		if !stopWords[word] {
			return word, true
		}
	}
	return "", false
}
