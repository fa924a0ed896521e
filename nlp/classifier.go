package nlp

import "strings"

// weatherKeywords cover weather terms and weather-dependent agricultural
// terms in English and Japanese. A single substring hit is enough to route
// the message through weather grounding; a false positive only costs one
// provider lookup, a false negative costs answer quality.
var weatherKeywords = []string{
	// English - Weather
	"weather", "temperature", "rain", "sunny", "cloud", "wind", "forecast",
	"hot", "cold", "warm", "humid", "climate",
	// English - Agriculture (weather-dependent)
	"plant", "planting", "sow", "sowing", "harvest", "harvesting",
	"irrigation", "water", "fertilize", "spray", "crop", "farm", "field",
	"grow", "growing", "outdoor", "work outside",
	// Japanese - Weather
	"天気", "気温", "雨", "晴れ", "曇り", "風", "予報", "暑い", "寒い", "湿度", "気候",
	// Japanese - Agriculture (weather-dependent)
	"種", "種まき", "植え", "収穫", "灌漑", "水やり", "肥料", "農作業", "畑", "田んぼ",
	"栽培", "作物", "野菜", "稲", "米", "農業", "農家", "外作業", "屋外",
}

// IsWeatherQuery reports whether the message needs weather grounding. The
// check is a plain substring test with no stemming or negation handling:
// "it will NOT rain" still counts as weather-relevant.
func IsWeatherQuery(message string) bool {
	lower := strings.ToLower(message)
	for _, keyword := range weatherKeywords {
		if strings.Contains(lower, strings.ToLower(keyword)) || strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}
