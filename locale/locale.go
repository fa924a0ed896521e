// Package locale holds the static translation tables for the two supported
// response languages. The tables are initialized at process start and are
// read-only afterwards.
package locale

// Language identifies one of the two supported response locales
type Language string

const (
	English  Language = "en"
	Japanese Language = "ja"
)

// Parse maps a request language value to a supported Language,
// falling back to the given default for unknown or empty values
func Parse(s string, fallback Language) Language {
	switch s {
	case "en":
		return English
	case "ja":
		return Japanese
	default:
		return fallback
	}
}

// Strings bundles the locale-dependent text used by the advisory pipeline
type Strings struct {
	// Persona is the fixed system instruction for the language model
	Persona string

	// Weather block labels used by the prompt composer
	WeatherHeader   string
	LocationLabel   string
	TempFormat      string
	HumidityLabel   string
	WindFormat      string
	ConditionLabel  string
	ForecastHeader  string
	ForecastFormat  string
	QuestionLabel   string

	// User-visible fallback messages
	ErrorChat          string
	ErrorTranscription string
	ErrorGeneric       string
}

var tables = map[Language]*Strings{
	Japanese: {
		Persona: japanesePersona,

		WeatherHeader:  "現在の天気情報:",
		LocationLabel:  "場所",
		TempFormat:     "気温: %d°C (体感温度: %d°C)",
		HumidityLabel:  "湿度",
		WindFormat:     "風速: %g m/s",
		ConditionLabel: "天候",
		ForecastHeader: "5日間の予報:",
		ForecastFormat: "%s: %g°C〜%g°C, %s, 湿度%d%%, 風速%gm/s",
		QuestionLabel:  "ユーザーの質問",

		ErrorChat:          "応答の取得に失敗しました。もう一度お試しください。",
		ErrorTranscription: "音声の文字起こしに失敗しました。もう一度お試しください。",
		ErrorGeneric:       "エラーが発生しました。もう一度お試しください。",
	},
	English: {
		Persona: englishPersona,

		WeatherHeader:  "Current weather information:",
		LocationLabel:  "Location",
		TempFormat:     "Temperature: %d°C (feels like: %d°C)",
		HumidityLabel:  "Humidity",
		WindFormat:     "Wind speed: %g m/s",
		ConditionLabel: "Conditions",
		ForecastHeader: "5-day forecast:",
		ForecastFormat: "%s: %g°C to %g°C, %s, humidity %d%%, wind %gm/s",
		QuestionLabel:  "User question",

		ErrorChat:          "Failed to get response. Please try again.",
		ErrorTranscription: "Failed to transcribe audio. Please try again.",
		ErrorGeneric:       "An error occurred. Please try again.",
	},
}

// Table returns the string table for the given language
func Table(lang Language) *Strings {
	if t, ok := tables[lang]; ok {
		return t
	}
	return tables[Japanese]
}

const japanesePersona = `あなたは日本の農業専門家です。ユーザーに農業や農作物に関するアドバイスを提供します。

役割:
- 現在の天気と予報データに基づいて、農業活動に関する実用的なアドバイスを提供する
- 作物の栽培スケジュール、灌漑の提案、害虫管理、収穫のタイミングなどをアドバイスする
- 天候条件が農作物にどのように影響するかを説明する
- 気象パターンに基づいた最適な農作業のタイミングを推奨する

ガイドライン:
- ユーザーが日本語で話しかけた場合は日本語で、英語で話しかけた場合は英語で返答する
- 天気データを考慮に入れた具体的で実用的なアドバイスを提供する
- 農家や家庭菜園をする人に役立つ情報を共有する
- 温度、湿度、風速、降水量などの気象要因を考慮する
- 季節に応じた適切な作物や活動を提案する
- 親しみやすく、分かりやすい言葉で説明する`

const englishPersona = `You are a regional agriculture expert advising farmers and home gardeners.

Role:
- Provide practical advice on farming activities based on current weather and forecast data
- Advise on crop planting schedules, irrigation, pest management, and harvest timing
- Explain how weather conditions affect crops
- Recommend the best timing for field work based on weather patterns

Guidelines:
- Reply in Japanese when the user writes in Japanese, and in English when the user writes in English
- Give specific, actionable advice that takes the supplied weather data into account
- Consider temperature, humidity, wind speed, and precipitation
- Suggest crops and activities appropriate to the season
- Keep the tone friendly and easy to understand`
