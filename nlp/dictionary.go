package nlp

// cityEntry maps one surface form of a place name to the canonical English
// city name the weather provider resolves. Entries are scanned in slice
// order, so when several keys match a message the earliest entry wins.
type cityEntry struct {
	key  string
	city string
}

// cityDictionary covers major Japanese cities (kanji and kana readings),
// their romanized forms, and common international cities. Non-Japanese keys
// are stored lowercase and matched case-insensitively; Japanese keys are
// matched against the raw message text.
var cityDictionary = []cityEntry{
	// Major Japanese cities
	{"東京", "Tokyo"},
	{"とうきょう", "Tokyo"},
	{"大阪", "Osaka"},
	{"おおさか", "Osaka"},
	{"京都", "Kyoto"},
	{"きょうと", "Kyoto"},
	{"名古屋", "Nagoya"},
	{"なごや", "Nagoya"},
	{"札幌", "Sapporo"},
	{"さっぽろ", "Sapporo"},
	{"福岡", "Fukuoka"},
	{"ふくおか", "Fukuoka"},
	{"横浜", "Yokohama"},
	{"よこはま", "Yokohama"},
	{"神戸", "Kobe"},
	{"こうべ", "Kobe"},
	{"広島", "Hiroshima"},
	{"ひろしま", "Hiroshima"},
	{"仙台", "Sendai"},
	{"せんだい", "Sendai"},
	{"千葉", "Chiba"},
	{"ちば", "Chiba"},
	{"沖縄", "Okinawa"},
	{"おきなわ", "Okinawa"},
	{"那覇", "Naha"},
	{"なは", "Naha"},
	{"金沢", "Kanazawa"},
	{"かなざわ", "Kanazawa"},
	{"長崎", "Nagasaki"},
	{"ながさき", "Nagasaki"},
	{"熊本", "Kumamoto"},
	{"くまもと", "Kumamoto"},
	{"鹿児島", "Kagoshima"},
	{"かごしま", "Kagoshima"},
	{"新潟", "Niigata"},
	{"にいがた", "Niigata"},
	{"静岡", "Shizuoka"},
	{"しずおか", "Shizuoka"},

	// Romanized forms
	{"tokyo", "Tokyo"},
	{"osaka", "Osaka"},
	{"kyoto", "Kyoto"},
	{"nagoya", "Nagoya"},
	{"sapporo", "Sapporo"},
	{"fukuoka", "Fukuoka"},
	{"yokohama", "Yokohama"},
	{"kobe", "Kobe"},
	{"hiroshima", "Hiroshima"},
	{"sendai", "Sendai"},

	// International cities
	{"new york", "New York"},
	{"london", "London"},
	{"paris", "Paris"},
	{"berlin", "Berlin"},
	{"rome", "Rome"},
	{"madrid", "Madrid"},
	{"beijing", "Beijing"},
	{"shanghai", "Shanghai"},
	{"seoul", "Seoul"},
	{"bangkok", "Bangkok"},
	{"singapore", "Singapore"},
	{"sydney", "Sydney"},
	{"melbourne", "Melbourne"},
	{"los angeles", "Los Angeles"},
	{"san francisco", "San Francisco"},
	{"chicago", "Chicago"},
	{"toronto", "Toronto"},
	{"vancouver", "Vancouver"},
}
