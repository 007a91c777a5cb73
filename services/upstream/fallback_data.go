package upstream

// FallbackCountries is the built-in dataset used when every country source is
// down. Three stable records keep the mirror minimally useful instead of
// empty; their rates still come from the rate table (or its default).
func FallbackCountries() []NormalizedCountry {
	return []NormalizedCountry{
		{
			Name:         "United States",
			Capital:      "Washington, D.C.",
			Region:       "Americas",
			Population:   331002651,
			CurrencyCode: "USD",
			FlagURL:      "https://flagcdn.com/w320/us.png",
		},
		{
			Name:         "Japan",
			Capital:      "Tokyo",
			Region:       "Asia",
			Population:   125836021,
			CurrencyCode: "JPY",
			FlagURL:      "https://flagcdn.com/w320/jp.png",
		},
		{
			Name:         "Germany",
			Capital:      "Berlin",
			Region:       "Europe",
			Population:   83240525,
			CurrencyCode: "EUR",
			FlagURL:      "https://flagcdn.com/w320/de.png",
		},
	}
}
