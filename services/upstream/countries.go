package upstream

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// NormalizedCountry is the canonical record produced from either upstream
// payload shape, before rates and GDP are attached.
type NormalizedCountry struct {
	Name         string
	Capital      string
	Region       string
	Population   int64
	CurrencyCode string
	FlagURL      string
}

// === Upstream payload shapes ===

// countryV3 is the nested shape: name as an object, currencies keyed by code.
type countryV3 struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	Capital    []string `json:"capital"`
	Region     string   `json:"region"`
	Population int64    `json:"population"`
	Currencies map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
	Flags struct {
		PNG string `json:"png"`
		SVG string `json:"svg"`
	} `json:"flags"`
}

// countryV2 is the flat legacy shape: name as a string, currencies as an array.
type countryV2 struct {
	Name       string `json:"name"`
	Capital    string `json:"capital"`
	Region     string `json:"region"`
	Population int64  `json:"population"`
	Currencies []struct {
		Code   string `json:"code"`
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
	Flag string `json:"flag"`
}

// NormalizeCountry maps one raw record onto the canonical shape. The variant
// is sniffed structurally: the nested decode is attempted first, then the flat
// legacy one. A record with no usable name returns (nil, nil); the caller
// counts it as a drop, not an error.
func NormalizeCountry(raw json.RawMessage) (*NormalizedCountry, error) {
	var nested countryV3
	if err := json.Unmarshal(raw, &nested); err == nil {
		return fromV3(nested), nil
	}

	var flat countryV2
	if err := json.Unmarshal(raw, &flat); err == nil {
		return fromV2(flat), nil
	}

	return nil, fmt.Errorf("record matches no known payload shape")
}

func fromV3(rec countryV3) *NormalizedCountry {
	// Prefer the common display name over the official one
	name := rec.Name.Common
	if name == "" {
		name = rec.Name.Official
	}
	if name == "" {
		return nil
	}

	capital := "Unknown"
	if len(rec.Capital) > 0 && rec.Capital[0] != "" {
		capital = rec.Capital[0]
	}

	currency := "USD"
	if len(rec.Currencies) > 0 {
		// Map iteration order is random; sort the codes so the pick is stable
		codes := make([]string, 0, len(rec.Currencies))
		for code := range rec.Currencies {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		if codes[0] != "" {
			currency = strings.ToUpper(codes[0])
		}
	}

	flag := rec.Flags.PNG
	if flag == "" {
		flag = rec.Flags.SVG
	}

	return &NormalizedCountry{
		Name:         name,
		Capital:      capital,
		Region:       regionOrUnknown(rec.Region),
		Population:   clampPopulation(rec.Population),
		CurrencyCode: currency,
		FlagURL:      flag,
	}
}

func fromV2(rec countryV2) *NormalizedCountry {
	if rec.Name == "" {
		return nil
	}

	capital := rec.Capital
	if capital == "" {
		capital = "Unknown"
	}

	currency := "USD"
	if len(rec.Currencies) > 0 && rec.Currencies[0].Code != "" {
		currency = strings.ToUpper(rec.Currencies[0].Code)
	}

	return &NormalizedCountry{
		Name:         rec.Name,
		Capital:      capital,
		Region:       regionOrUnknown(rec.Region),
		Population:   clampPopulation(rec.Population),
		CurrencyCode: currency,
		FlagURL:      rec.Flag,
	}
}

func regionOrUnknown(region string) string {
	if region == "" {
		return "Unknown"
	}
	return region
}

func clampPopulation(population int64) int64 {
	if population < 0 {
		return 0
	}
	return population
}

// FetchCountries pulls the raw country payload from the first responsive
// candidate. Records stay raw JSON here; the shape is resolved per record by
// NormalizeCountry so one malformed entry never poisons the batch.
func (c *Client) FetchCountries(urls []string) ([]json.RawMessage, string, error) {
	return fetchFirst("countries", urls, func(url string) ([]json.RawMessage, error) {
		var payload []json.RawMessage
		if err := c.getJSON(url, &payload); err != nil {
			return nil, err
		}
		return payload, nil
	})
}
