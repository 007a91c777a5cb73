package upstream

import "fmt"

// RateTable maps ISO 4217 currency codes to units-per-USD exchange rates.
type RateTable map[string]float64

// Resolve returns the rate for a code, defaulting to 1 when the code is
// absent or the quoted rate is unusable. Resolution never fails.
func (t RateTable) Resolve(code string) float64 {
	if rate, ok := t[code]; ok && rate > 0 {
		return rate
	}
	return 1
}

// DefaultRateTable is the degraded mapping used when every rate source is
// down: empty, so every code resolves to 1.
func DefaultRateTable() RateTable {
	return RateTable{}
}

// ratesResponse covers both known provider shapes: open.er-api.com returns the
// mapping under "rates", exchangerate-api.com under "conversion_rates".
type ratesResponse struct {
	Result          string             `json:"result"`
	Rates           map[string]float64 `json:"rates"`
	ConversionRates map[string]float64 `json:"conversion_rates"`
}

// FetchRates pulls the USD-based rate table from the first responsive
// candidate. A response that decodes but carries no mapping counts as a
// failure so the chain moves on.
func (c *Client) FetchRates(urls []string) (RateTable, string, error) {
	return fetchFirst("rates", urls, func(url string) (RateTable, error) {
		var payload ratesResponse
		if err := c.getJSON(url, &payload); err != nil {
			return nil, err
		}

		table := payload.Rates
		if len(table) == 0 {
			table = payload.ConversionRates
		}
		if len(table) == 0 {
			return nil, fmt.Errorf("no usable rate mapping in response")
		}

		return RateTable(table), nil
	})
}
