package upstream

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Client is the HTTP plumbing shared by all upstream fetches. Every request
// carries the same per-call timeout; there are no retries against a single
// endpoint, only traversal of the candidate chain.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a configured client
func NewClient(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// getJSON performs a single GET against one candidate and decodes the body.
func (c *Client) getJSON(url string, out interface{}) error {
	resp, err := c.httpClient.Get(url)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("API returned status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// fetchFirst walks an ordered candidate list and returns the first payload
// that fetches and decodes, along with the URL that produced it. Individual
// failures are logged and absorbed; the error is non-nil only when every
// candidate failed.
func fetchFirst[T any](resource string, urls []string, fetch func(string) (T, error)) (T, string, error) {
	var zero T
	for _, url := range urls {
		payload, err := fetch(url)
		if err != nil {
			log.Printf("[UPSTREAM] %s source %s failed: %v", resource, url, err)
			continue
		}
		return payload, url, nil
	}
	return zero, "", fmt.Errorf("all %s sources failed", resource)
}
