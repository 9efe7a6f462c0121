// Package places is a thin client for an establishment text-search API used
// to pre-fill institution names and mailing addresses. The service must work
// without it: a missing credential disables lookups and the form falls back
// to manual entry.
package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrUnavailable means no API key is configured; callers degrade to
	// manual entry.
	ErrUnavailable = errors.New("places: lookup disabled, no API key configured")
	// ErrNoMatch means the query returned no establishments.
	ErrNoMatch = errors.New("places: no matching establishment")
)

// Place is an establishment returned by the lookup service.
type Place struct {
	Name             string `json:"name"`
	FormattedAddress string `json:"formatted_address"`
}

type searchResponse struct {
	Results []Place `json:"results"`
	Status  string  `json:"status"`
}

// Client talks to a Places-style text search endpoint.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient returns a client for the given endpoint. An empty apiKey yields a
// disabled client whose lookups fail with ErrUnavailable.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Enabled reports whether lookups can be attempted at all.
func (c *Client) Enabled() bool {
	return c != nil && c.APIKey != ""
}

// Lookup returns the best establishment match for the query text.
func (c *Client) Lookup(ctx context.Context, query string) (Place, error) {
	if !c.Enabled() {
		return Place{}, ErrUnavailable
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("type", "establishment")
	params.Set("key", c.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/textsearch/json?"+params.Encode(), nil)
	if err != nil {
		return Place{}, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Place{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Place{}, fmt.Errorf("places: search returned status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Place{}, err
	}
	if body.Status == "ZERO_RESULTS" || len(body.Results) == 0 {
		return Place{}, ErrNoMatch
	}
	return body.Results[0], nil
}
