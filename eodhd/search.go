package eodhd

import (
	"context"
	"fmt"
	"net/url"

	"github.com/etnz/journey/date"
)

// SearchResult matches the structure of a single item in the EODHD search API response.
type SearchResult struct {
	Code              string    `json:"Code"`
	Exchange          string    `json:"Exchange"`
	Name              string    `json:"Name"`
	Type              string    `json:"Type"`
	Country           string    `json:"Country"`
	Currency          string    `json:"Currency"`
	ISIN              string    `json:"ISIN"`
	PreviousClose     float64   `json:"previousClose"`
	PreviousCloseDate date.Date `json:"previousCloseDate"`
}

// Ticker returns the EODHD ticker of the result.
func (r SearchResult) Ticker() string { return r.Code + "." + r.Exchange }

// Search searches for securities by name, ticker or ISIN.
func (c *Client) Search(ctx context.Context, term string) ([]SearchResult, error) {
	addr := fmt.Sprintf("%s/search/%s?fmt=json&api_token=%s", c.baseURL, url.PathEscape(term), url.QueryEscape(c.apiKey))
	var results []SearchResult
	if err := c.get(ctx, addr, &results); err != nil {
		return nil, fmt.Errorf("cannot search %q: %w", term, err)
	}
	return results, nil
}
