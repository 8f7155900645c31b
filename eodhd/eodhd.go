// Package eodhd provides market data from EOD Historical Data.
//
// Prices come from the end of day API and dividends from the dividends API,
// where the reported date is the ex-dividend date.
// see https://eodhd.com/financial-apis/api-splits-dividends
package eodhd

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/etnz/journey"
	"github.com/etnz/journey/date"
	"github.com/etnz/journey/httpcache"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the EODHD API root.
const DefaultBaseURL = "https://eodhd.com/api"

// DemoKey is the public demo key, it only serves a few tickers like MCD.US or AAPL.US.
const DemoKey = "demo"

// Client queries the EODHD API.
type Client struct {
	apiKey   string
	baseURL  string
	exchange string // appended to tickers without one.
	currency string
	since    date.Date
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, mostly for tests.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") } }

// WithHTTPClient overrides the daily caching http client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithExchange sets the EODHD exchange code of tickers without one, "US" by default.
func WithExchange(code string) Option { return func(c *Client) { c.exchange = code } }

// WithHistoryStart sets the first day of the dividend history.
func WithHistoryStart(d date.Date) Option { return func(c *Client) { c.since = d } }

// New returns a client for apiKey, reporting amounts in currency.
func New(apiKey, currency string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		baseURL:  DefaultBaseURL,
		exchange: "US",
		currency: currency,
		since:    date.New(2000, 1, 1),
		http:     httpcache.NewClient(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// symbol returns the EODHD ticker, typically "SYMBOL.EXCHANGECODE".
func (c *Client) symbol(ticker string) string {
	if strings.Contains(ticker, ".") || c.exchange == "" {
		return ticker
	}
	return ticker + "." + c.exchange
}

func (c *Client) url(api, ticker string, from, to date.Date) string {
	q := url.Values{}
	q.Set("fmt", "json")
	q.Set("api_token", c.apiKey)
	q.Set("from", from.String())
	if !to.IsZero() {
		q.Set("to", to.String())
	}
	return fmt.Sprintf("%s/%s/%s?%s", c.baseURL, api, url.PathEscape(c.symbol(ticker)), q.Encode())
}

// Prices returns the daily closing prices of ticker within r.
func (c *Client) Prices(ctx context.Context, ticker string, r date.Range) (*journey.PriceSeries, error) {
	// [
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	},
	// bounds are included in the response.
	type Info struct {
		Date  date.Date       `json:"date"`
		Close decimal.Decimal `json:"close"`
	}
	content := make([]Info, 0)
	if err := c.get(ctx, c.url("eod", ticker, r.From, r.To), &content); err != nil {
		return nil, fmt.Errorf("cannot fetch %s prices: %w", ticker, err)
	}

	s := journey.NewPriceSeries(ticker, c.currency)
	for _, info := range content {
		s.Append(info.Date, journey.M(info.Close, c.currency))
	}
	log.Debug().Str("ticker", ticker).Int("prices", s.Len()).Msg("eodhd prices")
	return s, nil
}

// Dividends returns the dividend history of ticker, by ex-date.
func (c *Client) Dividends(ctx context.Context, ticker string) ([]journey.RawDividendEvent, error) {
	type apiDividend struct {
		Date     date.Date       `json:"date"` // ex-dividend date
		Value    decimal.Decimal `json:"value"`
		Currency string          `json:"currency"`
	}
	content := make([]apiDividend, 0)
	if err := c.get(ctx, c.url("div", ticker, c.since, date.Date{}), &content); err != nil {
		return nil, fmt.Errorf("cannot fetch %s dividends: %w", ticker, err)
	}

	events := make([]journey.RawDividendEvent, 0, len(content))
	for _, d := range content {
		if !d.Value.IsPositive() {
			continue
		}
		if d.Currency != "" && d.Currency != c.currency {
			log.Warn().Str("ticker", ticker).Str("currency", d.Currency).Msg("dividend currency differs from the reporting currency")
		}
		events = append(events, journey.RawDividendEvent{ExDate: d.Date, Amount: journey.M(d.Value, c.currency)})
	}
	return events, nil
}

// get performs a GET bound to ctx and decodes the JSON response.
func (c *Client) get(ctx context.Context, addr string, data any) error {
	client := *c.http
	client.Transport = contextTransport{ctx: ctx, base: c.http.Transport}
	return httpcache.GetJSON(&client, addr, data)
}

// contextTransport binds outgoing requests to a context.
type contextTransport struct {
	ctx  context.Context
	base http.RoundTripper
}

func (t contextTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(req.WithContext(t.ctx))
}
