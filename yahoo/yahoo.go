// Package yahoo provides market data from the Yahoo Finance chart API.
//
// A single chart query with dividend events returns both the daily closes
// and the dividends of a ticker, the dividend date being the ex-date.
package yahoo

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/journey"
	"github.com/etnz/journey/date"
	"github.com/etnz/journey/httpcache"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the chart API root.
const DefaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// ErrTickerNotFound is returned when Yahoo has no chart for a ticker.
var ErrTickerNotFound = errors.New("ticker not found")

const userAgent = "Mozilla/5.0 (compatible; hyt/1.0)"

// Client queries the Yahoo Finance chart API.
type Client struct {
	baseURL  string
	currency string
	since    date.Date
	http     *http.Client
	limiter  *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, mostly for tests.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = strings.TrimSuffix(u, "/") } }

// WithHTTPClient overrides the daily caching http client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithRate limits queries to r per second, bursts included.
func WithRate(r float64) Option {
	return func(c *Client) {
		if r > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(r), max(1, int(r)))
		} else {
			c.limiter = rate.NewLimiter(rate.Inf, 0)
		}
	}
}

// WithHistoryStart sets the first day of the dividend history.
func WithHistoryStart(d date.Date) Option { return func(c *Client) { c.since = d } }

// New returns a client reporting amounts in currency.
func New(currency string, opts ...Option) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		currency: currency,
		since:    date.New(2000, 1, 1),
		http:     httpcache.NewClient(),
		limiter:  rate.NewLimiter(rate.Limit(2), 2),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol    string `json:"symbol"`
		Currency  string `json:"currency"`
		GMTOffset int64  `json:"gmtoffset"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Close []*float64 `json:"close"`
		} `json:"quote"`
	} `json:"indicators"`
}

// chart fetches the raw chart document of ticker between from and to.
func (c *Client) chart(ctx context.Context, ticker string, from, to date.Date) ([]byte, error) {
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(from.Time().Unix(), 10))
	// period2 is exclusive.
	q.Set("period2", strconv.FormatInt(to.Add(1).Time().Unix(), 10))
	q.Set("interval", "1d")
	q.Set("events", "div")
	addr := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(ticker), q.Encode())

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot http GET %v%v: %v", req.URL.Host, req.URL.Path, resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// Prices returns the daily closing prices of ticker within r. Missing closes are zero.
func (c *Client) Prices(ctx context.Context, ticker string, r date.Range) (*journey.PriceSeries, error) {
	body, err := c.chart(ctx, ticker, r.From, r.To)
	if err != nil {
		return nil, fmt.Errorf("cannot fetch %s prices: %w", ticker, err)
	}
	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("cannot parse %s chart: %w", ticker, err)
	}
	if resp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart error for %s: %s", ticker, resp.Chart.Error.Description)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTickerNotFound, ticker)
	}
	result := resp.Chart.Result[0]
	if result.Meta.Currency != "" && result.Meta.Currency != c.currency {
		log.Warn().Str("ticker", ticker).Str("currency", result.Meta.Currency).Msg("price currency differs from the reporting currency")
	}

	var closes []*float64
	if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}
	s := journey.NewPriceSeries(ticker, c.currency)
	for i, ts := range result.Timestamp {
		day := c.day(ts, result.Meta.GMTOffset)
		if !r.Contains(day) {
			continue
		}
		price := decimal.Zero
		if i < len(closes) && closes[i] != nil {
			price = decimal.NewFromFloat(*closes[i])
		}
		s.Append(day, journey.M(price, c.currency))
	}
	log.Debug().Str("ticker", ticker).Int("prices", s.Len()).Msg("yahoo prices")
	return s, nil
}

// Dividends returns the dividend history of ticker, by ex-date.
func (c *Client) Dividends(ctx context.Context, ticker string) ([]journey.RawDividendEvent, error) {
	body, err := c.chart(ctx, ticker, c.since, date.Today())
	if err != nil {
		return nil, fmt.Errorf("cannot fetch %s dividends: %w", ticker, err)
	}
	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("cannot parse %s chart: %w", ticker, err)
	}
	// "events": {"dividends": {"1706711400": {"amount": 0.35, "date": 1706711400}}}
	jval, err := jsonpath.Get("$.chart.result[0].events.dividends", doc)
	if err != nil {
		// no events at all: the ticker never paid a dividend.
		return []journey.RawDividendEvent{}, nil
	}
	var gmtoffset int64
	if off, err := jsonpath.Get("$.chart.result[0].meta.gmtoffset", doc); err == nil {
		if f, ok := off.(float64); ok {
			gmtoffset = int64(f)
		}
	}
	dividends, ok := jval.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("cannot parse %s dividends: unexpected %T", ticker, jval)
	}

	// map order is random: order by timestamp, then by key for same-day events.
	type stamped struct {
		ts    int64
		key   string
		event journey.RawDividendEvent
	}
	all := make([]stamped, 0, len(dividends))
	for key, v := range dividends {
		d, ok := v.(map[string]any)
		if !ok {
			continue
		}
		amount, _ := d["amount"].(float64)
		ts, ok := d["date"].(float64)
		if !ok {
			n, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				continue
			}
			ts = float64(n)
		}
		if amount <= 0 {
			continue
		}
		all = append(all, stamped{ts: int64(ts), key: key, event: journey.RawDividendEvent{
			ExDate: c.day(int64(ts), gmtoffset),
			Amount: journey.M(decimal.NewFromFloat(amount), c.currency),
		}})
	}
	slices.SortFunc(all, func(a, b stamped) int {
		return cmp.Or(cmp.Compare(a.ts, b.ts), strings.Compare(a.key, b.key))
	})

	events := make([]journey.RawDividendEvent, len(all))
	for i, s := range all {
		events[i] = s.event
	}
	return events, nil
}

// day converts a chart timestamp into the exchange's calendar day.
func (c *Client) day(ts, gmtoffset int64) date.Date {
	return date.Of(time.Unix(ts+gmtoffset, 0).UTC())
}
