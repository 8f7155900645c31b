// Package httpcache provides an http.Client whose successful responses are
// kept on disk until the end of a period, so that market data providers are
// queried at most once a day.
package httpcache

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"

	"github.com/etnz/journey/date"
	"github.com/rs/zerolog/log"
)

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base   http.RoundTripper
	dir    string
	period date.Period
	today  func() date.Date
}

// RoundTrip implements the http.RoundTripper interface. It checks for a cached
// response on disk first. If a fresh cached response is not found, it proceeds
// with the actual HTTP request and caches the new response if it's successful.
func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// the key changes every period, so entries expire with it.
	rangeID := c.period.Range(c.today()).Identifier()
	key := fmt.Sprintf("%s %s %s", rangeID, req.Method, req.URL.String())
	key = fmt.Sprintf("hyt-%s-%x", c.period, sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		log.Debug().Str("host", req.URL.Host).Str("path", req.URL.Path).Msg("cache hit")
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("method", req.Method).Str("host", req.URL.Host).Str("path", req.URL.Path).Str("status", resp.Status).Msg("http")
	if resp.StatusCode >= 300 {
		return resp, nil
	}

	if err := c.put(key, resp); err != nil {
		log.Warn().Err(err).Msg("cache write error (ignored)")
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o644)
}

// Option configures a caching client.
type Option func(*diskCache)

// WithDir stores cached responses in dir instead of the system temporary directory.
func WithDir(dir string) Option { return func(c *diskCache) { c.dir = dir } }

// WithPeriod sets how long cached responses are valid, daily by default.
func WithPeriod(p date.Period) Option { return func(c *diskCache) { c.period = p } }

// WithTransport sets the transport used on cache misses.
func WithTransport(t http.RoundTripper) Option { return func(c *diskCache) { c.base = t } }

// NewClient returns an http.Client that uses a disk cache.
func NewClient(opts ...Option) *http.Client {
	c := &diskCache{base: http.DefaultTransport, dir: os.TempDir(), period: date.Daily, today: date.Today}
	for _, opt := range opts {
		opt(c)
	}
	return &http.Client{Transport: c}
}

// GetJSON performs an HTTP GET request to the given address and unmarshals
// the JSON response body into data.
func GetJSON(client *http.Client, addr string, data any) error {
	resp, err := client.Get(addr)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}
