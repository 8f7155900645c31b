package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/journey"
	"github.com/etnz/journey/date"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type handler struct {
	market  *journey.Market
	metrics *Metrics
	logger  zerolog.Logger
}

// errBadRequest marks errors in the query parameters.
var errBadRequest = errors.New("bad request")

// tickers lists the tickers with their metadata.
// GET /api/tickers
func (h *handler) tickers(w http.ResponseWriter, r *http.Request) {
	metas := make([]journey.Metadata, 0)
	for _, t := range h.market.Tickers() {
		metas = append(metas, h.market.Get(t).Meta)
	}
	respondJSON(w, http.StatusOK, metas)
}

// journey simulates a single ticker.
// GET /api/journey/{ticker}?from=2024-01-01&to=2024-12-31&shares=100|amount=10000&drip=true&overlay=true
func (h *handler) journey(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := journey.JourneyRequest{Ticker: mux.Vars(r)["ticker"]}
	var err error
	if req.Range, err = parseRange(q.Get("from"), q.Get("to")); err != nil {
		h.fail(w, err)
		return
	}
	if req.Investment, err = h.parseInvestment(q.Get("shares"), q.Get("amount")); err != nil {
		h.fail(w, err)
		return
	}
	if req.DRIP, err = parseBool(q.Get("drip")); err != nil {
		h.fail(w, err)
		return
	}
	if req.Overlay, err = parseBool(q.Get("overlay")); err != nil {
		h.fail(w, err)
		return
	}

	start := time.Now()
	report, err := h.market.Journey(req)
	h.metrics.observe("journey", start, err)
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// compare ranks several tickers.
// GET /api/compare?tickers=JEPI,JEPQ&from=2024-01-01&to=2024-12-31&amount=10000&drip=false&overlay=true
func (h *handler) compare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := journey.CompareRequest{Amount: journey.M(10000, h.market.Currency())}
	for _, t := range strings.Split(q.Get("tickers"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			req.Tickers = append(req.Tickers, t)
		}
	}
	if len(req.Tickers) == 0 {
		h.fail(w, fmt.Errorf("%w: at least one ticker is required", errBadRequest))
		return
	}
	var err error
	if req.Range, err = parseRange(q.Get("from"), q.Get("to")); err != nil {
		h.fail(w, err)
		return
	}
	if a := q.Get("amount"); a != "" {
		d, err := decimal.NewFromString(a)
		if err != nil || !d.IsPositive() {
			h.fail(w, fmt.Errorf("%w: invalid amount %q", errBadRequest, a))
			return
		}
		req.Amount = journey.M(d, h.market.Currency())
	}
	if req.DRIP, err = parseBool(q.Get("drip")); err != nil {
		h.fail(w, err)
		return
	}
	if req.Overlay, err = parseBool(q.Get("overlay")); err != nil {
		h.fail(w, err)
		return
	}

	start := time.Now()
	lb, err := h.market.Compare(r.Context(), req)
	h.metrics.observe("compare", start, err)
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lb)
}

// dividends returns the aligned dividends of a ticker.
// GET /api/dividends/{ticker}
func (h *handler) dividends(w http.ResponseWriter, r *http.Request) {
	d, err := h.market.Dividends(mux.Vars(r)["ticker"])
	if err != nil {
		h.fail(w, err)
		return
	}
	respondJSON(w, http.StatusOK, d)
}

// fail maps an error to its HTTP status.
func (h *handler) fail(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, journey.ErrInvalidRange), errors.Is(err, journey.ErrNegativeShares):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, journey.ErrUnknownTicker), errors.Is(err, journey.ErrNoData):
		respondError(w, http.StatusNotFound, err.Error())
	default:
		h.logger.Error().Err(err).Msg("request failed")
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// parseRange parses optional bounds, a missing bound is zero.
func parseRange(from, to string) (date.Range, error) {
	var r date.Range
	var err error
	if from != "" {
		if r.From, err = date.Parse(from); err != nil {
			return r, fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}
	if to != "" {
		if r.To, err = date.Parse(to); err != nil {
			return r, fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}
	return r, nil
}

func (h *handler) parseInvestment(shares, amount string) (journey.Investment, error) {
	switch {
	case shares != "" && amount != "":
		return journey.Investment{}, fmt.Errorf("%w: shares and amount are exclusive", errBadRequest)
	case amount != "":
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return journey.Investment{}, fmt.Errorf("%w: invalid amount %q", errBadRequest, amount)
		}
		return journey.ByAmount(journey.M(d, h.market.Currency())), nil
	case shares != "":
		d, err := decimal.NewFromString(shares)
		if err != nil {
			return journey.Investment{}, fmt.Errorf("%w: invalid shares %q", errBadRequest, shares)
		}
		return journey.ByShares(journey.Q(d)), nil
	default:
		return journey.ByShares(journey.Q(100)), nil
	}
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%w: invalid boolean %q", errBadRequest, s)
	}
	return b, nil
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
