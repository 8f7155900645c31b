package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/etnz/journey"
	"github.com/etnz/journey/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timestamps are 09:30 New York time (gmtoffset -18000) on 2024-01-02, 03 and 04.
const chartJSON = `{"chart":{"result":[{
	"meta":{"symbol":"JEPI","currency":"USD","gmtoffset":-18000},
	"timestamp":[1704205800,1704292200,1704378600],
	"events":{"dividends":{
		"1704292200":{"amount":0.35,"date":1704292200},
		"1701441000":{"amount":0.4,"date":1701441000}
	}},
	"indicators":{"quote":[{"close":[54.5,null,55.25]}]}
}],"error":null}}`

const noDividendJSON = `{"chart":{"result":[{
	"meta":{"symbol":"NODV","currency":"USD","gmtoffset":-18000},
	"timestamp":[1704205800],
	"indicators":{"quote":[{"close":[10]}]}
}],"error":null}}`

func newTestClient(t *testing.T, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "div", r.URL.Query().Get("events"))
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return New("USD", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithRate(0))
}

func TestClient_Prices(t *testing.T) {
	c := newTestClient(t, chartJSON)
	s, err := c.Prices(context.Background(), "JEPI", date.Between(date.New(2024, 1, 2), date.New(2024, 1, 4)))
	require.NoError(t, err)
	require.Equal(t, 3, s.Len())

	first, ok := s.Inception()
	require.True(t, ok)
	assert.Equal(t, date.New(2024, 1, 2), first)

	missing, ok := s.Close(date.New(2024, 1, 3))
	require.True(t, ok)
	assert.True(t, missing.IsZero(), "null close = %v, want 0", missing)

	last, _ := s.Close(date.New(2024, 1, 4))
	assert.True(t, last.Equal(journey.M(55.25, "USD")))
}

func TestClient_PricesOutsideRange(t *testing.T) {
	c := newTestClient(t, chartJSON)
	s, err := c.Prices(context.Background(), "JEPI", date.Between(date.New(2024, 1, 3), date.New(2024, 1, 3)))
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestClient_Dividends(t *testing.T) {
	c := newTestClient(t, chartJSON)
	events, err := c.Dividends(context.Background(), "JEPI")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, date.New(2023, 12, 1), events[0].ExDate)
	assert.Equal(t, date.New(2024, 1, 3), events[1].ExDate)
	assert.True(t, events[1].Amount.Equal(journey.M(0.35, "USD")))
}

// two distributions on the same day, one of them sharing its timestamp with another key.
const sameDayJSON = `{"chart":{"result":[{
	"meta":{"symbol":"TSLY","currency":"USD","gmtoffset":-18000},
	"timestamp":[1704292200],
	"events":{"dividends":{
		"1704295800":{"amount":0.25,"date":1704295800},
		"1704292201":{"amount":0.1,"date":1704292200},
		"1704292200":{"amount":0.35,"date":1704292200}
	}},
	"indicators":{"quote":[{"close":[12]}]}
}],"error":null}}`

func TestClient_DividendsSameDayOrder(t *testing.T) {
	c := newTestClient(t, sameDayJSON)
	want := []journey.Money{journey.M(0.35, "USD"), journey.M(0.1, "USD"), journey.M(0.25, "USD")}
	for range 20 {
		events, err := c.Dividends(context.Background(), "TSLY")
		require.NoError(t, err)
		require.Len(t, events, 3)
		for i, e := range events {
			assert.Equal(t, date.New(2024, 1, 3), e.ExDate)
			assert.True(t, e.Amount.Equal(want[i]), "event %d = %v, want %v", i, e.Amount, want[i])
		}
	}
}

func TestClient_NoDividends(t *testing.T) {
	c := newTestClient(t, noDividendJSON)
	events, err := c.Dividends(context.Background(), "NODV")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestClient_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()
	c := New("USD", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()), WithRate(0))

	_, err := c.Prices(context.Background(), "NOPE", date.Between(date.New(2024, 1, 2), date.New(2024, 1, 4)))
	assert.ErrorIs(t, err, ErrTickerNotFound)
}
