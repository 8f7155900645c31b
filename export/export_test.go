package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/etnz/journey"
	"github.com/etnz/journey/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func usd(v float64) journey.Money { return journey.M(v, "USD") }

func testMarket() *journey.Market {
	m := journey.NewMarket("USD")
	m.Add(journey.NewSecurity(journey.NewMetadata("INCY", "Covered Call", "Income Fund", ""),
		journey.NewPriceSeries("INCY", "USD",
			journey.PricePoint{Date: date.New(2024, 1, 1), Close: usd(10)},
			journey.PricePoint{Date: date.New(2024, 1, 2), Close: usd(10)},
			journey.PricePoint{Date: date.New(2024, 1, 3), Close: usd(20)},
		),
		[]journey.RawDividendEvent{{ExDate: date.New(2024, 1, 2), Amount: usd(1)}}, nil))
	return m
}

var testRange = date.Between(date.New(2024, 1, 1), date.New(2024, 1, 3))

func testReport(t *testing.T) *journey.Report {
	t.Helper()
	r, err := testMarket().Journey(journey.JourneyRequest{Ticker: "INCY", Range: testRange, Investment: journey.ByShares(journey.Q(10))})
	require.NoError(t, err)
	return r
}

func testLeaderboard(t *testing.T, drip bool) *journey.Leaderboard {
	t.Helper()
	lb, err := testMarket().Compare(context.Background(), journey.CompareRequest{Tickers: []string{"INCY"}, Range: testRange, Amount: usd(1000), DRIP: drip})
	require.NoError(t, err)
	return lb
}

func TestBuildJourneyXLSX(t *testing.T) {
	content, err := BuildJourneyXLSX(testReport(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"summary", "daily"}, f.GetSheetList())

	ticker, err := f.GetCellValue("summary", "B1")
	require.NoError(t, err)
	assert.Equal(t, "INCY", ticker)

	rows, err := f.GetRows("daily")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "2024-01-03", rows[3][0])
	assert.Equal(t, "210", rows[3][6])
}

func TestBuildLeaderboardXLSX(t *testing.T) {
	for _, drip := range []bool{false, true} {
		content, err := BuildLeaderboardXLSX(testLeaderboard(t, drip))
		require.NoError(t, err)
		f, err := excelize.OpenReader(bytes.NewReader(content))
		require.NoError(t, err)
		ticker, _ := f.GetCellValue("leaderboard", "B6")
		assert.Equal(t, "INCY", ticker)
		yield, _ := f.GetCellValue("leaderboard", "D6")
		if drip {
			assert.Equal(t, "N/A", yield)
		} else {
			assert.Equal(t, "10.00%", yield)
		}
		f.Close()
	}
}

func TestBuildPDF(t *testing.T) {
	content, err := BuildJourneyPDF(testReport(t))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))

	content, err = BuildLeaderboardPDF(testLeaderboard(t, true))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"journey.xlsx", "journey.PDF"} {
		path := filepath.Join(dir, name)
		require.NoError(t, WriteJourney(path, testReport(t)))
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	require.NoError(t, WriteLeaderboard(filepath.Join(dir, "lb.xlsx"), testLeaderboard(t, false)))

	assert.ErrorIs(t, WriteJourney(filepath.Join(dir, "journey.csv"), testReport(t)), ErrUnsupportedFormat)
	assert.ErrorIs(t, WriteLeaderboard(filepath.Join(dir, "lb.txt"), testLeaderboard(t, false)), ErrUnsupportedFormat)
}
