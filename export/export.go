// Package export writes journeys and leaderboards as spreadsheets or PDF documents.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/journey"
)

// ErrUnsupportedFormat is returned for a file extension other than .xlsx or .pdf.
var ErrUnsupportedFormat = errors.New("unsupported export format, want .xlsx or .pdf")

// WriteJourney writes a journey report to path, in the format of its extension.
func WriteJourney(path string, r *journey.Report) error {
	var build func(*journey.Report) ([]byte, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		build = BuildJourneyXLSX
	case ".pdf":
		build = BuildJourneyPDF
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	content, err := build(r)
	if err != nil {
		return fmt.Errorf("cannot export journey of %s: %w", r.Meta.Ticker, err)
	}
	return os.WriteFile(path, content, 0o644)
}

// WriteLeaderboard writes a leaderboard to path, in the format of its extension.
func WriteLeaderboard(path string, lb *journey.Leaderboard) error {
	var build func(*journey.Leaderboard) ([]byte, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		build = BuildLeaderboardXLSX
	case ".pdf":
		build = BuildLeaderboardPDF
	default:
		return fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
	content, err := build(lb)
	if err != nil {
		return fmt.Errorf("cannot export leaderboard: %w", err)
	}
	return os.WriteFile(path, content, 0o644)
}

// yieldText is the yield of a standing as displayed.
func yieldText(s journey.Standing) string {
	if !s.HasYield {
		return "N/A"
	}
	return s.Yield.String()
}

func tickerText(s journey.Standing) string {
	if s.Underlying {
		return s.Ticker + " (underlying)"
	}
	return s.Ticker
}
