// Package renderer renders journeys and leaderboards to markdown.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"slices"
	"strings"
	"text/template"

	"github.com/etnz/journey"
)

//go:embed templates/*.md
var templateFS embed.FS

var templates, _ = fs.Sub(templateFS, "templates")

// JourneyRenderOptions holds configuration for rendering a journey report.
type JourneyRenderOptions struct {
	SkipDetail bool // Do not render the daily detail table.
	MaxRows    int  // Maximum number of daily rows, 0 means all.
}

// journeyView is the data of the journey templates.
type journeyView struct {
	*journey.Report
	ValueLabel string
	CashLabel  string
	Profit     string
	Rows       []journey.DailyState // newest first.
	Truncated  int
}

// RenderJourney renders a single asset journey report.
func RenderJourney(r *journey.Report, opts JourneyRenderOptions) string {
	v := journeyView{Report: r, ValueLabel: "End Asset Value", CashLabel: "Dividends Collected"}
	if r.Summary.DRIP {
		v.ValueLabel, v.CashLabel = "End Value (DRIP)", "New Shares Acquired"
	}
	if pl := r.Summary.TotalPL; pl.IsNegative() {
		v.Profit = "LOSS: -" + pl.Abs().String()
	} else {
		v.Profit = "PROFIT: +" + pl.String()
	}
	v.Rows = slices.Clone(r.Trajectory)
	slices.Reverse(v.Rows)
	if opts.MaxRows > 0 && len(v.Rows) > opts.MaxRows {
		v.Truncated = len(v.Rows) - opts.MaxRows
		v.Rows = v.Rows[:opts.MaxRows]
	}

	partials := map[string]string{
		"journey_title":   "journey_title.md",
		"journey_metrics": "journey_metrics.md",
		"journey_detail":  "journey_detail.md",
	}
	if opts.SkipDetail {
		partials["journey_detail"] = ""
	}
	return renderTemplate("journey", "journey.md", partials, v)
}

// RenderLeaderboard renders a head to head comparison.
func RenderLeaderboard(lb *journey.Leaderboard) string {
	partials := map[string]string{
		"leaderboard_cash": "leaderboard_cash.md",
		"leaderboard_drip": "leaderboard_drip.md",
	}
	return renderTemplate("leaderboard", "leaderboard.md", partials, lb)
}

// dividendsView is the data of the dividends template.
type dividendsView struct {
	Ticker    string
	Events    []journey.RawDividendEvent
	Ledger    []journey.LedgerPayDate
	Dividends []journey.AlignedDividend
}

// RenderDividends renders how the dividends of a security were aligned with its pay dates.
func RenderDividends(sec *journey.Security) string {
	v := dividendsView{
		Ticker:    sec.Meta.Ticker,
		Events:    sec.Events,
		Ledger:    sec.Ledger,
		Dividends: sec.Dividends(),
	}
	return renderTemplate("dividends", "dividends.md", nil, v)
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
