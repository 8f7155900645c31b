package export

import (
	"bytes"
	"fmt"

	"github.com/etnz/journey"
	"github.com/jung-kurt/gofpdf"
)

// BuildJourneyPDF renders a minimal PDF for a journey.
func BuildJourneyPDF(r *journey.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	s := r.Summary
	pdf.Cell(0, 8, fmt.Sprintf("Performance Simulator: %s", r.Meta.Ticker))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	lines := []string{
		fmt.Sprintf("Strategy: %s", r.Meta.Strategy),
		fmt.Sprintf("Company: %s", r.Meta.Company),
		fmt.Sprintf("Period: %s to %s (%d days)", r.Input.Start, r.Input.End, s.DaysHeld),
		fmt.Sprintf("Shares: %s to %s", r.Input.InitialShares, s.FinalShares),
		fmt.Sprintf("Initial Capital: %.2f", s.InitialCapital.AsFloat()),
		fmt.Sprintf("Market Value: %.2f (%s)", s.MarketValue.AsFloat(), s.MarketPLPercent.SignedString()),
	}
	if s.DRIP {
		lines = append(lines, fmt.Sprintf("New Shares Acquired: %s", s.SharesAdded))
	} else {
		lines = append(lines,
			fmt.Sprintf("Dividends Collected: %.2f", s.CashPocketed.AsFloat()),
			fmt.Sprintf("Annualized Yield: %s", s.AnnualizedYield))
	}
	lines = append(lines, fmt.Sprintf("True Total Value: %.2f (%s)", s.TrueValue.AsFloat(), s.TotalReturn.SignedString()))
	if u := r.Underlying; u != nil {
		lines = append(lines, fmt.Sprintf("Underlying %s: %s", u.Ticker, u.Return.SignedString()))
	}
	for _, l := range lines {
		pdf.Cell(0, 6, l)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	widths := []float64{28, 24, 24, 32, 32, 32}
	pdf.SetFont("Arial", "B", 9)
	for i, h := range []string{"Date", "Close", "Shares", "Cash", "Market Value", "True Value"} {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for i := len(r.Trajectory) - 1; i >= 0; i-- {
		d := r.Trajectory[i]
		pdf.CellFormat(widths[0], 6, d.Date.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%.2f", d.Close.AsFloat()), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[2], 6, d.Shares.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.2f", d.CashPocketed.AsFloat()), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%.2f", d.MarketValue.AsFloat()), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, fmt.Sprintf("%.2f", d.TrueValue.AsFloat()), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildLeaderboardPDF renders a minimal PDF for a leaderboard.
func BuildLeaderboardPDF(lb *journey.Leaderboard) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, fmt.Sprintf("Head-to-Head Leaderboard (%.2f %s Investment)", lb.Amount.AsFloat(), lb.Amount.Currency()))
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	drip := "no"
	if lb.DRIP {
		drip = "yes"
	}
	pdf.Cell(0, 6, fmt.Sprintf("Range: %s, dividends reinvested: %s", lb.Range, drip))
	pdf.Ln(8)

	widths := []float64{12, 40, 30, 24, 36, 36, 44, 36}
	pdf.SetFont("Arial", "B", 9)
	for i, h := range []string{"#", "Ticker", "Total Return", "Yield", "Cash Generated", "Shares Added", "Share Value (Remaining)", "Total Value"} {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for i, s := range lb.Standings {
		pdf.CellFormat(widths[0], 6, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[1], 6, tickerText(s), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, s.TotalReturn.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, yieldText(s), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%.2f", s.CashGenerated.AsFloat()), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, s.SharesAdded.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 6, fmt.Sprintf("%.2f", s.RemainingMarketValue.AsFloat()), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[7], 6, fmt.Sprintf("%.2f", s.TrueValue.AsFloat()), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
