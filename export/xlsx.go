package export

import (
	"bytes"
	"fmt"

	"github.com/etnz/journey"
	"github.com/xuri/excelize/v2"
)

// BuildJourneyXLSX renders a journey as a workbook with a summary and a daily sheet.
func BuildJourneyXLSX(r *journey.Report) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	summarySheet := "summary"
	dailySheet := "daily"
	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(dailySheet); err != nil {
		return nil, err
	}

	s := r.Summary
	rows := [][]any{
		{"Ticker", r.Meta.Ticker},
		{"Strategy", r.Meta.Strategy},
		{"Company", r.Meta.Company},
		{"Underlying", r.Meta.Underlying},
		{"Start", r.Input.Start.String()},
		{"End", r.Input.End.String()},
		{"Days Held", s.DaysHeld},
		{"DRIP", s.DRIP},
		{"Entry Price", r.EntryPrice.AsFloat()},
		{"Initial Shares", r.Input.InitialShares.AsFloat()},
		{"Final Shares", s.FinalShares.AsFloat()},
		{"Initial Capital", s.InitialCapital.AsFloat()},
		{"Market Value", s.MarketValue.AsFloat()},
		{"Market P/L %", float64(s.MarketPLPercent)},
		{"Cash Pocketed", s.CashPocketed.AsFloat()},
		{"Annualized Yield %", float64(s.AnnualizedYield)},
		{"True Value", s.TrueValue.AsFloat()},
		{"Total Return %", float64(s.TotalReturn)},
		{"Currency", s.InitialCapital.Currency()},
	}
	if u := r.Underlying; u != nil {
		rows = append(rows, []any{"Underlying Return %", float64(u.Return)})
	}
	for i, row := range rows {
		if err := f.SetSheetRow(summarySheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return nil, err
		}
	}

	header := []any{"Date", "Close", "Shares", "Cash Pocketed", "Market Value", "Base Asset Value", "True Value"}
	if err := f.SetSheetRow(dailySheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, d := range r.Trajectory {
		row := []any{d.Date.String(), d.Close.AsFloat(), d.Shares.AsFloat(), d.CashPocketed.AsFloat(), d.MarketValue.AsFloat(), d.BaseAssetValue.AsFloat(), d.TrueValue.AsFloat()}
		if err := f.SetSheetRow(dailySheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildLeaderboardXLSX renders a leaderboard as a single sheet workbook.
func BuildLeaderboardXLSX(lb *journey.Leaderboard) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := "leaderboard"
	f.SetSheetName("Sheet1", sheet)

	_ = f.SetCellValue(sheet, "A1", "Range")
	_ = f.SetCellValue(sheet, "B1", lb.Range.String())
	_ = f.SetCellValue(sheet, "A2", "Investment")
	_ = f.SetCellValue(sheet, "B2", lb.Amount.AsFloat())
	_ = f.SetCellValue(sheet, "A3", "DRIP")
	_ = f.SetCellValue(sheet, "B3", lb.DRIP)

	header := []any{"Rank", "Ticker", "Total Return %", "Yield %", "Cash Generated", "New Shares Added", "Share Value (Remaining)", "Total Value"}
	if err := f.SetSheetRow(sheet, "A5", &header); err != nil {
		return nil, err
	}
	for i, s := range lb.Standings {
		row := []any{i + 1, tickerText(s), float64(s.TotalReturn), yieldText(s), s.CashGenerated.AsFloat(), s.SharesAdded.AsFloat(), s.RemainingMarketValue.AsFloat(), s.TrueValue.AsFloat()}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+6), &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
