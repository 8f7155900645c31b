// Package journey replays the history of a dividend paying holding.
//
// Dividend amounts reported by a market data provider on their ex-date are
// first aligned with the pay dates recorded in a ledger (Align). A holding
// is then simulated day by day over the closing prices of its ticker
// (Simulate), either pocketing dividends as cash or reinvesting them at the
// close of the pay date (DRIP). The resulting Trajectory is summarized into
// headline metrics (Summarize), and several tickers can be ranked head to
// head for the same amount invested (Compare).
//
// The engine is pure: it never fetches, caches or logs. Market data comes
// through the PriceSource, DividendSource and LedgerSource interfaces, and
// is assembled into a Market by Load.
//
// This package serves as the foundational logic for the `hyt` command-line
// tool and its HTTP API.
package journey
