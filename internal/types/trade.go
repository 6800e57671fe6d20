package types

import (
	"time"
)

// TradeAction tags a trade log entry as a position entry or exit.
type TradeAction string

const (
	ActionEntry TradeAction = "ENTRY"
	ActionExit  TradeAction = "EXIT"
)

// Position is an open pair position. Owned exclusively by the ledger:
// created on open, never mutated, removed on close.
type Position struct {
	Pair Pair
	// Direction is +1 for long-the-spread, -1 for short.
	Direction int
	// Signal is the raw signal value that triggered the entry.
	Signal float64
	// Quantity is the position size, always positive.
	Quantity    float64
	EntryDate   time.Time
	EntryPrice1 float64
	EntryPrice2 float64
	Confidence  float64
	// EntryCost is the transaction cost accrued at entry.
	EntryCost float64
	// Features is the feature snapshot captured when the position opened.
	Features map[string]float64
}

// EntrySpread is the spread (price1 - price2) locked in at entry.
func (p Position) EntrySpread() float64 {
	return p.EntryPrice1 - p.EntryPrice2
}

// TradeRecord is one append-only trade log entry. Immutable once appended.
type TradeRecord struct {
	// Seq preserves append order; the trade log is totally ordered by it.
	Seq  int64
	ID   string
	Date time.Time
	Pair Pair
	// Action is ENTRY or EXIT.
	Action TradeAction
	// Quantity is signed: positive for long-the-spread entries, negated on
	// exit.
	Quantity   float64
	Price1     float64
	Price2     float64
	Cost       float64
	Confidence float64
	// PnL is set on EXIT records only.
	PnL float64
	// Reason is set on EXIT records only (e.g. "signal change").
	Reason string
}

// PairPerformanceRecord summarizes one closed round trip of a pair.
type PairPerformanceRecord struct {
	Pair              Pair
	EntryDate         time.Time
	ExitDate          time.Time
	HoldingPeriodDays int
	PnL               float64
	// ReturnPct is PnL divided by the exit notional.
	ReturnPct  float64
	Confidence float64
	ExitReason string
}
