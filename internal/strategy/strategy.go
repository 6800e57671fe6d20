// Package strategy defines the signal-producing interface consumed by the
// backtest engine and a reference spread mean-reversion implementation.
package strategy

import (
	"github.com/statarb-lab/pairtrade/internal/features"
	"github.com/statarb-lab/pairtrade/internal/market"
	"github.com/statarb-lab/pairtrade/internal/types"
)

// Strategy produces trading signals over a growing price history. The engine
// calls it once per timestep with the history up to and including that step;
// it must never see future rows.
type Strategy interface {
	// Name identifies the strategy in logs and reports.
	Name() string

	// Pairs declares the tradable universe. Signals for pairs outside it are
	// discarded during normalization.
	Pairs() []types.Pair

	// MaxPositionSize is the fraction of portfolio value used for fallback
	// sizing when the risk manager returns a non-positive size.
	MaxPositionSize() float64

	// GenerateSignals produces signals from the raw price history in any of
	// the three accepted shapes.
	GenerateSignals(history *market.PriceTable) (types.SignalSet, error)
}

// SignalPredictor is an optional capability: strategies that implement it are
// fed the engineered feature frame instead of raw prices. The engine checks
// for it with a type assertion each step.
type SignalPredictor interface {
	// PredictSignals produces signals from engineered features.
	PredictSignals(feats features.Frame) (types.SignalSet, error)
}
