// Package risk defines the capability interface the backtest engine consumes
// for position sizing, limit checks, and per-pair risk metrics. A concrete
// risk model lives outside this library; FixedFraction is the explicit
// default used when the caller supplies none.
package risk

import (
	"github.com/statarb-lab/pairtrade/internal/market"
	"github.com/statarb-lab/pairtrade/internal/types"
)

// MetricRecord is an opaque bag of per-pair risk figures. The engine stores
// and reports them without interpreting the contents.
type MetricRecord map[string]float64

// Manager supplies position sizing, risk-limit checks, and per-pair metric
// updates to the engine.
type Manager interface {
	// CheckRiskLimits evaluates portfolio-level limits. A true result halts
	// the run after the current step's bookkeeping; detail describes the
	// breached limit.
	CheckRiskLimits(equity types.EquityCurve, open map[types.Pair]types.Position, currentPrices map[string]float64) (bool, string)

	// UpdateRiskMetrics refreshes the per-pair metrics from the return
	// history and current exposure.
	UpdateRiskMetrics(pair types.Pair, returns *market.PriceTable, open map[types.Pair]types.Position, confidence float64)

	// CalculatePositionSize sizes a prospective entry.
	CalculatePositionSize(portfolioValue float64, pair types.Pair, returns *market.PriceTable, confidence float64, corr *market.CorrMatrix) float64

	// MinModelConfidence is the entry gate: signals below it are ignored.
	MinModelConfidence() float64

	// CalculateDrawdown computes the maximum peak decline of an equity
	// series, as a fraction.
	CalculateDrawdown(equity types.EquityCurve) float64

	// RiskMetrics exposes the accumulated per-pair metrics for reporting.
	RiskMetrics() map[types.Pair]MetricRecord
}

// FixedFraction is the default Manager: it sizes every entry as a fixed
// fraction of portfolio value, applies no confidence gate, tracks no metrics,
// and never breaches.
type FixedFraction struct {
	fraction float64
}

// NewFixedFraction creates a FixedFraction sizing the given fraction of
// portfolio value per entry.
func NewFixedFraction(fraction float64) *FixedFraction {
	return &FixedFraction{fraction: fraction}
}

// CheckRiskLimits implements Manager. Never breaches.
func (f *FixedFraction) CheckRiskLimits(types.EquityCurve, map[types.Pair]types.Position, map[string]float64) (bool, string) {
	return false, ""
}

// UpdateRiskMetrics implements Manager. No-op.
func (f *FixedFraction) UpdateRiskMetrics(types.Pair, *market.PriceTable, map[types.Pair]types.Position, float64) {
}

// CalculatePositionSize implements Manager.
func (f *FixedFraction) CalculatePositionSize(portfolioValue float64, _ types.Pair, _ *market.PriceTable, _ float64, _ *market.CorrMatrix) float64 {
	return portfolioValue * f.fraction
}

// MinModelConfidence implements Manager. Zero disables the confidence gate.
func (f *FixedFraction) MinModelConfidence() float64 {
	return 0
}

// CalculateDrawdown implements Manager.
func (f *FixedFraction) CalculateDrawdown(equity types.EquityCurve) float64 {
	return MaxDrawdown(equity.Values)
}

// RiskMetrics implements Manager.
func (f *FixedFraction) RiskMetrics() map[types.Pair]MetricRecord {
	return map[types.Pair]MetricRecord{}
}

// MaxDrawdown returns the largest fractional decline from a running peak.
func MaxDrawdown(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	peak := values[0]
	maxDD := 0.0

	for _, v := range values {
		if v > peak {
			peak = v
		}

		if peak > 0 {
			dd := (peak - v) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
	}

	return maxDD
}
