package engine

import (
	"github.com/statarb-lab/pairtrade/internal/market"
	"github.com/statarb-lab/pairtrade/internal/risk"
	"github.com/statarb-lab/pairtrade/internal/types"
)

// riskGate is the engine's single seam to the risk manager. Keeping the calls
// here keeps the trading loop free of risk-policy details.
type riskGate struct {
	manager risk.Manager
}

// AllowEntry applies the confidence gate.
func (g *riskGate) AllowEntry(confidence float64) bool {
	return confidence >= g.manager.MinModelConfidence()
}

// Size asks the manager for an entry size.
func (g *riskGate) Size(portfolioValue float64, pair types.Pair, returns *market.PriceTable, confidence float64, corr *market.CorrMatrix) float64 {
	return g.manager.CalculatePositionSize(portfolioValue, pair, returns, confidence, corr)
}

// UpdateMetrics refreshes the manager's per-pair metrics.
func (g *riskGate) UpdateMetrics(pair types.Pair, returns *market.PriceTable, open map[types.Pair]types.Position, confidence float64) {
	g.manager.UpdateRiskMetrics(pair, returns, open, confidence)
}

// CheckLimits evaluates portfolio-level limits.
func (g *riskGate) CheckLimits(equity types.EquityCurve, open map[types.Pair]types.Position, currentPrices map[string]float64) (bool, string) {
	return g.manager.CheckRiskLimits(equity, open, currentPrices)
}
