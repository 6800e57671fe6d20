// Package report aggregates a finished backtest run into summary metrics and
// writes them to pluggable sinks.
package report

import (
	"math"
	"sort"

	"github.com/statarb-lab/pairtrade/internal/engine"
	"github.com/statarb-lab/pairtrade/internal/risk"
	"github.com/statarb-lab/pairtrade/internal/types"
	"github.com/statarb-lab/pairtrade/pkg/errors"
)

// tradingDaysPerYear annualizes daily return statistics.
const tradingDaysPerYear = 252

// OverallMetrics summarizes the run at the portfolio level.
type OverallMetrics struct {
	InitialCapital   float64 `json:"initial_capital" yaml:"initial_capital"`
	FinalValue       float64 `json:"final_value" yaml:"final_value"`
	TotalReturn      float64 `json:"total_return" yaml:"total_return"`
	AnnualizedReturn float64 `json:"annualized_return" yaml:"annualized_return"`
	Volatility       float64 `json:"volatility" yaml:"volatility"`
	SharpeRatio      float64 `json:"sharpe_ratio" yaml:"sharpe_ratio"`
	MaxDrawdown      float64 `json:"max_drawdown" yaml:"max_drawdown"`
	// WinRate is winning exits over total exits.
	WinRate     float64 `json:"win_rate" yaml:"win_rate"`
	TotalTrades int     `json:"total_trades" yaml:"total_trades"`
	TotalExits  int     `json:"total_exits" yaml:"total_exits"`
	Halted      bool    `json:"halted" yaml:"halted"`
	HaltReason  string  `json:"halt_reason,omitempty" yaml:"halt_reason,omitempty"`
}

// PairSummary rolls up the closed round trips of one pair.
type PairSummary struct {
	Pair              string  `json:"pair" yaml:"pair"`
	RoundTrips        int     `json:"round_trips" yaml:"round_trips"`
	TotalPnL          float64 `json:"total_pnl" yaml:"total_pnl"`
	MeanReturnPct     float64 `json:"mean_return_pct" yaml:"mean_return_pct"`
	WinRate           float64 `json:"win_rate" yaml:"win_rate"`
	MeanHoldingDays   float64 `json:"mean_holding_days" yaml:"mean_holding_days"`
	MeanConfidence    float64 `json:"mean_confidence" yaml:"mean_confidence"`
	BestTradePnL      float64 `json:"best_trade_pnl" yaml:"best_trade_pnl"`
	WorstTradePnL     float64 `json:"worst_trade_pnl" yaml:"worst_trade_pnl"`
	LastExitReason    string  `json:"last_exit_reason" yaml:"last_exit_reason"`
	StillOpenAtFinish bool    `json:"still_open_at_finish" yaml:"still_open_at_finish"`
}

// Report is the three-section run summary.
type Report struct {
	RunID           string                       `json:"run_id" yaml:"run_id"`
	OverallMetrics  OverallMetrics               `json:"overall_metrics" yaml:"overall_metrics"`
	PairPerformance []PairSummary                `json:"pair_performance" yaml:"pair_performance"`
	RiskAnalysis    map[string]risk.MetricRecord `json:"risk_analysis" yaml:"risk_analysis"`
}

// Builder turns a run result into a Report. The risk manager supplies the
// drawdown calculation and the accumulated per-pair metrics.
type Builder struct {
	manager risk.Manager
}

// NewBuilder creates a Builder over the given risk manager.
func NewBuilder(manager risk.Manager) *Builder {
	return &Builder{manager: manager}
}

// Build aggregates the result. Statistics use daily equity returns annualized
// over 252 trading days; volatility is the sample standard deviation.
func (b *Builder) Build(result *engine.Result) (*Report, error) {
	if result == nil {
		return nil, errors.New(errors.ErrCodeReportBuildFailed, "result must not be nil")
	}

	report := &Report{
		RunID:           result.RunID,
		OverallMetrics:  b.overall(result),
		PairPerformance: b.pairs(result),
		RiskAnalysis:    b.riskAnalysis(),
	}

	return report, nil
}

func (b *Builder) overall(result *engine.Result) OverallMetrics {
	metrics := OverallMetrics{
		InitialCapital: result.InitialCapital,
		FinalValue:     result.FinalValue,
		TotalTrades:    len(result.Trades),
		Halted:         result.Halted,
		HaltReason:     result.HaltReason,
	}

	if result.InitialCapital != 0 {
		metrics.TotalReturn = (result.FinalValue - result.InitialCapital) / result.InitialCapital
	}

	returns := result.Equity.Returns()
	mean := meanOf(returns)
	std := sampleStd(returns, mean)

	metrics.AnnualizedReturn = mean * tradingDaysPerYear
	metrics.Volatility = std * math.Sqrt(tradingDaysPerYear)

	if metrics.Volatility != 0 {
		metrics.SharpeRatio = metrics.AnnualizedReturn / metrics.Volatility
	}

	metrics.MaxDrawdown = b.manager.CalculateDrawdown(result.Equity)

	wins := 0
	exits := 0

	for _, trade := range result.Trades {
		if trade.Action != types.ActionExit {
			continue
		}

		exits++

		if trade.PnL > 0 {
			wins++
		}
	}

	metrics.TotalExits = exits
	if exits > 0 {
		metrics.WinRate = float64(wins) / float64(exits)
	}

	return metrics
}

func (b *Builder) pairs(result *engine.Result) []PairSummary {
	byPair := make(map[types.Pair][]types.PairPerformanceRecord)
	for _, record := range result.Performance {
		byPair[record.Pair] = append(byPair[record.Pair], record)
	}

	pairs := make([]types.Pair, 0, len(byPair))
	for pair := range byPair {
		pairs = append(pairs, pair)
	}

	types.SortPairs(pairs)

	summaries := make([]PairSummary, 0, len(pairs))

	for _, pair := range pairs {
		records := byPair[pair]

		summary := PairSummary{
			Pair:          pair.String(),
			RoundTrips:    len(records),
			BestTradePnL:  math.Inf(-1),
			WorstTradePnL: math.Inf(1),
		}

		wins := 0

		var returnSum, holdingSum, confidenceSum float64

		for _, record := range records {
			summary.TotalPnL += record.PnL
			returnSum += record.ReturnPct
			holdingSum += float64(record.HoldingPeriodDays)
			confidenceSum += record.Confidence
			summary.LastExitReason = record.ExitReason

			if record.PnL > 0 {
				wins++
			}

			if record.PnL > summary.BestTradePnL {
				summary.BestTradePnL = record.PnL
			}

			if record.PnL < summary.WorstTradePnL {
				summary.WorstTradePnL = record.PnL
			}
		}

		n := float64(len(records))
		summary.MeanReturnPct = returnSum / n
		summary.WinRate = float64(wins) / n
		summary.MeanHoldingDays = holdingSum / n
		summary.MeanConfidence = confidenceSum / n

		if _, open := result.OpenPositions[pair]; open {
			summary.StillOpenAtFinish = true
		}

		summaries = append(summaries, summary)
	}

	// Pairs that finished the run open without ever closing still deserve a
	// row, otherwise they vanish from the report.
	openOnly := make([]types.Pair, 0)

	for pair := range result.OpenPositions {
		if _, closed := byPair[pair]; !closed {
			openOnly = append(openOnly, pair)
		}
	}

	types.SortPairs(openOnly)

	for _, pair := range openOnly {
		summaries = append(summaries, PairSummary{
			Pair:              pair.String(),
			StillOpenAtFinish: true,
		})
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Pair < summaries[j].Pair
	})

	return summaries
}

func (b *Builder) riskAnalysis() map[string]risk.MetricRecord {
	metrics := b.manager.RiskMetrics()

	out := make(map[string]risk.MetricRecord, len(metrics))
	for pair, record := range metrics {
		out[pair.String()] = record
	}

	return out
}

func meanOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	return sum / float64(len(values))
}

// sampleStd is the n-1 standard deviation.
func sampleStd(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}

	variance := 0.0
	for _, v := range values {
		d := v - mean
		variance += d * d
	}

	return math.Sqrt(variance / float64(len(values)-1))
}
