package strategy

import (
	"math"

	"github.com/moznion/go-optional"
	"github.com/statarb-lab/pairtrade/internal/market"
	"github.com/statarb-lab/pairtrade/internal/types"
	"github.com/statarb-lab/pairtrade/pkg/errors"
)

// SpreadZScore is the reference mean-reversion strategy: it trades the
// z-score of each pair's price spread over a rolling lookback. A spread
// stretched beyond the entry threshold is faded (short the spread when rich,
// long when cheap); inside the exit threshold the signal flattens to zero.
type SpreadZScore struct {
	pairs    []types.Pair
	lookback int
	entry    float64
	exit     float64
	maxSize  float64
}

// NewSpreadZScore builds the strategy for the given universe. lookback is the
// rolling window in timesteps; entry and exit are z-score thresholds with
// entry > exit >= 0.
func NewSpreadZScore(pairs []types.Pair, lookback int, entry, exit, maxSize float64) (*SpreadZScore, error) {
	if len(pairs) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "zscore strategy needs at least one pair")
	}

	if lookback < 2 {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "zscore lookback must be at least 2, got %d", lookback)
	}

	if entry <= exit || exit < 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "zscore thresholds must satisfy entry > exit >= 0, got entry=%v exit=%v", entry, exit)
	}

	if maxSize <= 0 || maxSize > 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "max position size must be in (0,1], got %v", maxSize)
	}

	sorted := make([]types.Pair, len(pairs))
	copy(sorted, pairs)
	types.SortPairs(sorted)

	return &SpreadZScore{
		pairs:    sorted,
		lookback: lookback,
		entry:    entry,
		exit:     exit,
		maxSize:  maxSize,
	}, nil
}

// Name implements Strategy.
func (s *SpreadZScore) Name() string {
	return "spread-zscore"
}

// Pairs implements Strategy.
func (s *SpreadZScore) Pairs() []types.Pair {
	return s.pairs
}

// MaxPositionSize implements Strategy.
func (s *SpreadZScore) MaxPositionSize() float64 {
	return s.maxSize
}

// GenerateSignals implements Strategy. Output is the long shape: one row per
// pair with the current signal and a confidence scaled by how far the z-score
// sits beyond the entry threshold.
func (s *SpreadZScore) GenerateSignals(history *market.PriceTable) (types.SignalSet, error) {
	if history == nil || history.Len() < s.lookback {
		return types.SignalSet{}, errors.NewInsufficientDataErrorf(s.lookback, historyLen(history), "history",
			"need %d rows for zscore lookback", s.lookback)
	}

	rows := make([]types.LongRow, 0, len(s.pairs))

	for _, pair := range s.pairs {
		first, second := pair.Symbols()

		col1, err := history.Column(first)
		if err != nil {
			return types.SignalSet{}, err
		}

		col2, err := history.Column(second)
		if err != nil {
			return types.SignalSet{}, err
		}

		z, ok := spreadZScore(col1, col2, s.lookback)
		if !ok {
			// Flat spread over the window, nothing to fade.
			rows = append(rows, types.LongRow{Pair: pair.String(), Signal: 0})
			continue
		}

		signal, confidence := s.classify(z)

		rows = append(rows, types.LongRow{
			Pair:       pair.String(),
			Signal:     signal,
			Confidence: optional.Some(confidence),
		})
	}

	return types.LongSignals(rows), nil
}

// classify maps a z-score to a signal and confidence. Between exit and entry
// the signal is zero so existing positions close and nothing new opens.
func (s *SpreadZScore) classify(z float64) (float64, float64) {
	abs := math.Abs(z)

	if abs < s.entry {
		return 0, 1
	}

	confidence := math.Min(abs/(2*s.entry), 1)

	if z > 0 {
		return -1, confidence
	}

	return 1, confidence
}

// spreadZScore computes the z-score of the latest spread value against the
// trailing lookback window. Returns false when the window has zero variance.
func spreadZScore(col1, col2 []float64, lookback int) (float64, bool) {
	n := len(col1)

	start := n - lookback

	sum := 0.0
	for i := start; i < n; i++ {
		sum += col1[i] - col2[i]
	}

	mean := sum / float64(lookback)

	variance := 0.0
	for i := start; i < n; i++ {
		d := (col1[i] - col2[i]) - mean
		variance += d * d
	}

	variance /= float64(lookback)
	if variance == 0 {
		return 0, false
	}

	latest := col1[n-1] - col2[n-1]

	return (latest - mean) / math.Sqrt(variance), true
}

func historyLen(history *market.PriceTable) int {
	if history == nil {
		return 0
	}

	return history.Len()
}
