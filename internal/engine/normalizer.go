package engine

import (
	"sort"
	"time"

	"github.com/statarb-lab/pairtrade/internal/logger"
	"github.com/statarb-lab/pairtrade/internal/types"
	"go.uber.org/zap"
)

// NormalizedSignal is the single shape the trading loop consumes: one pair,
// one signal value, one confidence.
type NormalizedSignal struct {
	Pair       types.Pair
	Value      float64
	Confidence float64
}

// signalNormalizer folds the three strategy output shapes into a canonical
// per-pair slice. Shape dispatch happens here and nowhere else.
type signalNormalizer struct {
	universe map[types.Pair]bool
	prices   map[string]bool
	log      *logger.Logger
}

func newSignalNormalizer(universe []types.Pair, symbols []string, log *logger.Logger) *signalNormalizer {
	pairs := make(map[types.Pair]bool, len(universe))
	for _, pair := range universe {
		pairs[pair] = true
	}

	priced := make(map[string]bool, len(symbols))
	for _, symbol := range symbols {
		priced[symbol] = true
	}

	return &signalNormalizer{
		universe: pairs,
		prices:   priced,
		log:      log,
	}
}

// Normalize resolves the signal set into per-pair signals for the current
// date, sorted by canonical pair key. Pairs with a leg missing from the price
// universe are skipped with a warning. Long rows outside the declared universe
// are discarded; duplicate long rows resolve last-wins. Wide and mapped shapes
// carry no per-row confidence, so they take baseConfidence (the latest value
// of the feature frame's confidence column when one exists, 1 otherwise);
// long rows default per row.
func (n *signalNormalizer) Normalize(set types.SignalSet, currentDate time.Time, baseConfidence float64) []NormalizedSignal {
	byPair := make(map[types.Pair]NormalizedSignal)

	switch set.Shape() {
	case types.ShapeWide:
		n.collectSeries(byPair, set.Wide(), currentDate, baseConfidence)
	case types.ShapeMapped:
		n.collectSeries(byPair, set.Mapped(), currentDate, baseConfidence)
	case types.ShapeLong:
		for _, row := range set.Long() {
			pair, err := types.ParsePair(row.Pair)
			if err != nil {
				n.log.Warn("discarding malformed signal row",
					zap.String("pair", row.Pair),
					zap.Error(err),
				)

				continue
			}

			if !n.universe[pair] {
				continue
			}

			if !n.tradable(pair) {
				continue
			}

			byPair[pair] = NormalizedSignal{
				Pair:       pair,
				Value:      row.Signal,
				Confidence: row.Confidence.TakeOr(1),
			}
		}
	}

	out := make([]NormalizedSignal, 0, len(byPair))
	for _, signal := range byPair {
		out = append(out, signal)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Pair.Key() < out[j].Pair.Key()
	})

	return out
}

func (n *signalNormalizer) collectSeries(byPair map[types.Pair]NormalizedSignal, series map[types.Pair]types.Series, currentDate time.Time, confidence float64) {
	for pair, s := range series {
		if !n.tradable(pair) {
			continue
		}

		value, ok := s.At(currentDate)
		if !ok {
			continue
		}

		byPair[pair] = NormalizedSignal{
			Pair:       pair,
			Value:      value,
			Confidence: confidence,
		}
	}
}

// tradable reports whether both legs have price columns. Logs once per call
// for the offending pair.
func (n *signalNormalizer) tradable(pair types.Pair) bool {
	first, second := pair.Symbols()

	if !n.prices[first] || !n.prices[second] {
		n.log.Warn("skipping pair with missing price column",
			zap.String("pair", pair.String()),
		)

		return false
	}

	return true
}
