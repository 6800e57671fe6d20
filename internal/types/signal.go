package types

import (
	"time"

	"github.com/moznion/go-optional"
)

// SeriesPoint is one dated value of a per-pair signal series.
type SeriesPoint struct {
	Date  time.Time
	Value float64
}

// Series is a dated signal series, ordered by date ascending.
type Series []SeriesPoint

// At returns the value at exactly the given date.
func (s Series) At(date time.Time) (float64, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Date.Equal(date) {
			return s[i].Value, true
		}
	}

	return 0, false
}

// Last returns the most recent point of the series.
func (s Series) Last() (SeriesPoint, bool) {
	if len(s) == 0 {
		return SeriesPoint{}, false
	}

	return s[len(s)-1], true
}

// SignalShape identifies which of the three accepted strategy output
// representations a SignalSet carries.
type SignalShape int

const (
	// ShapeWide is a matrix keyed by pair with one signal series per pair.
	ShapeWide SignalShape = iota
	// ShapeLong is a row-per-prediction table carrying a predicted signal and
	// an optional confidence per pair.
	ShapeLong
	// ShapeMapped is a mapping of pair to a dated signal series.
	ShapeMapped
)

// LongRow is one row of the long signal shape.
type LongRow struct {
	// Pair is the "A/B" identifier emitted by the strategy.
	Pair string
	// Signal is the predicted signal value.
	Signal float64
	// Confidence is the model confidence, absent when the strategy does not
	// supply one (defaults to 1.0 during normalization).
	Confidence optional.Option[float64]
}

// SignalSet is the tagged variant over the three strategy output shapes. It
// is resolved exactly once by the SignalNormalizer; nothing else in the
// engine branches on the shape.
type SignalSet struct {
	shape  SignalShape
	wide   map[Pair]Series
	long   []LongRow
	mapped map[Pair]Series
}

// WideSignals wraps a pair-keyed signal matrix.
func WideSignals(signals map[Pair]Series) SignalSet {
	return SignalSet{shape: ShapeWide, wide: signals}
}

// LongSignals wraps a long prediction table.
func LongSignals(rows []LongRow) SignalSet {
	return SignalSet{shape: ShapeLong, long: rows}
}

// MappedSignals wraps a pair-to-series mapping.
func MappedSignals(signals map[Pair]Series) SignalSet {
	return SignalSet{shape: ShapeMapped, mapped: signals}
}

// Shape returns the variant tag.
func (s SignalSet) Shape() SignalShape {
	return s.shape
}

// Wide returns the wide matrix. Valid only for ShapeWide.
func (s SignalSet) Wide() map[Pair]Series {
	return s.wide
}

// Long returns the long rows. Valid only for ShapeLong.
func (s SignalSet) Long() []LongRow {
	return s.long
}

// Mapped returns the mapped series. Valid only for ShapeMapped.
func (s SignalSet) Mapped() map[Pair]Series {
	return s.mapped
}
