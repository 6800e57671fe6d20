package features

import (
	"time"

	"github.com/statarb-lab/pairtrade/internal/market"
)

// Frame is a time-indexed feature matrix. Columns keep insertion order so
// that generated frames are reproducible run to run.
type Frame struct {
	dates   []time.Time
	order   []string
	columns map[string][]float64
}

// NewFrame creates an empty frame over the given time index.
func NewFrame(dates []time.Time) Frame {
	return Frame{
		dates:   dates,
		order:   nil,
		columns: make(map[string][]float64),
	}
}

// FrameFromPrices wraps a raw price slice as a feature frame. Used as the
// fallback when feature generation fails.
func FrameFromPrices(prices *market.PriceTable) Frame {
	frame := NewFrame(prices.Dates())

	for _, symbol := range prices.Symbols() {
		column, err := prices.Column(symbol)
		if err != nil {
			continue
		}

		frame.AddColumn(symbol, column)
	}

	return frame
}

// AddColumn appends a named column. A column with an existing name is
// replaced in place, keeping its position.
func (f *Frame) AddColumn(name string, values []float64) {
	if _, ok := f.columns[name]; !ok {
		f.order = append(f.order, name)
	}

	f.columns[name] = values
}

// Dates returns the frame's time index.
func (f Frame) Dates() []time.Time {
	return f.dates
}

// Columns returns column names in insertion order.
func (f Frame) Columns() []string {
	return f.order
}

// Column returns a column by name.
func (f Frame) Column(name string) ([]float64, bool) {
	column, ok := f.columns[name]

	return column, ok
}

// Len returns the number of rows.
func (f Frame) Len() int {
	return len(f.dates)
}

// Empty reports whether the frame has no rows or no columns.
func (f Frame) Empty() bool {
	return len(f.dates) == 0 || len(f.order) == 0
}

// Snapshot returns the last row as a column-keyed map. This is what gets
// attached to opened positions.
func (f Frame) Snapshot() map[string]float64 {
	if f.Empty() {
		return map[string]float64{}
	}

	last := len(f.dates) - 1

	out := make(map[string]float64, len(f.order))

	for _, name := range f.order {
		column := f.columns[name]
		if last < len(column) {
			out[name] = column[last]
		}
	}

	return out
}
