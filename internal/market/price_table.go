package market

import (
	"math"
	"sort"
	"time"

	"github.com/statarb-lab/pairtrade/pkg/errors"
)

// PriceTable is a time-indexed, column-indexed numeric matrix with one column
// per tradable symbol. After construction the time index is strictly
// increasing, the column set is stable, and no cell is NaN: interior and
// leading gaps are removed by forward-fill then backward-fill.
//
// The table is immutable once built and safe to share read-only.
type PriceTable struct {
	dates   []time.Time
	symbols []string
	index   map[string]int
	// rows[t][s] is the value of symbols[s] at dates[t].
	rows [][]float64
}

// NewPriceTable builds a PriceTable from raw per-symbol series. Gaps are
// represented as NaN in the input and removed by forward-fill then
// backward-fill. Fails when the input is empty, has fewer than 2 symbols, the
// time index is not strictly increasing, or a column has no value at all.
func NewPriceTable(dates []time.Time, series map[string][]float64) (*PriceTable, error) {
	if len(dates) == 0 {
		return nil, errors.New(errors.ErrCodeEmptyPriceTable, "price table has no rows")
	}

	if len(series) < 2 {
		return nil, errors.Newf(errors.ErrCodeInsufficientSymbols, "price table needs at least 2 symbols, got %d", len(series))
	}

	for i := 1; i < len(dates); i++ {
		if !dates[i].After(dates[i-1]) {
			return nil, errors.Newf(errors.ErrCodeInvalidTimeIndex, "time index not strictly increasing at position %d (%s)", i, dates[i])
		}
	}

	symbols := make([]string, 0, len(series))
	for symbol := range series {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	index := make(map[string]int, len(symbols))
	for i, symbol := range symbols {
		index[symbol] = i
	}

	rows := make([][]float64, len(dates))
	for t := range rows {
		rows[t] = make([]float64, len(symbols))
	}

	for s, symbol := range symbols {
		column := series[symbol]
		if len(column) != len(dates) {
			return nil, errors.Newf(errors.ErrCodeLengthMismatch, "symbol %s has %d rows, index has %d", symbol, len(column), len(dates))
		}

		filled, err := fillColumn(symbol, column)
		if err != nil {
			return nil, err
		}

		for t := range filled {
			rows[t][s] = filled[t]
		}
	}

	table := &PriceTable{
		dates:   dates,
		symbols: symbols,
		index:   index,
		rows:    rows,
	}

	return table, nil
}

// fillColumn applies forward-fill then backward-fill to one column.
func fillColumn(symbol string, column []float64) ([]float64, error) {
	filled := make([]float64, len(column))
	copy(filled, column)

	last := math.NaN()

	for i := range filled {
		if math.IsNaN(filled[i]) {
			filled[i] = last
		} else {
			last = filled[i]
		}
	}

	next := math.NaN()

	for i := len(filled) - 1; i >= 0; i-- {
		if math.IsNaN(filled[i]) {
			filled[i] = next
		} else {
			next = filled[i]
		}
	}

	if math.IsNaN(filled[0]) {
		return nil, errors.Newf(errors.ErrCodeColumnAllMissing, "symbol %s has no values", symbol)
	}

	return filled, nil
}

// Len returns the number of timesteps.
func (t *PriceTable) Len() int {
	return len(t.dates)
}

// Dates returns the time index. Callers must not modify it.
func (t *PriceTable) Dates() []time.Time {
	return t.dates
}

// DateAt returns the date of timestep i.
func (t *PriceTable) DateAt(i int) time.Time {
	return t.dates[i]
}

// Symbols returns the sorted symbol set. Callers must not modify it.
func (t *PriceTable) Symbols() []string {
	return t.symbols
}

// HasSymbol reports whether the table carries a column for symbol.
func (t *PriceTable) HasSymbol(symbol string) bool {
	_, ok := t.index[symbol]

	return ok
}

// At returns the value of symbol at timestep i.
func (t *PriceTable) At(i int, symbol string) (float64, error) {
	s, ok := t.index[symbol]
	if !ok {
		return 0, errors.Newf(errors.ErrCodeSymbolNotFound, "symbol %s not in price table", symbol)
	}

	if i < 0 || i >= len(t.rows) {
		return 0, errors.Newf(errors.ErrCodeDateNotFound, "row %d out of range [0,%d)", i, len(t.rows))
	}

	return t.rows[i][s], nil
}

// Row returns the full price slice at timestep i as a symbol-keyed map.
func (t *PriceTable) Row(i int) map[string]float64 {
	out := make(map[string]float64, len(t.symbols))
	for s, symbol := range t.symbols {
		out[symbol] = t.rows[i][s]
	}

	return out
}

// Column returns the full series of one symbol.
func (t *PriceTable) Column(symbol string) ([]float64, error) {
	s, ok := t.index[symbol]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeSymbolNotFound, "symbol %s not in price table", symbol)
	}

	out := make([]float64, len(t.rows))
	for i := range t.rows {
		out[i] = t.rows[i][s]
	}

	return out, nil
}

// Slice returns a read-only prefix view covering timesteps [0, end]. The
// view shares storage with the parent table.
func (t *PriceTable) Slice(end int) *PriceTable {
	if end >= len(t.dates) {
		end = len(t.dates) - 1
	}

	return &PriceTable{
		dates:   t.dates[:end+1],
		symbols: t.symbols,
		index:   t.index,
		rows:    t.rows[:end+1],
	}
}

// PctChange derives the percentage-change table. The first row, undefined for
// a percentage change, is backward-filled from the second, mirroring the
// fill-after-derive behavior applied at construction.
func (t *PriceTable) PctChange() *PriceTable {
	series := make(map[string][]float64, len(t.symbols))

	for s, symbol := range t.symbols {
		column := make([]float64, len(t.rows))
		column[0] = math.NaN()

		for i := 1; i < len(t.rows); i++ {
			prev := t.rows[i-1][s]
			if prev == 0 {
				column[i] = math.NaN()
				continue
			}

			column[i] = (t.rows[i][s] - prev) / prev
		}

		series[symbol] = column
	}

	// Construction cannot fail here: the index and symbol set were already
	// validated, and every column has at least one finite value or the parent
	// table would not exist. A single-row table is the one exception.
	derived, err := NewPriceTable(t.dates, series)
	if err != nil {
		derived = &PriceTable{
			dates:   t.dates,
			symbols: t.symbols,
			index:   t.index,
			rows:    zeroRows(len(t.dates), len(t.symbols)),
		}
	}

	return derived
}

func zeroRows(n, m int) [][]float64 {
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, m)
	}

	return rows
}

// CorrMatrix is a symmetric correlation matrix over the table's columns.
type CorrMatrix struct {
	symbols []string
	index   map[string]int
	values  [][]float64
}

// At returns the correlation between two symbols, zero when either is absent.
func (m *CorrMatrix) At(a, b string) float64 {
	i, ok := m.index[a]
	if !ok {
		return 0
	}

	j, ok := m.index[b]
	if !ok {
		return 0
	}

	return m.values[i][j]
}

// Symbols returns the symbol order of the matrix.
func (m *CorrMatrix) Symbols() []string {
	return m.symbols
}

// Correlation computes the Pearson correlation matrix over the table's
// columns. Columns with zero variance correlate at zero with everything and
// 1 with themselves.
func (t *PriceTable) Correlation() *CorrMatrix {
	n := len(t.symbols)

	means := make([]float64, n)

	for s := range t.symbols {
		sum := 0.0
		for i := range t.rows {
			sum += t.rows[i][s]
		}

		means[s] = sum / float64(len(t.rows))
	}

	values := make([][]float64, n)
	for i := range values {
		values[i] = make([]float64, n)
	}

	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			var cov, varA, varB float64

			for i := range t.rows {
				da := t.rows[i][a] - means[a]
				db := t.rows[i][b] - means[b]
				cov += da * db
				varA += da * da
				varB += db * db
			}

			var corr float64

			switch {
			case a == b:
				corr = 1
			case varA == 0 || varB == 0:
				corr = 0
			default:
				corr = cov / math.Sqrt(varA*varB)
			}

			values[a][b] = corr
			values[b][a] = corr
		}
	}

	return &CorrMatrix{
		symbols: t.symbols,
		index:   t.index,
		values:  values,
	}
}
