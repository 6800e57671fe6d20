package market

import (
	"math"
	"testing"
	"time"

	"github.com/statarb-lab/pairtrade/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type PriceTableTestSuite struct {
	suite.Suite
	dates []time.Time
}

func TestPriceTableSuite(t *testing.T) {
	suite.Run(t, new(PriceTableTestSuite))
}

func (suite *PriceTableTestSuite) SetupSuite() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	suite.dates = make([]time.Time, 5)
	for i := range suite.dates {
		suite.dates[i] = start.AddDate(0, 0, i)
	}
}

func (suite *PriceTableTestSuite) TestGapFilling() {
	nan := math.NaN()

	table, err := NewPriceTable(suite.dates, map[string][]float64{
		"A": {nan, 10, nan, 12, nan},
		"B": {20, nan, nan, 23, 24},
	})
	suite.Require().NoError(err)

	// Leading gap backward-fills, interior and trailing gaps forward-fill.
	column, err := table.Column("A")
	suite.Require().NoError(err)
	suite.Equal([]float64{10, 10, 10, 12, 12}, column)

	column, err = table.Column("B")
	suite.Require().NoError(err)
	suite.Equal([]float64{20, 20, 20, 23, 24}, column)
}

func (suite *PriceTableTestSuite) TestValidation() {
	_, err := NewPriceTable(nil, map[string][]float64{"A": {}, "B": {}})
	suite.True(errors.HasCode(err, errors.ErrCodeEmptyPriceTable))

	_, err = NewPriceTable(suite.dates, map[string][]float64{"A": {1, 2, 3, 4, 5}})
	suite.True(errors.HasCode(err, errors.ErrCodeInsufficientSymbols))

	_, err = NewPriceTable(suite.dates, map[string][]float64{
		"A": {1, 2, 3, 4, 5},
		"B": {1, 2},
	})
	suite.True(errors.HasCode(err, errors.ErrCodeLengthMismatch))

	nan := math.NaN()
	_, err = NewPriceTable(suite.dates, map[string][]float64{
		"A": {1, 2, 3, 4, 5},
		"B": {nan, nan, nan, nan, nan},
	})
	suite.True(errors.HasCode(err, errors.ErrCodeColumnAllMissing))

	unsorted := []time.Time{suite.dates[1], suite.dates[0]}
	_, err = NewPriceTable(unsorted, map[string][]float64{
		"A": {1, 2},
		"B": {1, 2},
	})
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidTimeIndex))
}

func (suite *PriceTableTestSuite) TestSymbolsSorted() {
	table, err := NewPriceTable(suite.dates, map[string][]float64{
		"ZZZ": {1, 2, 3, 4, 5},
		"AAA": {1, 2, 3, 4, 5},
		"MMM": {1, 2, 3, 4, 5},
	})
	suite.Require().NoError(err)

	suite.Equal([]string{"AAA", "MMM", "ZZZ"}, table.Symbols())
}

func (suite *PriceTableTestSuite) TestSlice() {
	table, err := NewPriceTable(suite.dates, map[string][]float64{
		"A": {1, 2, 3, 4, 5},
		"B": {5, 4, 3, 2, 1},
	})
	suite.Require().NoError(err)

	view := table.Slice(2)
	suite.Equal(3, view.Len())
	suite.Equal(suite.dates[2], view.DateAt(2))

	// Clamped to the full table.
	suite.Equal(5, table.Slice(99).Len())
}

func (suite *PriceTableTestSuite) TestPctChange() {
	table, err := NewPriceTable(suite.dates, map[string][]float64{
		"A": {100, 110, 99, 99, 198},
		"B": {50, 50, 50, 50, 50},
	})
	suite.Require().NoError(err)

	returns := table.PctChange()

	column, err := returns.Column("A")
	suite.Require().NoError(err)

	// First row backward-fills from the second.
	suite.InDelta(0.1, column[0], 1e-12)
	suite.InDelta(0.1, column[1], 1e-12)
	suite.InDelta(-0.1, column[2], 1e-12)
	suite.InDelta(0.0, column[3], 1e-12)
	suite.InDelta(1.0, column[4], 1e-12)
}

func (suite *PriceTableTestSuite) TestPctChangeSingleRow() {
	table, err := NewPriceTable(suite.dates[:1], map[string][]float64{
		"A": {100},
		"B": {50},
	})
	suite.Require().NoError(err)

	// No change is defined over one row; the derived table is all zeros.
	returns := table.PctChange()
	suite.Equal(1, returns.Len())
	suite.Equal([]string{"A", "B"}, returns.Symbols())

	for _, symbol := range returns.Symbols() {
		value, err := returns.At(0, symbol)
		suite.Require().NoError(err)
		suite.Equal(0.0, value)
	}
}

func (suite *PriceTableTestSuite) TestCorrelation() {
	table, err := NewPriceTable(suite.dates, map[string][]float64{
		"A": {1, 2, 3, 4, 5},
		"B": {2, 4, 6, 8, 10},
		"C": {5, 4, 3, 2, 1},
		"D": {7, 7, 7, 7, 7},
	})
	suite.Require().NoError(err)

	corr := table.Correlation()

	suite.InDelta(1.0, corr.At("A", "A"), 1e-12)
	suite.InDelta(1.0, corr.At("A", "B"), 1e-12)
	suite.InDelta(-1.0, corr.At("A", "C"), 1e-12)

	// Zero variance correlates at zero with everything else.
	suite.Equal(0.0, corr.At("A", "D"))
	suite.Equal(1.0, corr.At("D", "D"))

	// Unknown symbols resolve to zero.
	suite.Equal(0.0, corr.At("A", "E"))
}

func (suite *PriceTableTestSuite) TestAtAndRow() {
	table, err := NewPriceTable(suite.dates, map[string][]float64{
		"A": {1, 2, 3, 4, 5},
		"B": {5, 4, 3, 2, 1},
	})
	suite.Require().NoError(err)

	value, err := table.At(3, "B")
	suite.Require().NoError(err)
	suite.Equal(2.0, value)

	_, err = table.At(0, "ZZZ")
	suite.True(errors.HasCode(err, errors.ErrCodeSymbolNotFound))

	row := table.Row(0)
	suite.Equal(map[string]float64{"A": 1, "B": 5}, row)
}
