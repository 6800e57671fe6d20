package types

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
)

type SignalTestSuite struct {
	suite.Suite
}

func TestSignalSuite(t *testing.T) {
	suite.Run(t, new(SignalTestSuite))
}

func (suite *SignalTestSuite) TestSeriesAt() {
	day1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	series := Series{
		{Date: day1, Value: 1},
		{Date: day2, Value: -1},
	}

	value, ok := series.At(day2)
	suite.True(ok)
	suite.Equal(-1.0, value)

	_, ok = series.At(day1.AddDate(0, 0, 5))
	suite.False(ok)
}

func (suite *SignalTestSuite) TestSeriesLast() {
	_, ok := Series{}.Last()
	suite.False(ok)

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	point, ok := Series{{Date: day, Value: 2}}.Last()
	suite.True(ok)
	suite.Equal(2.0, point.Value)
}

func (suite *SignalTestSuite) TestShapeTags() {
	wide := WideSignals(map[Pair]Series{MustPair("A", "B"): {}})
	suite.Equal(ShapeWide, wide.Shape())
	suite.Len(wide.Wide(), 1)

	long := LongSignals([]LongRow{{Pair: "A/B", Signal: 1, Confidence: optional.Some(0.9)}})
	suite.Equal(ShapeLong, long.Shape())
	suite.Len(long.Long(), 1)

	mapped := MappedSignals(map[Pair]Series{MustPair("A", "B"): {}})
	suite.Equal(ShapeMapped, mapped.Shape())
	suite.Len(mapped.Mapped(), 1)
}

func (suite *SignalTestSuite) TestEquityCurve() {
	curve := EquityCurve{}

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	curve.Append(day, 100)
	curve.Append(day.AddDate(0, 0, 1), 110)
	curve.Append(day.AddDate(0, 0, 2), 99)

	first, ok := curve.First()
	suite.True(ok)
	suite.Equal(100.0, first)

	last, ok := curve.Last()
	suite.True(ok)
	suite.Equal(99.0, last)

	returns := curve.Returns()
	suite.Require().Len(returns, 2)
	suite.InDelta(0.1, returns[0], 1e-12)
	suite.InDelta(-0.1, returns[1], 1e-12)

	clone := curve.Clone()
	clone.Values[0] = 0
	suite.Equal(100.0, curve.Values[0])
}
