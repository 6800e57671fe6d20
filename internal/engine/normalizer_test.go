package engine

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/statarb-lab/pairtrade/internal/logger"
	"github.com/statarb-lab/pairtrade/internal/types"
	"github.com/stretchr/testify/suite"
)

type NormalizerTestSuite struct {
	suite.Suite
	normalizer *signalNormalizer
	date       time.Time
}

func TestNormalizerSuite(t *testing.T) {
	suite.Run(t, new(NormalizerTestSuite))
}

func (suite *NormalizerTestSuite) SetupTest() {
	universe := []types.Pair{
		types.MustPair("AAA", "BBB"),
		types.MustPair("CCC", "DDD"),
		types.MustPair("AAA", "XXX"),
	}

	// XXX has no price column.
	symbols := []string{"AAA", "BBB", "CCC", "DDD"}

	suite.normalizer = newSignalNormalizer(universe, symbols, logger.NewNopLogger())
	suite.date = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
}

func (suite *NormalizerTestSuite) TestWideShape() {
	set := types.WideSignals(map[types.Pair]types.Series{
		types.MustPair("CCC", "DDD"): {{Date: suite.date, Value: -1}},
		types.MustPair("AAA", "BBB"): {{Date: suite.date, Value: 1}},
	})

	signals := suite.normalizer.Normalize(set, suite.date, 1)
	suite.Require().Len(signals, 2)

	// Sorted by canonical pair key.
	suite.Equal("AAA/BBB", signals[0].Pair.String())
	suite.Equal(1.0, signals[0].Value)
	suite.Equal(1.0, signals[0].Confidence)
	suite.Equal("CCC/DDD", signals[1].Pair.String())
	suite.Equal(-1.0, signals[1].Value)
}

func (suite *NormalizerTestSuite) TestWideShapeSkipsOtherDates() {
	set := types.WideSignals(map[types.Pair]types.Series{
		types.MustPair("AAA", "BBB"): {{Date: suite.date.AddDate(0, 0, -1), Value: 1}},
	})

	signals := suite.normalizer.Normalize(set, suite.date, 1)
	suite.Empty(signals)
}

func (suite *NormalizerTestSuite) TestLongShape() {
	set := types.LongSignals([]types.LongRow{
		{Pair: "AAA/BBB", Signal: 1, Confidence: optional.Some(0.7)},
		{Pair: "CCC/DDD", Signal: -1},
		{Pair: "EEE/FFF", Signal: 1},
		{Pair: "garbage", Signal: 1},
	})

	signals := suite.normalizer.Normalize(set, suite.date, 1)
	suite.Require().Len(signals, 2)

	suite.Equal(0.7, signals[0].Confidence)

	// Absent confidence defaults to full confidence.
	suite.Equal(1.0, signals[1].Confidence)
}

func (suite *NormalizerTestSuite) TestLongShapeLastRowWins() {
	set := types.LongSignals([]types.LongRow{
		{Pair: "AAA/BBB", Signal: 1, Confidence: optional.Some(0.5)},
		{Pair: "AAA/BBB", Signal: -1, Confidence: optional.Some(0.9)},
	})

	signals := suite.normalizer.Normalize(set, suite.date, 1)
	suite.Require().Len(signals, 1)
	suite.Equal(-1.0, signals[0].Value)
	suite.Equal(0.9, signals[0].Confidence)
}

func (suite *NormalizerTestSuite) TestMissingPriceColumnSkipped() {
	set := types.LongSignals([]types.LongRow{
		{Pair: "AAA/XXX", Signal: 1},
	})

	signals := suite.normalizer.Normalize(set, suite.date, 1)
	suite.Empty(signals)
}

func (suite *NormalizerTestSuite) TestWideShapeCarriesBaseConfidence() {
	set := types.WideSignals(map[types.Pair]types.Series{
		types.MustPair("AAA", "BBB"): {{Date: suite.date, Value: 1}},
	})

	signals := suite.normalizer.Normalize(set, suite.date, 0.6)
	suite.Require().Len(signals, 1)
	suite.Equal(0.6, signals[0].Confidence)
}

func (suite *NormalizerTestSuite) TestLongShapeIgnoresBaseConfidence() {
	set := types.LongSignals([]types.LongRow{
		{Pair: "AAA/BBB", Signal: 1},
	})

	// Long rows default per row, not from the frame.
	signals := suite.normalizer.Normalize(set, suite.date, 0.6)
	suite.Require().Len(signals, 1)
	suite.Equal(1.0, signals[0].Confidence)
}

func (suite *NormalizerTestSuite) TestMappedShape() {
	set := types.MappedSignals(map[types.Pair]types.Series{
		types.MustPair("AAA", "BBB"): {
			{Date: suite.date.AddDate(0, 0, -1), Value: 1},
			{Date: suite.date, Value: 0},
		},
	})

	signals := suite.normalizer.Normalize(set, suite.date, 1)
	suite.Require().Len(signals, 1)
	suite.Equal(0.0, signals[0].Value)
}
