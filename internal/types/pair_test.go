package types

import (
	"testing"

	"github.com/statarb-lab/pairtrade/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type PairTestSuite struct {
	suite.Suite
}

func TestPairSuite(t *testing.T) {
	suite.Run(t, new(PairTestSuite))
}

func (suite *PairTestSuite) TestCanonicalOrder() {
	ab, err := NewPair("AAPL", "MSFT")
	suite.Require().NoError(err)

	ba, err := NewPair("MSFT", "AAPL")
	suite.Require().NoError(err)

	suite.Equal(ab, ba)
	suite.Equal("AAPL", ab.First)
	suite.Equal("MSFT", ab.Second)
	suite.Equal("AAPL/MSFT", ab.String())
}

func (suite *PairTestSuite) TestInvalidPairs() {
	_, err := NewPair("", "MSFT")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPair))

	_, err = NewPair("AAPL", "AAPL")
	suite.Require().Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidPair))
}

func (suite *PairTestSuite) TestParsePair() {
	pair, err := ParsePair("MSFT/AAPL")
	suite.Require().NoError(err)
	suite.Equal("AAPL/MSFT", pair.String())

	_, err = ParsePair("AAPL")
	suite.Require().Error(err)

	_, err = ParsePair("A/B/C")
	suite.Require().Error(err)
}

func (suite *PairTestSuite) TestMapKey() {
	positions := map[Pair]int{}
	positions[MustPair("B", "A")] = 1
	positions[MustPair("A", "B")] = 2

	suite.Len(positions, 1)
	suite.Equal(2, positions[MustPair("A", "B")])
}

func (suite *PairTestSuite) TestSortPairs() {
	pairs := []Pair{
		MustPair("C", "D"),
		MustPair("A", "Z"),
		MustPair("A", "B"),
	}

	SortPairs(pairs)

	suite.Equal("A/B", pairs[0].String())
	suite.Equal("A/Z", pairs[1].String())
	suite.Equal("C/D", pairs[2].String())
}
