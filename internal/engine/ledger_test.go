package engine

import (
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/statarb-lab/pairtrade/internal/logger"
	"github.com/statarb-lab/pairtrade/internal/types"
	"github.com/stretchr/testify/suite"
)

type LedgerTestSuite struct {
	suite.Suite
	store  *TradeStore
	ledger *positionLedger
	pair   types.Pair
}

func TestLedgerSuite(t *testing.T) {
	suite.Run(t, new(LedgerTestSuite))
}

func (suite *LedgerTestSuite) SetupTest() {
	store, err := NewTradeStore(logger.NewNopLogger())
	suite.Require().NoError(err)

	suite.store = store
	suite.ledger = newPositionLedger(100000, 0.001, optional.None[int](), store, logger.NewNopLogger())
	suite.pair = types.MustPair("AAA", "BBB")
}

func (suite *LedgerTestSuite) TearDownTest() {
	suite.store.Close()
}

func (suite *LedgerTestSuite) entryDate() time.Time {
	return time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
}

// TestRoundTripAccounting walks one position through its full lifecycle and
// checks the cash balance to the cent at each stage.
func (suite *LedgerTestSuite) TestRoundTripAccounting() {
	entryDate := suite.entryDate()

	// Entry: quantity 10 at 100.50 per leg. Notional 2010.00, cost 2.01.
	err := suite.ledger.Open(entryDate, suite.pair, 1, 1, 10, 100.50, 100.50, 0.9, nil)
	suite.Require().NoError(err)

	suite.Equal(97987.99, suite.ledger.Portfolio())
	suite.True(suite.ledger.HasPosition(suite.pair))

	position := suite.ledger.Positions()[suite.pair]
	suite.Equal(2.01, position.EntryCost)
	suite.Equal(0.0, position.EntrySpread())

	// Exit a week later: spread moved +1.00 in the position's favor, exit
	// legs sum to 204.00 so the exit cost is 2.04.
	exitDate := entryDate.AddDate(0, 0, 7)

	err = suite.ledger.Close(exitDate, suite.pair, 102.50, 101.50, "signal change")
	suite.Require().NoError(err)

	// Spread PnL 10.00 minus entry cost 2.01 minus exit cost 2.04.
	suite.Equal(97993.94, suite.ledger.Portfolio())
	suite.False(suite.ledger.HasPosition(suite.pair))

	trades, err := suite.store.Trades()
	suite.Require().NoError(err)
	suite.Require().Len(trades, 2)

	entry, exit := trades[0], trades[1]

	suite.Equal(types.ActionEntry, entry.Action)
	suite.Equal(10.0, entry.Quantity)
	suite.Equal(2.01, entry.Cost)

	suite.Equal(types.ActionExit, exit.Action)
	suite.Equal(-10.0, exit.Quantity)
	suite.Equal(2.04, exit.Cost)
	suite.Equal(5.95, exit.PnL)
	suite.Equal("signal change", exit.Reason)

	performance, err := suite.store.Performance()
	suite.Require().NoError(err)
	suite.Require().Len(performance, 1)

	record := performance[0]
	suite.Equal(7, record.HoldingPeriodDays)
	suite.Equal(5.95, record.PnL)
	suite.InDelta(5.95/2040.0, record.ReturnPct, 1e-12)
}

func (suite *LedgerTestSuite) TestShortSpreadPnL() {
	err := suite.ledger.Open(suite.entryDate(), suite.pair, -1, -1, 10, 100.50, 100.50, 1, nil)
	suite.Require().NoError(err)

	// Spread rises by 1.00 against a short position.
	err = suite.ledger.Close(suite.entryDate().AddDate(0, 0, 1), suite.pair, 102.50, 101.50, "signal change")
	suite.Require().NoError(err)

	trades, err := suite.store.Trades()
	suite.Require().NoError(err)

	// Spread PnL -10.00 minus both costs.
	suite.Equal(-14.05, trades[1].PnL)
}

func (suite *LedgerTestSuite) TestInsufficientCapitalIsNoOp() {
	// Requires 2010000 + cost against 100000 cash.
	err := suite.ledger.Open(suite.entryDate(), suite.pair, 1, 1, 10000, 100.50, 100.50, 1, nil)
	suite.Require().NoError(err)

	suite.False(suite.ledger.HasPosition(suite.pair))
	suite.Equal(100000.0, suite.ledger.Portfolio())

	trades, err := suite.store.Trades()
	suite.Require().NoError(err)
	suite.Empty(trades)
}

func (suite *LedgerTestSuite) TestEntryValidation() {
	err := suite.ledger.Open(suite.entryDate(), suite.pair, 1, 1, 0, 100, 100, 1, nil)
	suite.Require().Error(err)

	err = suite.ledger.Open(suite.entryDate(), suite.pair, 1, 1, 10, 100, 100, 1, nil)
	suite.Require().NoError(err)

	// Double open is rejected.
	err = suite.ledger.Open(suite.entryDate(), suite.pair, 1, 1, 10, 100, 100, 1, nil)
	suite.Require().Error(err)
}

func (suite *LedgerTestSuite) TestPairCap() {
	store, err := NewTradeStore(logger.NewNopLogger())
	suite.Require().NoError(err)
	defer store.Close()

	capped := newPositionLedger(100000, 0.001, optional.Some(1), store, logger.NewNopLogger())

	err = capped.Open(suite.entryDate(), types.MustPair("AAA", "BBB"), 1, 1, 10, 100, 100, 1, nil)
	suite.Require().NoError(err)

	// Second pair bounces off the cap; the first position is untouched.
	err = capped.Open(suite.entryDate(), types.MustPair("CCC", "DDD"), 1, 1, 10, 100, 100, 1, nil)
	suite.Require().Error(err)
	suite.Len(capped.Positions(), 1)
}

func (suite *LedgerTestSuite) TestCloseWithoutPosition() {
	err := suite.ledger.Close(suite.entryDate(), suite.pair, 100, 100, "signal change")
	suite.Require().Error(err)
}
