package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"github.com/statarb-lab/pairtrade/internal/logger"
	"github.com/statarb-lab/pairtrade/internal/types"
	"github.com/statarb-lab/pairtrade/pkg/errors"
	"go.uber.org/zap"
)

// positionLedger owns the open positions and the cash balance. Every entry
// and exit flows through it, so the trade log and the position map can never
// disagree: records are appended to the store before the in-memory state
// mutates, and a failed append aborts the mutation.
//
// Accounting model: opening escrows the full entry notional plus the entry
// cost out of cash. Closing credits the spread PnL net of both legs' costs;
// the escrowed notional stays out of cash for the remainder of the run.
type positionLedger struct {
	positions map[types.Pair]types.Position
	portfolio float64

	costRate float64
	maxPairs optional.Option[int]

	store *TradeStore
	log   *logger.Logger
}

func newPositionLedger(initialCapital, costRate float64, maxPairs optional.Option[int], store *TradeStore, log *logger.Logger) *positionLedger {
	return &positionLedger{
		positions: make(map[types.Pair]types.Position),
		portfolio: initialCapital,
		costRate:  costRate,
		maxPairs:  maxPairs,
		store:     store,
		log:       log,
	}
}

// Portfolio returns the current cash balance.
func (l *positionLedger) Portfolio() float64 {
	return l.portfolio
}

// Positions returns the open position map. Callers must not modify it.
func (l *positionLedger) Positions() map[types.Pair]types.Position {
	return l.positions
}

// HasPosition reports whether a position is open for the pair.
func (l *positionLedger) HasPosition(pair types.Pair) bool {
	_, ok := l.positions[pair]

	return ok
}

// validateEntry checks the structural preconditions for opening: positive
// quantity, no position already open for the pair, and room under the pair
// cap. Capital sufficiency is checked in Open since it depends on prices.
func (l *positionLedger) validateEntry(pair types.Pair, quantity float64) error {
	if quantity <= 0 {
		return errors.Newf(errors.ErrCodeInvalidQuantity, "entry quantity must be positive, got %v", quantity)
	}

	if l.HasPosition(pair) {
		return errors.Newf(errors.ErrCodePositionAlreadyOpen, "position already open for %s", pair)
	}

	if maxPairs, err := l.maxPairs.Take(); err == nil && len(l.positions) >= maxPairs {
		return errors.Newf(errors.ErrCodeInvalidQuantity, "pair cap %d reached", maxPairs)
	}

	return nil
}

// Open enters a position. Cash is debited for the entry notional plus the
// proportional entry cost; insufficient cash is a logged no-op rather than an
// error so one oversized signal cannot halt the run.
func (l *positionLedger) Open(date time.Time, pair types.Pair, signal float64, direction int, quantity, price1, price2, confidence float64, featureSnapshot map[string]float64) error {
	if err := l.validateEntry(pair, quantity); err != nil {
		return err
	}

	qty := decimal.NewFromFloat(quantity)
	legSum := decimal.NewFromFloat(price1).Add(decimal.NewFromFloat(price2))
	notional := qty.Mul(legSum)
	cost := notional.Mul(decimal.NewFromFloat(l.costRate))
	required, _ := notional.Add(cost).Float64()

	if required > l.portfolio {
		l.log.Warn("skipping entry, insufficient capital",
			zap.String("pair", pair.String()),
			zap.Float64("required", required),
			zap.Float64("available", l.portfolio),
		)

		return nil
	}

	entryCost, _ := cost.Float64()

	record := types.TradeRecord{
		ID:         uuid.New().String(),
		Date:       date,
		Pair:       pair,
		Action:     types.ActionEntry,
		Quantity:   float64(direction) * quantity,
		Price1:     price1,
		Price2:     price2,
		Cost:       entryCost,
		Confidence: confidence,
	}

	if err := l.store.AppendTrade(&record); err != nil {
		return err
	}

	l.positions[pair] = types.Position{
		Pair:        pair,
		Direction:   direction,
		Signal:      signal,
		Quantity:    quantity,
		EntryDate:   date,
		EntryPrice1: price1,
		EntryPrice2: price2,
		Confidence:  confidence,
		EntryCost:   entryCost,
		Features:    featureSnapshot,
	}

	newBalance := decimal.NewFromFloat(l.portfolio).Sub(notional).Sub(cost)
	l.portfolio, _ = newBalance.Float64()

	return nil
}

// Close exits the position open for the pair. The credited PnL is the spread
// move net of both entry and exit costs.
func (l *positionLedger) Close(date time.Time, pair types.Pair, price1, price2 float64, reason string) error {
	position, ok := l.positions[pair]
	if !ok {
		return errors.Newf(errors.ErrCodePositionNotFound, "no open position for %s", pair)
	}

	qty := decimal.NewFromFloat(position.Quantity)
	direction := decimal.NewFromInt(int64(position.Direction))

	exitSpread := decimal.NewFromFloat(price1).Sub(decimal.NewFromFloat(price2))
	entrySpread := decimal.NewFromFloat(position.EntryPrice1).Sub(decimal.NewFromFloat(position.EntryPrice2))
	spreadPnl := qty.Mul(direction).Mul(exitSpread.Sub(entrySpread))

	exitNotional := qty.Mul(decimal.NewFromFloat(price1).Add(decimal.NewFromFloat(price2)))
	exitCost := exitNotional.Mul(decimal.NewFromFloat(l.costRate))

	totalPnl := spreadPnl.Sub(decimal.NewFromFloat(position.EntryCost)).Sub(exitCost)

	pnl, _ := totalPnl.Float64()
	exitCostValue, _ := exitCost.Float64()

	record := types.TradeRecord{
		ID:         uuid.New().String(),
		Date:       date,
		Pair:       pair,
		Action:     types.ActionExit,
		Quantity:   -float64(position.Direction) * position.Quantity,
		Price1:     price1,
		Price2:     price2,
		Cost:       exitCostValue,
		Confidence: position.Confidence,
		PnL:        pnl,
		Reason:     reason,
	}

	if err := l.store.AppendTrade(&record); err != nil {
		return err
	}

	returnPct := 0.0
	if notional, _ := exitNotional.Float64(); notional != 0 {
		returnPct = pnl / notional
	}

	performance := types.PairPerformanceRecord{
		Pair:              pair,
		EntryDate:         position.EntryDate,
		ExitDate:          date,
		HoldingPeriodDays: int(date.Sub(position.EntryDate).Hours() / 24),
		PnL:               pnl,
		ReturnPct:         returnPct,
		Confidence:        position.Confidence,
		ExitReason:        reason,
	}

	if err := l.store.AppendPerformance(performance); err != nil {
		return err
	}

	delete(l.positions, pair)

	newBalance := decimal.NewFromFloat(l.portfolio).Add(totalPnl)
	l.portfolio, _ = newBalance.Float64()

	return nil
}
