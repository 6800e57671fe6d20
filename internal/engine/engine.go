// Package engine implements the event-driven pair trading backtest loop:
// signal generation over a growing history, signal normalization, position
// lifecycle accounting, risk gating, and the append-only trade log.
package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/moznion/go-optional"
	"github.com/statarb-lab/pairtrade/internal/features"
	"github.com/statarb-lab/pairtrade/internal/logger"
	"github.com/statarb-lab/pairtrade/internal/market"
	"github.com/statarb-lab/pairtrade/internal/risk"
	"github.com/statarb-lab/pairtrade/internal/strategy"
	"github.com/statarb-lab/pairtrade/internal/types"
	"github.com/statarb-lab/pairtrade/pkg/errors"
	"go.uber.org/zap"
)

// OnStepCallback is invoked after each completed timestep. Used for progress
// reporting; the callback must not block.
type OnStepCallback func(current, total int, date time.Time, equity float64)

// Result is the full outcome of one backtest run.
type Result struct {
	RunID          string
	InitialCapital float64
	FinalValue     float64
	Equity         types.EquityCurve
	Trades         []types.TradeRecord
	Performance    []types.PairPerformanceRecord
	// OpenPositions are the positions still open when the run ended.
	OpenPositions map[types.Pair]types.Position
	// Halted reports whether the run stopped early on a risk breach.
	Halted     bool
	HaltReason string
}

// Engine drives one backtest over a fixed price table. It is single-use:
// construct, Run once, read the result.
type Engine struct {
	config   Config
	strategy strategy.Strategy
	prices   *market.PriceTable
	returns  *market.PriceTable
	corr     *market.CorrMatrix

	gate         riskGate
	featureCache *features.Cache
	normalizer   *signalNormalizer
	ledger       *positionLedger
	store        *TradeStore

	log *logger.Logger
}

// Option configures an Engine at construction.
type Option func(*options)

type options struct {
	manager  risk.Manager
	engineer features.Engineer
	log      *logger.Logger
}

// WithRiskManager replaces the default fixed-fraction risk manager.
func WithRiskManager(manager risk.Manager) Option {
	return func(o *options) {
		o.manager = manager
	}
}

// WithFeatureEngineer replaces the default technical-indicator engineer.
func WithFeatureEngineer(engineer features.Engineer) Option {
	return func(o *options) {
		o.engineer = engineer
	}
}

// WithLogger replaces the default production logger.
func WithLogger(log *logger.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// New validates the inputs and assembles an engine. The percentage-change
// table and the correlation matrix are derived once here; every step reuses
// them through prefix views.
func New(config Config, strat strategy.Strategy, prices *market.PriceTable, opts ...Option) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if strat == nil {
		return nil, errors.New(errors.ErrCodeInvalidConfiguration, "strategy must not be nil")
	}

	if prices == nil || prices.Len() == 0 {
		return nil, errors.New(errors.ErrCodeEmptyPriceTable, "price table must not be empty")
	}

	resolved := options{}
	for _, opt := range opts {
		opt(&resolved)
	}

	log := resolved.log
	if log == nil {
		var err error

		log, err = logger.NewLogger()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeEngineConfigError, "failed to create logger", err)
		}
	}

	manager := resolved.manager
	if manager == nil {
		manager = risk.NewFixedFraction(strat.MaxPositionSize())
	}

	engineer := resolved.engineer
	if engineer == nil {
		engineer = features.NewTechnicalEngineer(log)
	}

	for _, pair := range strat.Pairs() {
		first, second := pair.Symbols()
		if !prices.HasSymbol(first) || !prices.HasSymbol(second) {
			log.Warn("strategy pair has no price column, its signals will be skipped",
				zap.String("pair", pair.String()),
			)
		}
	}

	store, err := NewTradeStore(log)
	if err != nil {
		return nil, err
	}

	// Correlation is over returns, not price levels.
	returns := prices.PctChange()

	return &Engine{
		config:       config,
		strategy:     strat,
		prices:       prices,
		returns:      returns,
		corr:         returns.Correlation(),
		gate:         riskGate{manager: manager},
		featureCache: features.NewCache(engineer, config.FeatureRefreshInterval, log),
		normalizer:   newSignalNormalizer(strat.Pairs(), prices.Symbols(), log),
		ledger:       newPositionLedger(config.InitialCapital, config.TransactionCostRate, config.MaxPairs, store, log),
		store:        store,
		log:          log,
	}, nil
}

// Run executes the backtest. The first equity point is the initial capital at
// the first date; trading starts at the second timestep so every signal has
// at least one row of history. A failed step is contained: it is logged, the
// equity curve carries the prior value forward, and the run continues. A risk
// breach records the current step and then halts.
func (e *Engine) Run(onStep optional.Option[OnStepCallback]) (*Result, error) {
	result := &Result{
		RunID:          uuid.New().String(),
		InitialCapital: e.config.InitialCapital,
	}

	result.Equity.Append(e.prices.DateAt(0), e.config.InitialCapital)

	total := e.prices.Len()

	e.log.Info("starting backtest",
		zap.String("run_id", result.RunID),
		zap.String("strategy", e.strategy.Name()),
		zap.Int("timesteps", total),
		zap.Int("pairs", len(e.strategy.Pairs())),
		zap.Float64("initial_capital", e.config.InitialCapital),
	)

	for i := 1; i < total; i++ {
		date := e.prices.DateAt(i)

		if err := e.step(i, date); err != nil {
			e.log.Error("step failed, carrying equity forward",
				zap.Int("step", i),
				zap.Time("date", date),
				zap.Error(err),
			)

			prev, _ := result.Equity.Last()
			result.Equity.Append(date, prev)

			continue
		}

		equity := e.ledger.Portfolio()
		result.Equity.Append(date, equity)

		if callback, err := onStep.Take(); err == nil {
			callback(i, total-1, date, equity)
		}

		if breached, reason := e.gate.CheckLimits(result.Equity, e.ledger.Positions(), e.prices.Row(i)); breached {
			e.log.Warn("risk limit breached, halting run",
				zap.Int("step", i),
				zap.String("reason", reason),
			)

			result.Halted = true
			result.HaltReason = reason

			break
		}
	}

	result.FinalValue, _ = result.Equity.Last()

	result.OpenPositions = make(map[types.Pair]types.Position, len(e.ledger.Positions()))
	for pair, position := range e.ledger.Positions() {
		result.OpenPositions[pair] = position
	}

	trades, err := e.store.Trades()
	if err != nil {
		return nil, err
	}

	performance, err := e.store.Performance()
	if err != nil {
		return nil, err
	}

	result.Trades = trades
	result.Performance = performance

	e.log.Info("backtest finished",
		zap.String("run_id", result.RunID),
		zap.Float64("final_value", result.FinalValue),
		zap.Int("trades", len(result.Trades)),
		zap.Bool("halted", result.Halted),
	)

	return result, nil
}

// step advances the simulation by one timestep.
func (e *Engine) step(i int, date time.Time) error {
	history := e.prices.Slice(i)
	currentPrices := e.prices.Row(i)

	feats := e.featureCache.Features(history, i)

	set, err := e.generateSignals(history, feats)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeStepFailed, err, "signal generation failed at step %d", i)
	}

	signals := e.normalizer.Normalize(set, date, featureConfidence(feats))

	returnsHistory := e.returns.Slice(i)

	for _, signal := range signals {
		e.gate.UpdateMetrics(signal.Pair, returnsHistory, e.ledger.Positions(), signal.Confidence)

		if err := e.processPairSignal(date, signal, currentPrices, returnsHistory, feats); err != nil {
			return errors.Wrapf(errors.ErrCodeStepFailed, err, "pair %s failed at step %d", signal.Pair, i)
		}
	}

	return nil
}

// generateSignals dispatches to the predictor capability when the strategy
// has one, otherwise to plain generation over raw prices.
func (e *Engine) generateSignals(history *market.PriceTable, feats features.Frame) (types.SignalSet, error) {
	if predictor, ok := e.strategy.(strategy.SignalPredictor); ok && !feats.Empty() {
		return predictor.PredictSignals(feats)
	}

	return e.strategy.GenerateSignals(history)
}

// processPairSignal applies one normalized signal: close on flat or flipped
// signals first, then consider a fresh entry. A flip therefore closes and
// reopens within the same step.
func (e *Engine) processPairSignal(date time.Time, signal NormalizedSignal, currentPrices map[string]float64, returnsHistory *market.PriceTable, feats features.Frame) error {
	first, second := signal.Pair.Symbols()

	price1, ok1 := currentPrices[first]
	price2, ok2 := currentPrices[second]

	if !ok1 || !ok2 {
		return nil
	}

	if position, open := e.ledger.Positions()[signal.Pair]; open {
		direction := signalDirection(signal.Value)

		if direction == position.Direction {
			return nil
		}

		if err := e.ledger.Close(date, signal.Pair, price1, price2, "signal change"); err != nil {
			return err
		}
	}

	direction := signalDirection(signal.Value)
	if direction == 0 {
		return nil
	}

	if !e.gate.AllowEntry(signal.Confidence) {
		e.log.Debug("entry rejected by confidence gate",
			zap.String("pair", signal.Pair.String()),
			zap.Float64("confidence", signal.Confidence),
		)

		return nil
	}

	// A non-positive size is the manager's veto; the absent-manager case is
	// covered by the fixed-fraction default installed at construction.
	quantity := e.gate.Size(e.ledger.Portfolio(), signal.Pair, returnsHistory, signal.Confidence, e.corr)
	if quantity <= 0 {
		e.log.Debug("entry rejected by position sizing",
			zap.String("pair", signal.Pair.String()),
			zap.Float64("quantity", quantity),
		)

		return nil
	}

	err := e.ledger.Open(date, signal.Pair, signal.Value, direction, quantity, price1, price2, signal.Confidence, feats.Snapshot())
	if err != nil {
		// A full book is a skip, not a failure.
		if errors.HasCode(err, errors.ErrCodeInvalidQuantity) {
			e.log.Debug("entry rejected",
				zap.String("pair", signal.Pair.String()),
				zap.Error(err),
			)

			return nil
		}

		return err
	}

	return nil
}

// featureConfidence reads the latest model confidence from the feature frame.
// Frames without a confidence column yield full confidence.
func featureConfidence(feats features.Frame) float64 {
	if value, ok := feats.Snapshot()["confidence"]; ok {
		return value
	}

	return 1
}

// signalDirection maps a signal value to a position direction.
func signalDirection(value float64) int {
	switch {
	case value > 0:
		return 1
	case value < 0:
		return -1
	default:
		return 0
	}
}

// WriteTradeLog exports the run's trade log to Parquet files in dir.
func (e *Engine) WriteTradeLog(dir string) error {
	return e.store.Write(dir)
}

// Close releases the engine's trade store.
func (e *Engine) Close() error {
	return e.store.Close()
}
