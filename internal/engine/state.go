package engine

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/statarb-lab/pairtrade/internal/logger"
	"github.com/statarb-lab/pairtrade/internal/types"
	"github.com/statarb-lab/pairtrade/pkg/errors"
	"go.uber.org/zap"
)

// TradeStore is the append-only persistence layer for the trade log and the
// per-pair performance records of one run. Records are totally ordered by a
// sequence number assigned at append time; readers always observe append
// order.
type TradeStore struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType

	nextSeq int64
}

// NewTradeStore opens an in-memory store and creates its tables.
func NewTradeStore(log *logger.Logger) (*TradeStore, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to open trade store", err)
	}

	store := &TradeStore{
		db:     db,
		logger: log,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := store.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return store, nil
}

func (s *TradeStore) initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			seq BIGINT PRIMARY KEY,
			trade_id TEXT,
			date TIMESTAMP,
			pair TEXT,
			action TEXT,
			quantity DOUBLE,
			price1 DOUBLE,
			price2 DOUBLE,
			cost DOUBLE,
			confidence DOUBLE,
			pnl DOUBLE,
			reason TEXT
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to create trades table", err)
	}

	_, err = s.db.Exec(`
		CREATE TABLE IF NOT EXISTS pair_performance (
			seq BIGINT PRIMARY KEY,
			pair TEXT,
			entry_date TIMESTAMP,
			exit_date TIMESTAMP,
			holding_period_days INTEGER,
			pnl DOUBLE,
			return_pct DOUBLE,
			confidence DOUBLE,
			exit_reason TEXT
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to create pair_performance table", err)
	}

	return nil
}

// AppendTrade persists one trade record, assigning its sequence number. The
// record's Seq field is set on success.
func (s *TradeStore) AppendTrade(record *types.TradeRecord) error {
	record.Seq = s.nextSeq

	insertQuery := s.sq.
		Insert("trades").
		Columns(
			"seq", "trade_id", "date", "pair", "action", "quantity",
			"price1", "price2", "cost", "confidence", "pnl", "reason",
		).
		Values(
			record.Seq, record.ID, record.Date, record.Pair.String(), string(record.Action), record.Quantity,
			record.Price1, record.Price2, record.Cost, record.Confidence, record.PnL, record.Reason,
		).
		RunWith(s.db)

	if _, err := insertQuery.Exec(); err != nil {
		return errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to insert trade", err)
	}

	s.nextSeq++

	return nil
}

// AppendPerformance persists one closed round-trip summary.
func (s *TradeStore) AppendPerformance(record types.PairPerformanceRecord) error {
	insertQuery := s.sq.
		Insert("pair_performance").
		Columns(
			"seq", "pair", "entry_date", "exit_date", "holding_period_days",
			"pnl", "return_pct", "confidence", "exit_reason",
		).
		Values(
			s.nextSeq, record.Pair.String(), record.EntryDate, record.ExitDate, record.HoldingPeriodDays,
			record.PnL, record.ReturnPct, record.Confidence, record.ExitReason,
		).
		RunWith(s.db)

	if _, err := insertQuery.Exec(); err != nil {
		return errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to insert pair performance", err)
	}

	s.nextSeq++

	return nil
}

// Trades returns the full trade log in append order.
func (s *TradeStore) Trades() ([]types.TradeRecord, error) {
	selectQuery := s.sq.
		Select(
			"seq", "trade_id", "date", "pair", "action", "quantity",
			"price1", "price2", "cost", "confidence", "pnl", "reason",
		).
		From("trades").
		OrderBy("seq ASC").
		RunWith(s.db)

	rows, err := selectQuery.Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to query trades", err)
	}
	defer rows.Close()

	var trades []types.TradeRecord

	for rows.Next() {
		var (
			record types.TradeRecord
			pair   string
			action string
		)

		err := rows.Scan(
			&record.Seq,
			&record.ID,
			&record.Date,
			&pair,
			&action,
			&record.Quantity,
			&record.Price1,
			&record.Price2,
			&record.Cost,
			&record.Confidence,
			&record.PnL,
			&record.Reason,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to scan trade", err)
		}

		record.Pair, err = types.ParsePair(pair)
		if err != nil {
			return nil, err
		}

		record.Action = types.TradeAction(action)

		trades = append(trades, record)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTradeLogFailed, "error iterating trades", err)
	}

	return trades, nil
}

// Performance returns the closed round-trip summaries in append order.
func (s *TradeStore) Performance() ([]types.PairPerformanceRecord, error) {
	selectQuery := s.sq.
		Select(
			"pair", "entry_date", "exit_date", "holding_period_days",
			"pnl", "return_pct", "confidence", "exit_reason",
		).
		From("pair_performance").
		OrderBy("seq ASC").
		RunWith(s.db)

	rows, err := selectQuery.Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to query pair performance", err)
	}
	defer rows.Close()

	var records []types.PairPerformanceRecord

	for rows.Next() {
		var (
			record types.PairPerformanceRecord
			pair   string
		)

		err := rows.Scan(
			&pair,
			&record.EntryDate,
			&record.ExitDate,
			&record.HoldingPeriodDays,
			&record.PnL,
			&record.ReturnPct,
			&record.Confidence,
			&record.ExitReason,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to scan pair performance", err)
		}

		record.Pair, err = types.ParsePair(pair)
		if err != nil {
			return nil, err
		}

		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeTradeLogFailed, "error iterating pair performance", err)
	}

	return records, nil
}

// Write exports the trade log and performance records to Parquet files in the
// given directory.
func (s *TradeStore) Write(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to create directory", err)
	}

	// Squirrel has no COPY syntax, so raw SQL here.
	tradesPath := filepath.Join(path, "trades.parquet")
	if _, err := s.db.Exec(fmt.Sprintf(`COPY trades TO '%s' (FORMAT PARQUET)`, tradesPath)); err != nil {
		return errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to export trades to Parquet", err)
	}

	performancePath := filepath.Join(path, "pair_performance.parquet")
	if _, err := s.db.Exec(fmt.Sprintf(`COPY pair_performance TO '%s' (FORMAT PARQUET)`, performancePath)); err != nil {
		return errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to export pair performance to Parquet", err)
	}

	s.logger.Info("exported trade log to Parquet",
		zap.String("trades", tradesPath),
		zap.String("pair_performance", performancePath),
	)

	return nil
}

// Cleanup resets the store to an empty state.
func (s *TradeStore) Cleanup() error {
	_, err := s.db.Exec(`
		DROP TABLE IF EXISTS trades;
		DROP TABLE IF EXISTS pair_performance;
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeTradeLogFailed, "failed to cleanup tables", err)
	}

	s.nextSeq = 0

	return s.initialize()
}

// Close releases the underlying database.
func (s *TradeStore) Close() error {
	return s.db.Close()
}
