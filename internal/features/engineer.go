package features

import (
	"fmt"
	"math"

	"github.com/statarb-lab/pairtrade/internal/logger"
	"github.com/statarb-lab/pairtrade/internal/market"
	"github.com/statarb-lab/pairtrade/pkg/errors"
	"go.uber.org/zap"
)

// Engineer computes technical-indicator features from a price table.
// Implementations group output by symbol and prefix every column with the
// symbol name; a failure on one symbol skips that symbol, it does not fail
// the frame.
type Engineer interface {
	// GenerateFeatures computes indicator columns over the whole table.
	// selected limits the indicator set; nil means all indicators.
	GenerateFeatures(prices *market.PriceTable, selected []string) (Frame, error)
}

// Indicator names accepted in the selected list of GenerateFeatures.
const (
	IndicatorSMA       = "sma"
	IndicatorEMA       = "ema"
	IndicatorRSI       = "rsi"
	IndicatorMACD      = "macd"
	IndicatorBollinger = "bollinger"
	IndicatorROC       = "roc"
)

var allIndicators = []string{
	IndicatorSMA,
	IndicatorEMA,
	IndicatorRSI,
	IndicatorMACD,
	IndicatorBollinger,
	IndicatorROC,
}

// TechnicalEngineer is the default Engineer. Window sizes follow the common
// defaults (20-day averages, 14-day RSI, 12/26/9 MACD, 2-sigma bands).
type TechnicalEngineer struct {
	log *logger.Logger

	SMAWindow  int
	EMAWindow  int
	RSIWindow  int
	MACDFast   int
	MACDSlow   int
	MACDSignal int
	BBWindow   int
	BBStdDev   float64
	ROCWindow  int
}

// NewTechnicalEngineer creates a TechnicalEngineer with default windows.
func NewTechnicalEngineer(log *logger.Logger) *TechnicalEngineer {
	return &TechnicalEngineer{
		log:        log,
		SMAWindow:  20,
		EMAWindow:  20,
		RSIWindow:  14,
		MACDFast:   12,
		MACDSlow:   26,
		MACDSignal: 9,
		BBWindow:   20,
		BBStdDev:   2,
		ROCWindow:  10,
	}
}

// GenerateFeatures implements Engineer. Indicator columns are named
// "<symbol>_<INDICATOR>_<window>". Leading undefined values are
// backward-filled so the frame carries no NaN.
func (e *TechnicalEngineer) GenerateFeatures(prices *market.PriceTable, selected []string) (Frame, error) {
	if prices == nil || prices.Len() == 0 {
		return Frame{}, errors.New(errors.ErrCodeFeatureGeneration, "empty price table")
	}

	if selected == nil {
		selected = allIndicators
	}

	frame := NewFrame(prices.Dates())

	generated := 0

	for _, symbol := range prices.Symbols() {
		column, err := prices.Column(symbol)
		if err != nil {
			continue
		}

		if err := e.generateSymbol(&frame, symbol, column, selected); err != nil {
			e.log.Warn("skipping symbol in feature generation",
				zap.String("symbol", symbol),
				zap.Error(err),
			)

			continue
		}

		generated++
	}

	if generated == 0 {
		return Frame{}, errors.New(errors.ErrCodeFeatureGeneration, "no symbol produced features")
	}

	return frame, nil
}

func (e *TechnicalEngineer) generateSymbol(frame *Frame, symbol string, column []float64, selected []string) error {
	if len(column) < 2 {
		return errors.NewInsufficientDataErrorf(2, len(column), symbol, "symbol %s has %d rows, need at least 2", symbol, len(column))
	}

	for _, indicator := range selected {
		switch indicator {
		case IndicatorSMA:
			frame.AddColumn(
				fmt.Sprintf("%s_SMA_%d", symbol, e.SMAWindow),
				backfill(rollingMean(column, e.SMAWindow)),
			)
		case IndicatorEMA:
			frame.AddColumn(
				fmt.Sprintf("%s_EMA_%d", symbol, e.EMAWindow),
				ema(column, e.EMAWindow),
			)
		case IndicatorRSI:
			frame.AddColumn(
				fmt.Sprintf("%s_RSI_%d", symbol, e.RSIWindow),
				backfill(rsi(column, e.RSIWindow)),
			)
		case IndicatorMACD:
			macdLine, signalLine, hist := macd(column, e.MACDFast, e.MACDSlow, e.MACDSignal)
			frame.AddColumn(fmt.Sprintf("%s_MACD_%d_%d", symbol, e.MACDFast, e.MACDSlow), macdLine)
			frame.AddColumn(fmt.Sprintf("%s_MACD_SIGNAL_%d", symbol, e.MACDSignal), signalLine)
			frame.AddColumn(fmt.Sprintf("%s_MACD_HIST", symbol), hist)
		case IndicatorBollinger:
			upper, lower := bollinger(column, e.BBWindow, e.BBStdDev)
			frame.AddColumn(fmt.Sprintf("%s_BB_UPPER_%d", symbol, e.BBWindow), backfill(upper))
			frame.AddColumn(fmt.Sprintf("%s_BB_LOWER_%d", symbol, e.BBWindow), backfill(lower))
		case IndicatorROC:
			frame.AddColumn(
				fmt.Sprintf("%s_ROC_%d", symbol, e.ROCWindow),
				backfill(roc(column, e.ROCWindow)),
			)
		default:
			return errors.Newf(errors.ErrCodeUnknownIndicator, "unknown indicator %q", indicator)
		}
	}

	return nil
}

// rollingMean computes a simple moving average; positions before the window
// is full are NaN.
func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))

	sum := 0.0

	for i := range values {
		sum += values[i]
		if i >= window {
			sum -= values[i-window]
		}

		if i >= window-1 {
			out[i] = sum / float64(window)
		} else {
			out[i] = math.NaN()
		}
	}

	return out
}

// ema computes an exponential moving average seeded with the first value.
func ema(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2.0 / (float64(window) + 1.0)

	out[0] = values[0]

	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out
}

// emaAlpha is ema with an explicit smoothing factor (Wilder smoothing uses
// alpha = 1/window).
func emaAlpha(values []float64, alpha float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	out[0] = values[0]

	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}

	return out
}

// rsi computes the Wilder relative strength index. The first position is NaN
// since it has no delta.
func rsi(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	gains := make([]float64, len(values))
	losses := make([]float64, len(values))

	for i := 1; i < len(values); i++ {
		delta := values[i] - values[i-1]
		if delta > 0 {
			gains[i] = delta
		} else {
			losses[i] = -delta
		}
	}

	alpha := 1.0 / float64(window)
	avgGain := emaAlpha(gains[1:], alpha)
	avgLoss := emaAlpha(losses[1:], alpha)

	out[0] = math.NaN()

	for i := 1; i < len(values); i++ {
		loss := avgLoss[i-1]
		if loss == 0 {
			out[i] = 100
			continue
		}

		rs := avgGain[i-1] / loss
		out[i] = 100 - 100/(1+rs)
	}

	return out
}

// macd computes the MACD line, its signal line, and the histogram.
func macd(values []float64, fast, slow, signal int) ([]float64, []float64, []float64) {
	fastEMA := ema(values, fast)
	slowEMA := ema(values, slow)

	line := make([]float64, len(values))
	for i := range values {
		line[i] = fastEMA[i] - slowEMA[i]
	}

	signalLine := ema(line, signal)

	hist := make([]float64, len(values))
	for i := range values {
		hist[i] = line[i] - signalLine[i]
	}

	return line, signalLine, hist
}

// bollinger computes the upper and lower Bollinger bands.
func bollinger(values []float64, window int, stddev float64) ([]float64, []float64) {
	mean := rollingMean(values, window)

	upper := make([]float64, len(values))
	lower := make([]float64, len(values))

	for i := range values {
		if math.IsNaN(mean[i]) {
			upper[i] = math.NaN()
			lower[i] = math.NaN()

			continue
		}

		variance := 0.0
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - mean[i]
			variance += d * d
		}

		sd := math.Sqrt(variance / float64(window))
		upper[i] = mean[i] + stddev*sd
		lower[i] = mean[i] - stddev*sd
	}

	return upper, lower
}

// roc computes the rate of change over the window.
func roc(values []float64, window int) []float64 {
	out := make([]float64, len(values))

	for i := range values {
		if i < window || values[i-window] == 0 {
			out[i] = math.NaN()
			continue
		}

		out[i] = (values[i] - values[i-window]) / values[i-window]
	}

	return out
}

// backfill replaces leading NaN values with the first finite value.
func backfill(values []float64) []float64 {
	next := math.NaN()

	for i := len(values) - 1; i >= 0; i-- {
		if math.IsNaN(values[i]) {
			values[i] = next
		} else {
			next = values[i]
		}
	}

	return values
}
