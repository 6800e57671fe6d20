package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/statarb-lab/pairtrade/internal/risk"
	"github.com/statarb-lab/pairtrade/pkg/errors"
	"github.com/xuri/excelize/v2"
	yaml "gopkg.in/yaml.v3"
)

// Sink persists a finished report.
type Sink interface {
	// Write persists the report. The destination is fixed at construction.
	Write(report *Report) error
}

// JSONSink writes the report as indented JSON.
type JSONSink struct {
	path string
}

// NewJSONSink creates a JSONSink targeting path.
func NewJSONSink(path string) *JSONSink {
	return &JSONSink{path: path}
}

// Write implements Sink.
func (s *JSONSink) Write(report *Report) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to create directory for %s", s.path)
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to marshal report to JSON", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to write report to %s", s.path)
	}

	return nil
}

// WriteYAML writes the report as YAML to path.
func WriteYAML(path string, report *Report) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to marshal report to YAML", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to write report to %s", path)
	}

	return nil
}

// ExcelSink writes the report as a three-sheet spreadsheet: Summary, Pairs,
// and Risk.
type ExcelSink struct {
	path string
}

// NewExcelSink creates an ExcelSink targeting path.
func NewExcelSink(path string) *ExcelSink {
	return &ExcelSink{path: path}
}

// Write implements Sink.
func (s *ExcelSink) Write(report *Report) error {
	fx := excelize.NewFile()
	defer fx.Close()

	const summarySheet = "Summary"

	fx.SetSheetName(fx.GetSheetName(0), summarySheet)

	headStyle, _ := fx.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})

	writeSummary(fx, summarySheet, headStyle, report)

	if err := writePairs(fx, headStyle, report); err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to write pairs sheet", err)
	}

	if err := writeRisk(fx, headStyle, report); err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to write risk sheet", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to create directory for %s", s.path)
	}

	if err := fx.SaveAs(s.path); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to save spreadsheet to %s", s.path)
	}

	return nil
}

func writeSummary(fx *excelize.File, sheet string, headStyle int, report *Report) {
	rows := [][2]any{
		{"Run ID", report.RunID},
		{"Initial Capital", report.OverallMetrics.InitialCapital},
		{"Final Value", report.OverallMetrics.FinalValue},
		{"Total Return", report.OverallMetrics.TotalReturn},
		{"Annualized Return", report.OverallMetrics.AnnualizedReturn},
		{"Volatility", report.OverallMetrics.Volatility},
		{"Sharpe Ratio", report.OverallMetrics.SharpeRatio},
		{"Max Drawdown", report.OverallMetrics.MaxDrawdown},
		{"Win Rate", report.OverallMetrics.WinRate},
		{"Total Trades", report.OverallMetrics.TotalTrades},
		{"Total Exits", report.OverallMetrics.TotalExits},
		{"Halted", report.OverallMetrics.Halted},
		{"Halt Reason", report.OverallMetrics.HaltReason},
	}

	for i, row := range rows {
		labelCell := fmt.Sprintf("A%d", i+1)
		fx.SetCellValue(sheet, labelCell, row[0])
		fx.SetCellStyle(sheet, labelCell, labelCell, headStyle)
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", i+1), row[1])
	}
}

func writePairs(fx *excelize.File, headStyle int, report *Report) error {
	const sheet = "Pairs"

	if _, err := fx.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{
		"Pair", "Round Trips", "Total PnL", "Mean Return %", "Win Rate",
		"Mean Holding Days", "Mean Confidence", "Best Trade", "Worst Trade",
		"Last Exit Reason", "Open At Finish",
	}

	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, header)
		fx.SetCellStyle(sheet, cell, cell, headStyle)
	}

	for r, summary := range report.PairPerformance {
		values := []any{
			summary.Pair, summary.RoundTrips, summary.TotalPnL, summary.MeanReturnPct,
			summary.WinRate, summary.MeanHoldingDays, summary.MeanConfidence,
			summary.BestTradePnL, summary.WorstTradePnL, summary.LastExitReason,
			summary.StillOpenAtFinish,
		}

		for i, value := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			fx.SetCellValue(sheet, cell, value)
		}
	}

	return nil
}

func writeRisk(fx *excelize.File, headStyle int, report *Report) error {
	const sheet = "Risk"

	if _, err := fx.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Pair", "Metric", "Value"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		fx.SetCellValue(sheet, cell, header)
		fx.SetCellStyle(sheet, cell, cell, headStyle)
	}

	row := 2

	for _, pair := range sortedKeys(report.RiskAnalysis) {
		record := report.RiskAnalysis[pair]

		for _, metric := range sortedMetricKeys(record) {
			fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), pair)
			fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), metric)
			fx.SetCellValue(sheet, fmt.Sprintf("C%d", row), record[metric])
			row++
		}
	}

	return nil
}

func sortedKeys(records map[string]risk.MetricRecord) []string {
	keys := make([]string, 0, len(records))
	for key := range records {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

func sortedMetricKeys(record risk.MetricRecord) []string {
	keys := make([]string, 0, len(record))
	for key := range record {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
