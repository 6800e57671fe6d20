package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/moznion/go-optional"
	"github.com/schollz/progressbar/v3"
	"github.com/statarb-lab/pairtrade/internal/engine"
	"github.com/statarb-lab/pairtrade/internal/market"
	"github.com/statarb-lab/pairtrade/internal/report"
	"github.com/statarb-lab/pairtrade/internal/risk"
	"github.com/statarb-lab/pairtrade/internal/strategy"
	"github.com/statarb-lab/pairtrade/internal/types"
	"github.com/urfave/cli/v3"
	yaml "gopkg.in/yaml.v2"
)

// runAction loads prices and config, runs the backtest, and writes the
// report artifacts to the output directory.
func runAction(ctx context.Context, cmd *cli.Command) error {
	dataPath := cmd.String("data")
	configPath := cmd.String("config")
	outputDir := cmd.String("output")
	pairFlags := cmd.StringSlice("pair")
	lookback := cmd.Int("lookback")
	entry := cmd.Float64("entry")
	exit := cmd.Float64("exit")
	maxSize := cmd.Float64("max-size")

	config := engine.DefaultConfig()

	if configPath != "" {
		var err error

		config, err = engine.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	prices, err := market.LoadCSV(dataPath)
	if err != nil {
		return fmt.Errorf("failed to load price data: %w", err)
	}

	pairs, err := resolvePairs(pairFlags, prices)
	if err != nil {
		return err
	}

	strat, err := strategy.NewSpreadZScore(pairs, int(lookback), entry, exit, maxSize)
	if err != nil {
		return fmt.Errorf("failed to build strategy: %w", err)
	}

	manager := risk.NewFixedFraction(strat.MaxPositionSize())

	backtester, err := engine.New(config, strat, prices, engine.WithRiskManager(manager))
	if err != nil {
		return fmt.Errorf("failed to build engine: %w", err)
	}
	defer backtester.Close()

	bar := progressbar.Default(int64(prices.Len() - 1))

	result, err := backtester.Run(optional.Some(progressCallback(bar)))
	if err != nil {
		return fmt.Errorf("backtest failed: %w", err)
	}

	builder := report.NewBuilder(manager)

	runReport, err := builder.Build(result)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}

	if err := writeArtifacts(backtester, runReport, outputDir, cmd.Bool("xlsx"), cmd.Bool("yaml")); err != nil {
		return err
	}

	printSummary(runReport)

	return nil
}

func progressCallback(bar *progressbar.ProgressBar) engine.OnStepCallback {
	return func(current, total int, date time.Time, equity float64) {
		bar.Add(1)
	}
}

// resolvePairs parses --pair flags, or derives all adjacent symbol pairs from
// the price table when none are given.
func resolvePairs(flags []string, prices *market.PriceTable) ([]types.Pair, error) {
	if len(flags) > 0 {
		pairs := make([]types.Pair, 0, len(flags))

		for _, flag := range flags {
			pair, err := types.ParsePair(flag)
			if err != nil {
				return nil, fmt.Errorf("invalid --pair value %q: %w", flag, err)
			}

			pairs = append(pairs, pair)
		}

		return pairs, nil
	}

	symbols := prices.Symbols()

	pairs := make([]types.Pair, 0, len(symbols)-1)
	for i := 0; i+1 < len(symbols); i += 2 {
		pairs = append(pairs, types.MustPair(symbols[i], symbols[i+1]))
	}

	return pairs, nil
}

func writeArtifacts(backtester *engine.Engine, runReport *report.Report, outputDir string, xlsx, writeYAML bool) error {
	if err := backtester.WriteTradeLog(outputDir); err != nil {
		return fmt.Errorf("failed to write trade log: %w", err)
	}

	jsonSink := report.NewJSONSink(filepath.Join(outputDir, "report.json"))
	if err := jsonSink.Write(runReport); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}

	if writeYAML {
		if err := report.WriteYAML(filepath.Join(outputDir, "report.yaml"), runReport); err != nil {
			return fmt.Errorf("failed to write YAML report: %w", err)
		}
	}

	if xlsx {
		excelSink := report.NewExcelSink(filepath.Join(outputDir, "report.xlsx"))
		if err := excelSink.Write(runReport); err != nil {
			return fmt.Errorf("failed to write spreadsheet: %w", err)
		}
	}

	return nil
}

// printSummary renders the overall metrics and per-pair rollups as console
// tables.
func printSummary(runReport *report.Report) {
	overall := table.NewWriter()
	overall.SetOutputMirror(os.Stdout)
	overall.SetTitle("Overall Metrics")
	overall.AppendHeader(table.Row{"Metric", "Value"})
	overall.AppendRows([]table.Row{
		{"Initial Capital", fmt.Sprintf("%.2f", runReport.OverallMetrics.InitialCapital)},
		{"Final Value", fmt.Sprintf("%.2f", runReport.OverallMetrics.FinalValue)},
		{"Total Return", fmt.Sprintf("%.2f%%", runReport.OverallMetrics.TotalReturn*100)},
		{"Annualized Return", fmt.Sprintf("%.2f%%", runReport.OverallMetrics.AnnualizedReturn*100)},
		{"Volatility", fmt.Sprintf("%.2f%%", runReport.OverallMetrics.Volatility*100)},
		{"Sharpe Ratio", fmt.Sprintf("%.2f", runReport.OverallMetrics.SharpeRatio)},
		{"Max Drawdown", fmt.Sprintf("%.2f%%", runReport.OverallMetrics.MaxDrawdown*100)},
		{"Win Rate", fmt.Sprintf("%.2f%%", runReport.OverallMetrics.WinRate*100)},
		{"Total Trades", runReport.OverallMetrics.TotalTrades},
	})
	overall.Render()

	if len(runReport.PairPerformance) == 0 {
		return
	}

	pairs := table.NewWriter()
	pairs.SetOutputMirror(os.Stdout)
	pairs.SetTitle("Pair Performance")
	pairs.AppendHeader(table.Row{"Pair", "Round Trips", "Total PnL", "Win Rate", "Mean Holding Days"})

	for _, summary := range runReport.PairPerformance {
		pairs.AppendRow(table.Row{
			summary.Pair,
			summary.RoundTrips,
			fmt.Sprintf("%.2f", summary.TotalPnL),
			fmt.Sprintf("%.2f%%", summary.WinRate*100),
			fmt.Sprintf("%.1f", summary.MeanHoldingDays),
		})
	}

	pairs.Render()
}

// schemaAction writes the engine config JSON schema plus a sample config.
func schemaAction(ctx context.Context, cmd *cli.Command) error {
	outputDir := cmd.String("output")

	config := engine.DefaultConfig()

	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return fmt.Errorf("failed to generate schema: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	schemaName := "pairtrade-engine-config.json"
	schemaPath := filepath.Join(outputDir, schemaName)

	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0644); err != nil {
		return fmt.Errorf("failed to write schema: %w", err)
	}

	sampleConfigPath := filepath.Join(outputDir, "pairtrade-engine-config.yaml")

	if _, err := os.Stat(sampleConfigPath); os.IsNotExist(err) {
		yamlBytes, err := yaml.Marshal(config)
		if err != nil {
			return fmt.Errorf("failed to marshal sample config: %w", err)
		}

		yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)

		if err := os.WriteFile(sampleConfigPath, yamlBytes, 0644); err != nil {
			return fmt.Errorf("failed to write sample config: %w", err)
		}

		log.Printf("Sample config generated at %s", sampleConfigPath)
	}

	log.Printf("Schema generated at %s", schemaPath)

	return nil
}

func main() {
	cmd := &cli.Command{
		Name:  "backtest",
		Usage: "Run pair trading backtests",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a backtest over a CSV price matrix",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Path to the wide CSV price file (date,SYM1,SYM2,...)",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to the YAML engine config",
					},
					&cli.StringSliceFlag{
						Name:  "pair",
						Usage: "Pair to trade in A/B form; repeatable. Defaults to pairing adjacent symbols",
					},
					&cli.IntFlag{
						Name:  "lookback",
						Usage: "Rolling z-score window in timesteps",
						Value: 30,
					},
					&cli.Float64Flag{
						Name:  "entry",
						Usage: "Entry z-score threshold",
						Value: 2.0,
					},
					&cli.Float64Flag{
						Name:  "exit",
						Usage: "Exit z-score threshold",
						Value: 0.5,
					},
					&cli.Float64Flag{
						Name:  "max-size",
						Usage: "Max position size as a fraction of portfolio value",
						Value: 0.1,
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory for the trade log and reports",
						Value:   "output",
					},
					&cli.BoolFlag{
						Name:  "xlsx",
						Usage: "Also write the report as a spreadsheet",
					},
					&cli.BoolFlag{
						Name:  "yaml",
						Usage: "Also write the report as YAML",
					},
				},
				Action: runAction,
			},
			{
				Name:  "schema",
				Usage: "Generate the engine config JSON schema and a sample config",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output directory for the schema files",
						Value:   "config",
					},
				},
				Action: schemaAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
