package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/statarb-lab/pairtrade/internal/market"
	"github.com/statarb-lab/pairtrade/internal/types"
)

// DataGenerator generates realistic correlated price data for testing and
// benchmarking.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how pair price data is generated.
type GeneratorConfig struct {
	// Pairs are the symbol pairs to generate. Each pair shares a common
	// driver so the two legs stay correlated.
	Pairs []types.Pair
	// StartTime is the beginning of the data series
	StartTime time.Time
	// Interval is the duration between timesteps
	Interval time.Duration
	// Count is the number of timesteps to generate
	Count int
	// InitialPrice is the starting price of the first leg
	InitialPrice float64
	// Volatility controls common price movement per step
	Volatility float64
	// SpreadVolatility controls the idiosyncratic spread movement
	SpreadVolatility float64
	// MeanReversion pulls the spread back toward zero each step (0 to 1)
	MeanReversion float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Pairs:            []types.Pair{types.MustPair("AAA", "BBB")},
		StartTime:        time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Interval:         24 * time.Hour,
		Count:            500,
		InitialPrice:     100.0,
		Volatility:       0.01,
		SpreadVolatility: 0.003,
		MeanReversion:    0.1,
	}
}

// Generate creates a price table where each pair's legs follow a shared
// geometric Brownian motion plus a mean-reverting spread, the structure a
// spread strategy expects to find.
func (g *DataGenerator) Generate(config GeneratorConfig) (*market.PriceTable, error) {
	dates := make([]time.Time, config.Count)

	current := config.StartTime
	for i := range dates {
		dates[i] = current
		current = current.Add(config.Interval)
	}

	series := make(map[string][]float64)

	for _, pair := range config.Pairs {
		first, second := pair.Symbols()

		// A symbol can belong to several pairs; first writer wins so both
		// pairs see the same series.
		if _, ok := series[first]; !ok {
			base := g.commonPath(config)
			series[first] = base
		}

		if _, ok := series[second]; !ok {
			series[second] = g.cointegratedPath(series[first], config)
		}
	}

	return market.NewPriceTable(dates, series)
}

// commonPath simulates one geometric Brownian motion path.
func (g *DataGenerator) commonPath(config GeneratorConfig) []float64 {
	path := make([]float64, config.Count)

	price := config.InitialPrice * (0.8 + g.rng.Float64()*0.4)

	for i := range path {
		path[i] = roundToDecimals(price, 4)

		price *= 1 + config.Volatility*g.gaussian()
		if price <= 0 {
			price = path[i] * 0.99
		}
	}

	return path
}

// cointegratedPath derives the second leg from the first by adding a
// mean-reverting spread, so the pair's z-score oscillates around zero.
func (g *DataGenerator) cointegratedPath(base []float64, config GeneratorConfig) []float64 {
	path := make([]float64, len(base))

	spread := 0.0

	for i := range base {
		spread = spread*(1-config.MeanReversion) + config.SpreadVolatility*base[i]*g.gaussian()

		value := base[i] + spread
		if value <= 0 {
			value = base[i] * 0.5
		}

		path[i] = roundToDecimals(value, 4)
	}

	return path
}

// gaussian draws a standard normal variate via the Box-Muller transform.
func (g *DataGenerator) gaussian() float64 {
	u1 := g.rng.Float64()
	u2 := g.rng.Float64()

	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

func roundToDecimals(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))

	return math.Round(value*factor) / factor
}
