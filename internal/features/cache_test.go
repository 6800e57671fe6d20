package features_test

import (
	"testing"
	"time"

	"github.com/statarb-lab/pairtrade/internal/features"
	"github.com/statarb-lab/pairtrade/internal/logger"
	"github.com/statarb-lab/pairtrade/internal/market"
	"github.com/statarb-lab/pairtrade/mocks"
	"github.com/statarb-lab/pairtrade/pkg/errors"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CacheTestSuite struct {
	suite.Suite
	prices *market.PriceTable
}

func TestCacheSuite(t *testing.T) {
	suite.Run(t, new(CacheTestSuite))
}

func (suite *CacheTestSuite) SetupSuite() {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	dates := make([]time.Time, 10)
	a := make([]float64, 10)
	b := make([]float64, 10)

	for i := range dates {
		dates[i] = start.AddDate(0, 0, i)
		a[i] = 100 + float64(i)
		b[i] = 100 - float64(i)
	}

	prices, err := market.NewPriceTable(dates, map[string][]float64{"A": a, "B": b})
	suite.Require().NoError(err)

	suite.prices = prices
}

func (suite *CacheTestSuite) frame() features.Frame {
	frame := features.NewFrame(suite.prices.Dates())
	frame.AddColumn("A_SMA_20", make([]float64, suite.prices.Len()))

	return frame
}

func (suite *CacheTestSuite) TestRecomputeThrottled() {
	ctrl := gomock.NewController(suite.T())
	engineer := mocks.NewMockEngineer(ctrl)

	// One compute serves the whole interval.
	engineer.EXPECT().
		GenerateFeatures(gomock.Any(), gomock.Nil()).
		Return(suite.frame(), nil).
		Times(1)

	cache := features.NewCache(engineer, 5, logger.NewNopLogger())

	first := cache.Features(suite.prices, 1)
	for step := 2; step < 6; step++ {
		served := cache.Features(suite.prices, step)
		suite.Equal(first.Columns(), served.Columns())
	}

	// Crossing the interval triggers a second compute.
	engineer.EXPECT().
		GenerateFeatures(gomock.Any(), gomock.Nil()).
		Return(suite.frame(), nil).
		Times(1)

	cache.Features(suite.prices, 6)
}

func (suite *CacheTestSuite) TestFallbackOnFailure() {
	ctrl := gomock.NewController(suite.T())
	engineer := mocks.NewMockEngineer(ctrl)

	engineer.EXPECT().
		GenerateFeatures(gomock.Any(), gomock.Nil()).
		Return(features.Frame{}, errors.New(errors.ErrCodeFeatureGeneration, "boom")).
		Times(1)

	cache := features.NewCache(engineer, 5, logger.NewNopLogger())

	frame := cache.Features(suite.prices, 1)

	// Raw prices stand in for the failed frame, and the failure result is
	// cached like a success.
	suite.Equal([]string{"A", "B"}, frame.Columns())

	again := cache.Features(suite.prices, 2)
	suite.Equal(frame.Columns(), again.Columns())
}

func (suite *CacheTestSuite) TestResetForcesRecompute() {
	ctrl := gomock.NewController(suite.T())
	engineer := mocks.NewMockEngineer(ctrl)

	engineer.EXPECT().
		GenerateFeatures(gomock.Any(), gomock.Nil()).
		Return(suite.frame(), nil).
		Times(2)

	cache := features.NewCache(engineer, 100, logger.NewNopLogger())

	cache.Features(suite.prices, 1)
	cache.Reset()
	cache.Features(suite.prices, 2)
}
