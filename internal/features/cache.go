package features

import (
	"github.com/statarb-lab/pairtrade/internal/logger"
	"github.com/statarb-lab/pairtrade/internal/market"
	"go.uber.org/zap"
)

// DefaultRefreshInterval is how many steps a computed feature frame is served
// before the engineer is asked again.
const DefaultRefreshInterval = 20

// Cache throttles an Engineer: features are recomputed only when the number
// of elapsed steps since the last recompute reaches the refresh interval,
// otherwise the last snapshot is served. This trades feature freshness for
// throughput; the interval is the knob, not a correctness concern.
//
// A recompute failure never aborts the run: the raw price slice is served
// (and cached) in place of the indicator frame.
type Cache struct {
	engineer Engineer
	interval int
	log      *logger.Logger

	primed   bool
	lastStep int
	cached   Frame
}

// NewCache wraps an engineer with a refresh interval. Intervals below 1 fall
// back to the default.
func NewCache(engineer Engineer, interval int, log *logger.Logger) *Cache {
	if interval < 1 {
		interval = DefaultRefreshInterval
	}

	return &Cache{
		engineer: engineer,
		interval: interval,
		log:      log,
	}
}

// Features returns the feature frame as of the given step over the given
// price history. The first call always computes.
func (c *Cache) Features(history *market.PriceTable, step int) Frame {
	if c.primed && step-c.lastStep < c.interval {
		return c.cached
	}

	frame, err := c.engineer.GenerateFeatures(history, nil)
	if err != nil {
		c.log.Warn("feature generation failed, serving raw prices",
			zap.Int("step", step),
			zap.Error(err),
		)

		frame = FrameFromPrices(history)
	}

	c.cached = frame
	c.lastStep = step
	c.primed = true

	return c.cached
}

// Reset clears the cached snapshot so the next call recomputes.
func (c *Cache) Reset() {
	c.primed = false
	c.lastStep = 0
	c.cached = Frame{}
}
