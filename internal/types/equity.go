package types

import (
	"time"
)

// EquityCurve is the dated series of total portfolio value, one point per
// simulated timestep. The first value is the initial capital. A curve shorter
// than the price index means the run halted early on a risk breach.
type EquityCurve struct {
	Dates  []time.Time
	Values []float64
}

// Append adds one point to the curve.
func (c *EquityCurve) Append(date time.Time, value float64) {
	c.Dates = append(c.Dates, date)
	c.Values = append(c.Values, value)
}

// Len returns the number of recorded points.
func (c *EquityCurve) Len() int {
	return len(c.Values)
}

// First returns the first recorded value.
func (c *EquityCurve) First() (float64, bool) {
	if len(c.Values) == 0 {
		return 0, false
	}

	return c.Values[0], true
}

// Last returns the most recent recorded value.
func (c *EquityCurve) Last() (float64, bool) {
	if len(c.Values) == 0 {
		return 0, false
	}

	return c.Values[len(c.Values)-1], true
}

// Returns computes the periodic percentage changes of the curve. The result
// has Len()-1 entries; steps where the prior value is zero contribute zero.
func (c *EquityCurve) Returns() []float64 {
	if len(c.Values) < 2 {
		return nil
	}

	out := make([]float64, 0, len(c.Values)-1)

	for i := 1; i < len(c.Values); i++ {
		prev := c.Values[i-1]
		if prev == 0 {
			out = append(out, 0)
			continue
		}

		out = append(out, (c.Values[i]-prev)/prev)
	}

	return out
}

// Clone returns an independent copy of the curve.
func (c *EquityCurve) Clone() EquityCurve {
	out := EquityCurve{
		Dates:  make([]time.Time, len(c.Dates)),
		Values: make([]float64, len(c.Values)),
	}
	copy(out.Dates, c.Dates)
	copy(out.Values, c.Values)

	return out
}
