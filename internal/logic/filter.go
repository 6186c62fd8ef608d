package logic

import "math"

// Filter maintains the pair of exponential moving averages over one
// scalar sensor axis. The slow average tracks the ambient field, the
// fast average tracks the rotating magnet sweeping past the probe.
type Filter struct {
	longAlpha  float64
	shortAlpha float64

	longAvg      float64
	shortAvg     float64
	prevShortAvg float64
}

// NewFilter creates a Filter with the given EMA coefficients.
func NewFilter(longAlpha, shortAlpha float64) *Filter {
	return &Filter{
		longAlpha:  longAlpha,
		shortAlpha: shortAlpha,
	}
}

// Update feeds one raw sample into both averages and reports whether
// the fast average rose above the slow average on this sample (a
// strict rising edge; holding above does not re-trigger).
func (f *Filter) Update(sample float64) bool {
	f.longAvg = (1-f.longAlpha)*f.longAvg + f.longAlpha*sample
	f.prevShortAvg = f.shortAvg
	f.shortAvg = (1-f.shortAlpha)*f.shortAvg + f.shortAlpha*sample

	return f.shortAvg > f.longAvg && f.prevShortAvg <= f.longAvg
}

// Averages returns the current slow and fast averages (for diagnostics).
func (f *Filter) Averages() (longAvg, shortAvg float64) {
	return f.longAvg, f.shortAvg
}

func norm3(x, y, z float64) float64 {
	return math.Sqrt(x*x + y*y + z*z)
}
