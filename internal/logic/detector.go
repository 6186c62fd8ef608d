package logic

import "time"

// Detector validates filter crossings and turns them into measured
// rotation intervals. A candidate crossing is accepted only if enough
// time has passed since the last accepted one: at least MinInterval,
// and at least lastInterval/IntervalDivisor. Anything faster is filter
// noise from a single magnet pass and is dropped without trace.
type Detector struct {
	minInterval     time.Duration
	intervalDivisor float64

	lastAccepted time.Time
	lastInterval time.Duration
}

// NewDetector creates a Detector. startTime anchors the first
// interval measurement; the first accepted crossing measures against
// it, so the very first interval is as biased as the seeded history.
func NewDetector(minInterval time.Duration, intervalDivisor float64, seed time.Duration, startTime time.Time) *Detector {
	return &Detector{
		minInterval:     minInterval,
		intervalDivisor: intervalDivisor,
		lastAccepted:    startTime,
		lastInterval:    seed,
	}
}

// Offer presents a candidate crossing at the given instant. It
// returns the measured interval and true on acceptance, or zero and
// false when the candidate is debounced away.
func (d *Detector) Offer(now time.Time) (time.Duration, bool) {
	relative := time.Duration(float64(d.lastInterval) / d.intervalDivisor)
	guard := relative
	if guard < d.minInterval {
		guard = d.minInterval
	}
	if now.Sub(d.lastAccepted) < guard {
		return 0, false
	}

	interval := now.Sub(d.lastAccepted)
	d.lastAccepted = now
	d.lastInterval = interval
	return interval, true
}

// LastInterval returns the most recently accepted interval.
func (d *Detector) LastInterval() time.Duration {
	return d.lastInterval
}
