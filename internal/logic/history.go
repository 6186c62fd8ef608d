package logic

import (
	"fmt"
	"time"
)

// History is the fixed-size ring of the most recent crossing
// intervals. It always holds exactly HistorySize entries; at startup
// every slot carries the seed interval, so the estimate is biased
// until a full rotation's worth of real intervals has replaced them.
type History struct {
	intervals [HistorySize]float64 // seconds
	index     int
}

// NewHistory creates a History with every slot seeded.
func NewHistory(seed time.Duration) *History {
	h := &History{}
	for i := range h.intervals {
		h.intervals[i] = seed.Seconds()
	}
	return h
}

// Push overwrites the oldest slot with the given interval. The
// detector guard guarantees strictly positive intervals; a
// non-positive one indicates a caller bug, not a sensor condition.
func (h *History) Push(interval time.Duration) {
	if interval <= 0 {
		panic(fmt.Sprintf("logic: non-positive crossing interval %v", interval))
	}
	h.index++
	if h.index >= HistorySize {
		h.index = 0
	}
	h.intervals[h.index] = interval.Seconds()
}

// Sum returns the total of the stored intervals in seconds.
func (h *History) Sum() float64 {
	var sum float64
	for _, d := range h.intervals {
		sum += d
	}
	return sum
}

// Mean returns the mean stored interval in seconds.
func (h *History) Mean() float64 {
	return h.Sum() / HistorySize
}

// RPM returns the rotation-rate estimate in revolutions per minute.
// The sum is strictly positive by construction, so the result is
// always finite.
func (h *History) RPM() float64 {
	return 60 * HistorySize / h.Sum()
}
