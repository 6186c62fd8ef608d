package logic

import "time"

// NoCountdown is the remaining-minutes sentinel reported when no stop
// deadline is armed.
const NoCountdown = -1.0

// StopScheduler tracks the optional stop deadline. It uses an
// explicit armed flag rather than the original firmware's one-second
// trigger window, so the stop fires exactly once regardless of tick
// jitter.
type StopScheduler struct {
	deadline time.Time
	armed    bool
}

// NewStopScheduler creates a scheduler with no active countdown.
func NewStopScheduler() *StopScheduler {
	return &StopScheduler{}
}

// Arm schedules a stop the given number of minutes from now.
// Re-arming replaces any existing deadline.
func (s *StopScheduler) Arm(now time.Time, minutes float64) {
	s.deadline = now.Add(time.Duration(minutes * float64(time.Minute)))
	s.armed = true
}

// Disarm cancels any pending countdown.
func (s *StopScheduler) Disarm() {
	s.armed = false
}

// Check reports whether the deadline has expired. It fires at most
// once per Arm; subsequent calls return false.
func (s *StopScheduler) Check(now time.Time) bool {
	if !s.armed || now.Before(s.deadline) {
		return false
	}
	s.armed = false
	return true
}

// Armed reports whether a countdown is pending.
func (s *StopScheduler) Armed() bool {
	return s.armed
}

// RemainingMinutes returns the minutes until the deadline, or
// NoCountdown when nothing is armed or the deadline has passed.
func (s *StopScheduler) RemainingMinutes(now time.Time) float64 {
	if !s.armed || now.After(s.deadline) {
		return NoCountdown
	}
	return s.deadline.Sub(now).Minutes()
}
