// Package logic contains the pure control core of the field rotator.
// This package has NO external dependencies (no I2C, PWM, serial, or
// time.Sleep). Time is always injectable via time.Time parameters.
package logic

import "time"

// HistorySize is the number of crossing intervals averaged for the
// rotation-rate estimate.
const HistorySize = 5

// ClampPolicy selects how the controller bounds the throttle after a
// correction step.
type ClampPolicy int

const (
	// ClampSymmetric bounds the throttle to [MinThrottle, MaxThrottle].
	ClampSymmetric ClampPolicy = iota
	// ClampUpperOnly bounds only the upper end, reproducing the
	// original firmware which never clamped negative excursions.
	ClampUpperOnly
)

// Config holds the named control constants. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// LongAlpha is the EMA coefficient of the slow filter
	// (time constant ~10s at a 10 Hz tick rate).
	LongAlpha float64
	// ShortAlpha is the EMA coefficient of the fast filter
	// (time constant ~0.5s).
	ShortAlpha float64

	// MinInterval is the absolute debounce floor between accepted
	// crossings.
	MinInterval time.Duration
	// IntervalDivisor scales the relative debounce: a candidate is
	// rejected if it arrives sooner than lastInterval/IntervalDivisor
	// after the previous accepted crossing.
	IntervalDivisor float64
	// SeedInterval seeds the period history at startup. The estimate
	// is biased until all slots have been overwritten; accepted
	// warm-up behavior.
	SeedInterval time.Duration

	// ErrorFloor is added to the absolute RPM error so the correction
	// step never reaches zero near convergence.
	ErrorFloor float64
	// StepDivisor converts the floored RPM error into a throttle step.
	StepDivisor float64

	// NeutralThrottle is the value producing no motion, offset from
	// zero to compensate for hardware deadband tolerance.
	NeutralThrottle float64
	// MinThrottle and MaxThrottle bound the actuator command.
	MinThrottle float64
	MaxThrottle float64
	// BootstrapThrottle is applied when a target RPM is set while the
	// servo sits at neutral, so the rotor starts moving and crossings
	// begin to arrive.
	BootstrapThrottle float64

	// MaxRPM bounds the rpm command argument.
	MaxRPM float64
	// MaxStopMinutes bounds the stop command argument (30 days).
	MaxStopMinutes float64

	// Clamp selects the post-correction throttle bound policy.
	Clamp ClampPolicy
}

// DefaultConfig returns the tuning the hardware was calibrated with.
func DefaultConfig() Config {
	return Config{
		LongAlpha:         0.01,
		ShortAlpha:        0.2,
		MinInterval:       100 * time.Millisecond,
		IntervalDivisor:   5,
		SeedInterval:      time.Second,
		ErrorFloor:        0.5,
		StepDivisor:       1000,
		NeutralThrottle:   0.017,
		MinThrottle:       -1.0,
		MaxThrottle:       1.0,
		BootstrapThrottle: 0.1,
		MaxRPM:            150,
		MaxStopMinutes:    43200,
		Clamp:             ClampSymmetric,
	}
}

// Sample is one magnetometer reading in microtesla.
type Sample struct {
	X, Y, Z float64
	Time    time.Time
}

// Magnitude returns the Euclidean norm of the three components.
func (s Sample) Magnitude() float64 {
	return norm3(s.X, s.Y, s.Z)
}

// CrossingEvent describes one accepted crossing of the fast filter
// over the slow filter, the proxy for one mechanical rotation.
type CrossingEvent struct {
	Timestamp time.Time
	// Interval is the time since the previously accepted crossing.
	Interval time.Duration
	// EstimatedRPM is the rate estimate after this interval was
	// recorded.
	EstimatedRPM float64
	// Throttle is the actuator command after any correction.
	Throttle float64
	// Corrected reports whether the speed controller adjusted the
	// throttle (it only does when a target RPM is set).
	Corrected bool
}

// TickResult is the outcome of one control tick.
type TickResult struct {
	// Crossing is non-nil when this tick accepted a crossing.
	Crossing *CrossingEvent
	// Stopped is true when the stop deadline fired on this tick.
	Stopped bool
	// Throttle is the actuator command after this tick.
	Throttle float64
	// ThrottleChanged reports whether Throttle differs from the value
	// before the tick and must be committed to the servo.
	ThrottleChanged bool
}

// Counts tracks event totals since startup.
type Counts struct {
	CrossingsAccepted int
	CrossingsRejected int
	Corrections       int
	StopsFired        int
}
