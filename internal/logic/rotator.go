package logic

import "time"

// Rotator owns all control state: the filter pair, the crossing
// detector, the period history, the speed controller, and the stop
// scheduler. It is mutated only by the single control loop; Tick and
// the command mutators must never be called concurrently.
type Rotator struct {
	cfg Config

	filter     *Filter
	detector   *Detector
	history    *History
	controller *Controller
	stopper    *StopScheduler

	counts Counts
}

// NewRotator creates a Rotator with all state at documented defaults:
// filters at zero, history seeded, throttle at neutral, no target
// RPM, no stop countdown.
func NewRotator(cfg Config, startTime time.Time) *Rotator {
	return &Rotator{
		cfg:        cfg,
		filter:     NewFilter(cfg.LongAlpha, cfg.ShortAlpha),
		detector:   NewDetector(cfg.MinInterval, cfg.IntervalDivisor, cfg.SeedInterval, startTime),
		history:    NewHistory(cfg.SeedInterval),
		controller: NewController(cfg),
		stopper:    NewStopScheduler(),
	}
}

// Tick advances the control loop by one sample: filter update,
// crossing detection, speed correction, stop check. The Y axis is the
// one the rotating magnet sweeps; the other components only feed the
// magnitude diagnostics.
func (r *Rotator) Tick(sample Sample) TickResult {
	before := r.controller.Throttle()

	var result TickResult
	if r.filter.Update(sample.Y) {
		if interval, ok := r.detector.Offer(sample.Time); ok {
			r.history.Push(interval)
			r.counts.CrossingsAccepted++

			throttle, corrected := r.controller.Correct(r.history.RPM())
			if corrected {
				r.counts.Corrections++
			}
			result.Crossing = &CrossingEvent{
				Timestamp:    sample.Time,
				Interval:     interval,
				EstimatedRPM: r.history.RPM(),
				Throttle:     throttle,
				Corrected:    corrected,
			}
		} else {
			r.counts.CrossingsRejected++
		}
	}

	if r.stopper.Check(sample.Time) && !r.controller.AtNeutral() {
		r.controller.Neutral()
		r.counts.StopsFired++
		result.Stopped = true
	}

	result.Throttle = r.controller.Throttle()
	result.ThrottleChanged = result.Throttle != before
	return result
}

// StopNow forces the throttle to neutral and disables closed-loop
// correction. Any pending countdown is cancelled.
func (r *Rotator) StopNow() {
	r.controller.Neutral()
	r.stopper.Disarm()
}

// ScheduleStop arms the stop countdown the given minutes from now.
func (r *Rotator) ScheduleStop(now time.Time, minutes float64) {
	r.stopper.Arm(now, minutes)
}

// SetThrottle sets the actuator command directly.
func (r *Rotator) SetThrottle(v float64) {
	r.controller.SetThrottle(v)
}

// SetTargetRPM sets the closed-loop target rate. Returns whether the
// throttle was bootstrapped off neutral.
func (r *Rotator) SetTargetRPM(rpm float64) bool {
	return r.controller.SetTargetRPM(rpm)
}

// Throttle returns the current actuator command.
func (r *Rotator) Throttle() float64 {
	return r.controller.Throttle()
}

// TargetRPM returns the closed-loop target (0 = open loop).
func (r *Rotator) TargetRPM() float64 {
	return r.controller.TargetRPM()
}

// EstimatedRPM returns the current rotation-rate estimate.
func (r *Rotator) EstimatedRPM() float64 {
	return r.history.RPM()
}

// RemainingMinutes returns minutes until the armed stop, or
// NoCountdown.
func (r *Rotator) RemainingMinutes(now time.Time) float64 {
	return r.stopper.RemainingMinutes(now)
}

// Diagnostics returns the filter averages, the last accepted interval
// and the mean stored interval, for the per-tick debug line.
func (r *Rotator) Diagnostics() (longAvg, shortAvg, lastInterval, meanInterval float64) {
	longAvg, shortAvg = r.filter.Averages()
	return longAvg, shortAvg, r.detector.LastInterval().Seconds(), r.history.Mean()
}

// CountsSnapshot returns a copy of the event counters.
func (r *Rotator) CountsSnapshot() Counts {
	return r.counts
}
