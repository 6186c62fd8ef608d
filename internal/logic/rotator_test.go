package logic

import (
	"math"
	"testing"
	"time"
)

const testTick = 100 * time.Millisecond

// tickWave drives the rotator with a synthetic Y-axis sinusoid at the
// given RPM for n ticks and returns the results.
func tickWave(r *Rotator, start time.Time, rpm float64, n int) []TickResult {
	results := make([]TickResult, 0, n)
	omega := 2 * math.Pi * rpm / 60
	for i := 1; i <= n; i++ {
		t := start.Add(time.Duration(i) * testTick)
		elapsed := t.Sub(start).Seconds()
		sample := Sample{
			X:    10,
			Y:    50 * math.Sin(omega*elapsed),
			Z:    5,
			Time: t,
		}
		results = append(results, r.Tick(sample))
	}
	return results
}

func TestRotatorEstimatesRotationRate(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRotator(DefaultConfig(), start)

	// 60 seconds of a 30 RPM field: one crossing every 2 seconds.
	tickWave(r, start, 30, 600)

	counts := r.CountsSnapshot()
	if counts.CrossingsAccepted < 25 || counts.CrossingsAccepted > 32 {
		t.Errorf("expected ~30 accepted crossings in 60s at 30 RPM, got %d", counts.CrossingsAccepted)
	}
	if est := r.EstimatedRPM(); est < 25 || est > 35 {
		t.Errorf("estimated rate %f, want ~30", est)
	}
}

func TestRotatorWarmupBias(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRotator(DefaultConfig(), start)

	// Before any crossing the estimate is the seeded 60 RPM, however
	// the field actually behaves. Documented warm-up behavior.
	if est := r.EstimatedRPM(); est != 60 {
		t.Errorf("expected seeded estimate 60 RPM, got %f", est)
	}
}

func TestRotatorOpenLoopLeavesThrottle(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRotator(DefaultConfig(), start)
	r.SetThrottle(0.42)

	tickWave(r, start, 30, 300)

	if got := r.Throttle(); got != 0.42 {
		t.Errorf("throttle moved in open loop: %f", got)
	}
	if c := r.CountsSnapshot(); c.Corrections != 0 {
		t.Errorf("expected no corrections in open loop, got %d", c.Corrections)
	}
}

func TestRotatorClosedLoopRaisesThrottle(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRotator(DefaultConfig(), start)
	r.SetTargetRPM(100)

	// Field turns at 30 RPM, target is 100: every correction pushes
	// the throttle up.
	results := tickWave(r, start, 30, 600)

	counts := r.CountsSnapshot()
	if counts.Corrections == 0 {
		t.Fatal("expected corrections with a target set")
	}
	cfg := DefaultConfig()
	if got := r.Throttle(); got <= cfg.BootstrapThrottle {
		t.Errorf("throttle should have risen above bootstrap %f, got %f", cfg.BootstrapThrottle, got)
	}

	// Corrections happen only on crossing ticks.
	for i, res := range results {
		if res.ThrottleChanged && res.Crossing == nil && !res.Stopped {
			t.Errorf("tick %d: throttle changed without a crossing", i)
		}
	}
}

func TestRotatorCorrectionQuantizedToCrossings(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRotator(DefaultConfig(), start)
	r.SetTargetRPM(100)

	tickWave(r, start, 30, 600)

	counts := r.CountsSnapshot()
	if counts.Corrections != counts.CrossingsAccepted {
		t.Errorf("corrections (%d) should equal accepted crossings (%d) with a target set",
			counts.Corrections, counts.CrossingsAccepted)
	}
}

func TestRotatorStopDeadline(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cfg := DefaultConfig()
	r := NewRotator(cfg, start)
	r.SetThrottle(0.5)
	r.ScheduleStop(start, 1)

	// Quiet field: no crossings, just the scheduler.
	quiet := func(at time.Time) TickResult {
		return r.Tick(Sample{Time: at})
	}

	if res := quiet(start.Add(59 * time.Second)); res.Stopped {
		t.Fatal("stopped before the deadline")
	}

	res := quiet(start.Add(61 * time.Second))
	if !res.Stopped {
		t.Fatal("expected stop at deadline")
	}
	if res.Throttle != cfg.NeutralThrottle {
		t.Errorf("expected neutral throttle %f, got %f", cfg.NeutralThrottle, res.Throttle)
	}
	if !res.ThrottleChanged {
		t.Error("stop must report the throttle change")
	}
	if r.TargetRPM() != 0 {
		t.Errorf("expected target cleared on stop, got %f", r.TargetRPM())
	}

	// The immediately following tick must not re-trigger.
	if res := quiet(start.Add(61*time.Second + testTick)); res.Stopped {
		t.Error("stop re-triggered on the next tick")
	}

	if c := r.CountsSnapshot(); c.StopsFired != 1 {
		t.Errorf("expected 1 stop fired, got %d", c.StopsFired)
	}
}

func TestRotatorStopAtNeutralIsSilent(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRotator(DefaultConfig(), start)
	r.ScheduleStop(start, 1)

	res := r.Tick(Sample{Time: start.Add(2 * time.Minute)})
	if res.Stopped {
		t.Error("deadline on an already-neutral servo must not report a stop")
	}
	if c := r.CountsSnapshot(); c.StopsFired != 0 {
		t.Errorf("expected no stops fired, got %d", c.StopsFired)
	}
}

func TestRotatorStopNowCancelsCountdown(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRotator(DefaultConfig(), start)
	r.SetThrottle(0.5)
	r.ScheduleStop(start, 1)
	r.StopNow()

	if got := r.RemainingMinutes(start); got != NoCountdown {
		t.Errorf("expected countdown cancelled, got %f", got)
	}
	res := r.Tick(Sample{Time: start.Add(2 * time.Minute)})
	if res.Stopped {
		t.Error("cancelled deadline fired")
	}
}

func TestRotatorBootstrap(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cfg := DefaultConfig()
	r := NewRotator(cfg, start)

	if !r.SetTargetRPM(30) {
		t.Fatal("expected bootstrap from neutral")
	}
	if r.Throttle() != cfg.BootstrapThrottle {
		t.Errorf("expected throttle %f, got %f", cfg.BootstrapThrottle, r.Throttle())
	}
	if r.TargetRPM() != 30 {
		t.Errorf("expected target 30, got %f", r.TargetRPM())
	}
}

func TestRotatorRemainingMinutes(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRotator(DefaultConfig(), start)

	if got := r.RemainingMinutes(start); got != NoCountdown {
		t.Errorf("expected sentinel with no countdown, got %f", got)
	}
	r.ScheduleStop(start, 10)
	got := r.RemainingMinutes(start.Add(time.Minute))
	if math.Abs(got-9) > 1e-9 {
		t.Errorf("expected 9 minutes remaining, got %f", got)
	}
}

func TestRotatorRejectsCrossingBursts(t *testing.T) {
	// A square pulse burst produces candidate crossings faster than
	// the debounce allows; all but the paced ones must be rejected.
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := NewRotator(DefaultConfig(), start)

	// Alternate +-100 every tick: a rising candidate every other
	// tick, with the first arriving inside the seed-interval guard.
	for i := 1; i <= 100; i++ {
		y := -100.0
		if i%2 == 1 {
			y = 100.0
		}
		r.Tick(Sample{Y: y, Time: start.Add(time.Duration(i) * testTick)})
	}

	counts := r.CountsSnapshot()
	if counts.CrossingsRejected == 0 {
		t.Error("expected rejected crossings in a burst")
	}
	if counts.CrossingsAccepted == 0 {
		t.Error("expected some crossings still accepted")
	}
}
