// Package status provides a thread-safe status tracker for the
// field-rotator daemon, read by HTTP handlers, plus the formatting of
// the per-tick console lines.
package status

import (
	"sync"
	"time"

	"github.com/lingyuan001/rotating-magnetic-field/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	HeartbeatMs int64
	Broker      string
	HTTPPort    string
	Device      string
	Baud        int
	ServoPin    int
	LEDPin      int
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type — safe to use after the lock is released.
type Snapshot struct {
	Throttle     float64
	TargetRPM    float64
	EstimatedRPM float64
	// MagY and MagTotal are the last sampled Y component and field
	// magnitude, in microtesla.
	MagY     float64
	MagTotal float64
	// StopMinutes is the remaining countdown, or logic.NoCountdown.
	StopMinutes   float64
	Counts        logic.Counts
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime:   startTime,
			StopMinutes: logic.NoCountdown,
			Config:      cfg,
		},
	}
}

// Update sets the control values and event counts.
// Called from runLoop on every tick.
func (t *Tracker) Update(throttle, targetRPM, estimatedRPM, magY, magTotal, stopMinutes float64, counts logic.Counts) {
	t.mu.Lock()
	t.snap.Throttle = throttle
	t.snap.TargetRPM = targetRPM
	t.snap.EstimatedRPM = estimatedRPM
	t.snap.MagY = magY
	t.snap.MagTotal = magTotal
	t.snap.StopMinutes = stopMinutes
	t.snap.Counts = counts
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = time.Now()
	return s
}
