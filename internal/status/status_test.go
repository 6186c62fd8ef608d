package status

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/lingyuan001/rotating-magnetic-field/internal/logic"
)

func testConfig() Config {
	return Config{
		PollMs:      100,
		HeartbeatMs: 900000,
		Broker:      "tcp://192.168.1.200:1883",
		HTTPPort:    ":80",
		Device:      "/dev/ttyAMA0",
		Baud:        115200,
		ServoPin:    18,
		LEDPin:      21,
	}
}

func TestTrackerInitialSnapshot(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	snap := tr.Snapshot()
	if snap.StartTime != start {
		t.Errorf("start time = %v, want %v", snap.StartTime, start)
	}
	if snap.StopMinutes != logic.NoCountdown {
		t.Errorf("expected no countdown sentinel, got %f", snap.StopMinutes)
	}
	if snap.Config.Broker != "tcp://192.168.1.200:1883" {
		t.Errorf("config not carried into snapshot: %+v", snap.Config)
	}
	if snap.MQTTConnected {
		t.Error("MQTT should start disconnected")
	}
}

func TestTrackerUpdate(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(start, testConfig())

	counts := logic.Counts{CrossingsAccepted: 7, CrossingsRejected: 2, Corrections: 5, StopsFired: 1}
	tr.Update(0.42, 30, 28.5, -12.5, 55.1, 9.5, counts)

	snap := tr.Snapshot()
	if snap.Throttle != 0.42 || snap.TargetRPM != 30 || snap.EstimatedRPM != 28.5 {
		t.Errorf("control values not recorded: %+v", snap)
	}
	if snap.MagY != -12.5 || snap.MagTotal != 55.1 {
		t.Errorf("field values not recorded: %+v", snap)
	}
	if snap.StopMinutes != 9.5 {
		t.Errorf("stop minutes = %f, want 9.5", snap.StopMinutes)
	}
	if snap.Counts != counts {
		t.Errorf("counts = %+v, want %+v", snap.Counts, counts)
	}
}

func TestTrackerSetMQTTConnected(t *testing.T) {
	tr := NewTracker(time.Now(), testConfig())

	tr.SetMQTTConnected(true)
	if !tr.Snapshot().MQTTConnected {
		t.Error("expected connected")
	}
	tr.SetMQTTConnected(false)
	if tr.Snapshot().MQTTConnected {
		t.Error("expected disconnected")
	}
}

func TestSnapshotUptime(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{StartTime: start, Now: start.Add(90 * time.Second)}
	if got := snap.Uptime(); got != 90*time.Second {
		t.Errorf("uptime = %v, want 90s", got)
	}
}

func TestFormatStatusLine(t *testing.T) {
	got := FormatStatusLine(0.017, -12.4, 55.6, 28.51, 30, 9.5)
	want := "Status: speed = 0.017, magy/tot (uT) = -12/56, rpm_now/set = 28.51/30.00, stop in 9.5"
	if got != want {
		t.Errorf("status line\n got %q\nwant %q", got, want)
	}
}

func TestFormatStatusLineNoCountdown(t *testing.T) {
	got := FormatStatusLine(0.5, 0, 50, 60, 60, logic.NoCountdown)
	if !strings.HasSuffix(got, "stop in -1.0") {
		t.Errorf("expected sentinel countdown in line, got %q", got)
	}
}

func TestFormatDebugLine(t *testing.T) {
	got := FormatDebugLine(50.1, 62.9, 2.04, 1.97)
	want := "  valmed/flt = 50.1/62.9, dtime = 2.04, <delist> = 1.97"
	if got != want {
		t.Errorf("debug line\n got %q\nwant %q", got, want)
	}
}

func TestFormatReading(t *testing.T) {
	got := FormatReading(3, 4, 12, 13)
	want := "Magnetometer (uT) - x, y, z, tot: 3.000000, 4.000000, 12.000000, 13.000000"
	if got != want {
		t.Errorf("reading line\n got %q\nwant %q", got, want)
	}
}

func TestFormatEcho(t *testing.T) {
	if got := FormatEcho("rpm 3"); got != "> rpm 3" {
		t.Errorf("echo = %q", got)
	}
}

func TestFormatJSON(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Throttle:      0.42,
		TargetRPM:     30,
		EstimatedRPM:  28.5,
		MagY:          -12.5,
		MagTotal:      55.1,
		StopMinutes:   9.5,
		Counts:        logic.Counts{CrossingsAccepted: 7, CrossingsRejected: 2, Corrections: 5, StopsFired: 1},
		StartTime:     start,
		Now:           start.Add(time.Hour),
		MQTTConnected: true,
		Config:        testConfig(),
	}

	var decoded StatusJSON
	if err := json.Unmarshal(FormatJSON(snap), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	inner := decoded.Status
	if inner.Throttle != 0.42 || inner.TargetRPM != 30 || inner.EstimatedRPM != 28.5 {
		t.Errorf("control values wrong: %+v", inner)
	}
	if inner.StopMinutes == nil || *inner.StopMinutes != 9.5 {
		t.Errorf("stop_minutes = %v, want 9.5", inner.StopMinutes)
	}
	if inner.UptimeSeconds != 3600 {
		t.Errorf("uptime_seconds = %d, want 3600", inner.UptimeSeconds)
	}
	if inner.StartTime != "2026-01-01T12:00:00Z" {
		t.Errorf("start_time = %q", inner.StartTime)
	}
	if !inner.MQTT.Connected || inner.MQTT.Broker != "tcp://192.168.1.200:1883" {
		t.Errorf("mqtt block wrong: %+v", inner.MQTT)
	}
	if inner.Counts.CrossingsAccepted != 7 || inner.Counts.StopsFired != 1 {
		t.Errorf("counts wrong: %+v", inner.Counts)
	}
	if inner.Config.ServoPin != 18 || inner.Config.Baud != 115200 {
		t.Errorf("config wrong: %+v", inner.Config)
	}
	if inner.Event != "" || inner.Reason != "" {
		t.Errorf("web status must not carry an event: %+v", inner)
	}
}

func TestFormatJSONOmitsInactiveCountdown(t *testing.T) {
	snap := Snapshot{StopMinutes: logic.NoCountdown, Now: time.Now(), StartTime: time.Now()}
	if strings.Contains(string(FormatJSON(snap)), "stop_minutes") {
		t.Error("inactive countdown should be omitted from JSON")
	}
}

func TestFormatStatusEvent(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	snap := Snapshot{
		Throttle:    0.017,
		StopMinutes: logic.NoCountdown,
		StartTime:   start,
		Now:         start,
		Config:      testConfig(),
	}

	var decoded StatusJSON
	if err := json.Unmarshal(FormatStatusEvent(snap, "SHUTDOWN", "signal"), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if decoded.Status.Event != "SHUTDOWN" {
		t.Errorf("event = %q, want SHUTDOWN", decoded.Status.Event)
	}
	if decoded.Status.Reason != "signal" {
		t.Errorf("reason = %q, want signal", decoded.Status.Reason)
	}
}
