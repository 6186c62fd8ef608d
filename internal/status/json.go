package status

import (
	"encoding/json"
	"time"

	"github.com/lingyuan001/rotating-magnetic-field/internal/logic"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Throttle      float64    `json:"throttle"`
	TargetRPM     float64    `json:"target_rpm"`
	EstimatedRPM  float64    `json:"estimated_rpm"`
	MagY          float64    `json:"mag_y_ut"`
	MagTotal      float64    `json:"mag_total_ut"`
	StopMinutes   *float64   `json:"stop_minutes,omitempty"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	CrossingsAccepted int `json:"crossings_accepted"`
	CrossingsRejected int `json:"crossings_rejected"`
	Corrections       int `json:"corrections"`
	StopsFired        int `json:"stops_fired"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Broker      string `json:"broker"`
	HTTPPort    string `json:"http_port"`
	Device      string `json:"device"`
	Baud        int    `json:"baud"`
	ServoPin    int    `json:"servo_pin"`
	LEDPin      int    `json:"led_pin"`
}

func buildInner(snap Snapshot) StatusInner {
	inner := StatusInner{
		Throttle:      snap.Throttle,
		TargetRPM:     snap.TargetRPM,
		EstimatedRPM:  snap.EstimatedRPM,
		MagY:          snap.MagY,
		MagTotal:      snap.MagTotal,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			CrossingsAccepted: snap.Counts.CrossingsAccepted,
			CrossingsRejected: snap.Counts.CrossingsRejected,
			Corrections:       snap.Counts.Corrections,
			StopsFired:        snap.Counts.StopsFired,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Broker:      snap.Config.Broker,
			HTTPPort:    snap.Config.HTTPPort,
			Device:      snap.Config.Device,
			Baud:        snap.Config.Baud,
			ServoPin:    snap.Config.ServoPin,
			LEDPin:      snap.Config.LEDPin,
		},
	}
	if snap.StopMinutes != logic.NoCountdown {
		m := snap.StopMinutes
		inner.StopMinutes = &m
	}
	return inner
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason
	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
