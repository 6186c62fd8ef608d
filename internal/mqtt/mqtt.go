// Package mqtt provides MQTT telemetry publishing with abstraction
// for testing. The daemon only emits; it takes no commands over MQTT.
package mqtt

import (
	"encoding/json"
	"time"

	"github.com/lingyuan001/rotating-magnetic-field/internal/logic"
)

// Topic is the MQTT topic for crossing events.
const Topic = "lab/rotator/events"

// TopicSystem is the MQTT topic for system lifecycle events.
const TopicSystem = "lab/rotator/system"

// Publisher publishes events to MQTT.
type Publisher interface {
	// Publish sends a crossing event to the broker.
	// Returns error if publishing fails (should not crash the process).
	Publish(event logic.CrossingEvent) error

	// PublishSystem sends a system lifecycle event to the broker.
	PublishSystem(event SystemEvent) error

	// Close disconnects from the broker.
	Close() error
}

// ConnectionStatus reports whether the MQTT connection is active.
type ConnectionStatus interface {
	IsConnected() bool
}

// SystemEvent represents a system lifecycle event
// (e.g. startup, shutdown, heartbeat, stop-deadline fired).
type SystemEvent struct {
	Timestamp  time.Time
	Event      string // e.g., "STARTUP", "SHUTDOWN", "HEARTBEAT", "STOPPED"
	Reason     string // e.g., "SIGTERM", "SIGINT" (shutdown only)
	RawPayload []byte // Pre-formatted JSON payload; if set, FormatSystemPayload returns it directly
	Retained   bool   // Whether the message should be retained by the broker
}

// Payload represents the MQTT message payload structure.
type Payload struct {
	Rotator RotatorPayload `json:"rotator"`
}

// RotatorPayload contains the crossing event details.
type RotatorPayload struct {
	Timestamp    string  `json:"timestamp"`
	IntervalSec  float64 `json:"interval_sec"`
	EstimatedRPM float64 `json:"estimated_rpm"`
	Throttle     float64 `json:"throttle"`
	Corrected    bool    `json:"corrected"`
}

// FormatPayload creates the JSON payload for a crossing event.
func FormatPayload(event logic.CrossingEvent) ([]byte, error) {
	payload := Payload{
		Rotator: RotatorPayload{
			Timestamp:    event.Timestamp.UTC().Format(time.RFC3339Nano),
			IntervalSec:  event.Interval.Seconds(),
			EstimatedRPM: event.EstimatedRPM,
			Throttle:     event.Throttle,
			Corrected:    event.Corrected,
		},
	}
	return json.Marshal(payload)
}

// SystemPayload represents the MQTT message payload for system events.
// Used for simple events that don't carry a full status snapshot.
type SystemPayload struct {
	System SystemPayloadInner `json:"system"`
}

// SystemPayloadInner contains the system event details.
type SystemPayloadInner struct {
	Timestamp string `json:"timestamp"`
	Event     string `json:"event"`
	Reason    string `json:"reason,omitempty"`
}

// FormatSystemPayload creates the JSON payload for a system event.
// If event.RawPayload is set, it is returned directly (used for full
// status snapshots).
func FormatSystemPayload(event SystemEvent) ([]byte, error) {
	if event.RawPayload != nil {
		return event.RawPayload, nil
	}

	payload := SystemPayload{
		System: SystemPayloadInner{
			Timestamp: event.Timestamp.UTC().Format(time.RFC3339),
			Event:     event.Event,
			Reason:    event.Reason,
		},
	}
	return json.Marshal(payload)
}
