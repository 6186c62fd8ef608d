// Package servo drives the continuous-rotation servo with hardware
// abstraction. The real implementation uses the Pi's hardware PWM.
// The fake implementation allows testing without hardware.
package servo

// Servo accepts a normalized throttle command.
type Servo interface {
	// SetThrottle commands the servo. -1 is full reverse, +1 full
	// forward; values around the deadband produce no motion.
	SetThrottle(v float64) error

	// Throttle returns the last commanded value.
	Throttle() float64

	// Close releases PWM resources, leaving the signal at neutral.
	Close() error
}

// DefaultPin is the BCM pin carrying the servo signal. Hardware PWM
// is only available on BCM 12, 13, 18 and 19.
const DefaultPin = 18
