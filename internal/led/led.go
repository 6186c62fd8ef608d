// Package led drives the rotation indicator LED with hardware
// abstraction. The real implementation uses the Linux GPIO character
// device. The fake implementation allows testing without hardware.
//
// The loop toggles the indicator on every accepted crossing, so a
// steady blink means the detector has rotation lock.
package led

// Indicator is a single on/off output.
type Indicator interface {
	// Set drives the LED on or off.
	Set(on bool) error

	// Toggle flips the LED and returns the new state.
	Toggle() (bool, error)

	// Close releases GPIO resources.
	Close() error
}

// DefaultPin is the BCM pin driving the indicator LED.
const DefaultPin = 21
