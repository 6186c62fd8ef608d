// Package console provides the operator's line-oriented text channel
// with hardware abstraction. The real implementation talks to a
// serial port. The fake implementation allows testing without one.
package console

// Console is a raw character stream in and free-text lines out.
type Console interface {
	// Poll returns whatever input bytes are pending, possibly none.
	// It never blocks; draining happens entirely within one control
	// tick.
	Poll() ([]byte, error)

	// WriteLine writes one output line, appending the terminator.
	WriteLine(s string) error

	// Close releases the port.
	Close() error
}
