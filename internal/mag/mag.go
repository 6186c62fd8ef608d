// Package mag provides magnetometer sampling with hardware
// abstraction. The real implementation drives an MLX90393 over I2C.
// The fake implementation allows testing without hardware.
package mag

import "math"

// Reading is one field measurement, components in microtesla.
type Reading struct {
	X, Y, Z float64
}

// Magnitude returns the Euclidean norm of the three components.
func (r Reading) Magnitude() float64 {
	return math.Sqrt(r.X*r.X + r.Y*r.Y + r.Z*r.Z)
}

// Sensor yields one field reading per call.
type Sensor interface {
	// Read samples the probe once.
	Read() (Reading, error)

	// Close releases bus resources.
	Close() error
}

// DefaultAddr is the MLX90393 I2C address with A0/A1 strapped low.
const DefaultAddr = 0x0C
