//go:build !linux

package servo

import "errors"

// NewRealServo is not available on non-Linux platforms.
// This stub allows the code to compile for development.
func NewRealServo(pinNumber int) (Servo, error) {
	return nil, errors.New("hardware PWM only supported on Linux")
}
