//go:build linux

package servo

import (
	"fmt"

	"github.com/stianeikeland/go-rpio/v4"
)

// Standard RC servo timing: 50 Hz frame, 1.0-2.0ms pulse with 1.5ms
// center. The cycle length is chosen so one duty step is 1us.
const (
	pwmFrequency = 50
	cycleLength  = 20000 // duty steps per 20ms frame
	centerUs     = 1500
	rangeUs      = 500 // +-500us maps to throttle +-1
)

// RealServo commands a continuous-rotation servo on a hardware PWM
// pin.
type RealServo struct {
	pin      rpio.Pin
	throttle float64
}

// NewRealServo opens the GPIO memory map and configures the pin for
// 50 Hz PWM at neutral.
func NewRealServo(pinNumber int) (*RealServo, error) {
	if err := rpio.Open(); err != nil {
		return nil, fmt.Errorf("open gpio mem: %w", err)
	}

	pin := rpio.Pin(pinNumber)
	pin.Mode(rpio.Pwm)
	pin.Freq(pwmFrequency * cycleLength)

	s := &RealServo{pin: pin}
	if err := s.SetThrottle(0); err != nil {
		rpio.Close()
		return nil, err
	}
	return s, nil
}

// SetThrottle commands the servo. Out-of-range values are refused
// rather than clamped; range enforcement belongs to the control core.
func (s *RealServo) SetThrottle(v float64) error {
	if v < -1 || v > 1 {
		return fmt.Errorf("throttle %f outside [-1 .. 1]", v)
	}
	pulseUs := uint32(centerUs + v*rangeUs)
	s.pin.DutyCycle(pulseUs, cycleLength)
	s.throttle = v
	return nil
}

// Throttle returns the last commanded value.
func (s *RealServo) Throttle() float64 {
	return s.throttle
}

// Close parks the signal at center pulse and releases the GPIO map.
func (s *RealServo) Close() error {
	s.pin.DutyCycle(centerUs, cycleLength)
	return rpio.Close()
}
