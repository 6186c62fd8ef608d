package mag

import (
	"errors"
	"math"
)

// FakeSensor is a test double that returns scripted readings.
type FakeSensor struct {
	// Readings contains scripted values to return. Each call to
	// Read() consumes the next one; the last repeats when exhausted.
	Readings []Reading

	// index tracks current position in Readings
	index int

	// Closed tracks if Close was called
	Closed bool

	// ReadError, if set, will be returned by Read()
	ReadError error
}

// NewFakeSensor creates a FakeSensor with the given readings.
func NewFakeSensor(readings []Reading) *FakeSensor {
	return &FakeSensor{Readings: readings}
}

// Read returns the next scripted reading.
func (f *FakeSensor) Read() (Reading, error) {
	if f.ReadError != nil {
		return Reading{}, f.ReadError
	}
	if len(f.Readings) == 0 {
		return Reading{}, errors.New("no readings configured")
	}
	r := f.Readings[f.index]
	if f.index < len(f.Readings)-1 {
		f.index++
	}
	return r, nil
}

// Close marks the sensor as closed.
func (f *FakeSensor) Close() error {
	f.Closed = true
	return nil
}

// Reset rewinds the scripted readings.
func (f *FakeSensor) Reset() {
	f.index = 0
	f.Closed = false
}

// Rotation synthesizes n readings of a magnet turning at the given
// revolutions per minute sampled at the given rate, with amplitude in
// microtesla on the Y axis over an ambient offset. Useful for
// steering the crossing detector in tests.
func Rotation(n int, rpm, sampleHz, amplitude, ambient float64) []Reading {
	readings := make([]Reading, n)
	omega := 2 * math.Pi * rpm / 60
	for i := range readings {
		t := float64(i) / sampleHz
		readings[i] = Reading{
			X: 0.3 * amplitude * math.Cos(omega*t),
			Y: ambient + amplitude*math.Sin(omega*t),
			Z: 0.1 * amplitude,
		}
	}
	return readings
}
