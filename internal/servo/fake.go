package servo

// FakeServo records commanded throttles for test assertions.
type FakeServo struct {
	// History contains every throttle commanded, in order.
	History []float64

	// Closed tracks if Close was called.
	Closed bool

	// SetError, if set, will be returned by SetThrottle.
	SetError error

	throttle float64
}

// NewFakeServo creates a FakeServo resting at zero throttle.
func NewFakeServo() *FakeServo {
	return &FakeServo{}
}

// SetThrottle records the command.
func (f *FakeServo) SetThrottle(v float64) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.throttle = v
	f.History = append(f.History, v)
	return nil
}

// Throttle returns the last commanded value.
func (f *FakeServo) Throttle() float64 {
	return f.throttle
}

// Close marks the servo as closed.
func (f *FakeServo) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded history.
func (f *FakeServo) Reset() {
	f.History = nil
	f.Closed = false
	f.SetError = nil
	f.throttle = 0
}
