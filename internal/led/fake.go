package led

// FakeIndicator records LED states for test assertions.
type FakeIndicator struct {
	// States contains every state set, in order.
	States []bool

	// SetError, if set, will be returned by Set and Toggle.
	SetError error

	// Closed tracks if Close was called.
	Closed bool

	on bool
}

// NewFakeIndicator creates a FakeIndicator, initially off.
func NewFakeIndicator() *FakeIndicator {
	return &FakeIndicator{}
}

// Set records the state.
func (f *FakeIndicator) Set(on bool) error {
	if f.SetError != nil {
		return f.SetError
	}
	f.on = on
	f.States = append(f.States, on)
	return nil
}

// Toggle flips the recorded state.
func (f *FakeIndicator) Toggle() (bool, error) {
	if err := f.Set(!f.on); err != nil {
		return f.on, err
	}
	return f.on, nil
}

// On returns the current state.
func (f *FakeIndicator) On() bool {
	return f.on
}

// Close marks the indicator as closed.
func (f *FakeIndicator) Close() error {
	f.Closed = true
	return nil
}
