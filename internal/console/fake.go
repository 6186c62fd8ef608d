package console

// FakeConsole is a test double with scripted input chunks and
// recorded output lines.
type FakeConsole struct {
	// Inputs contains scripted chunks; each Poll consumes one. When
	// exhausted, Poll returns nothing pending.
	Inputs [][]byte

	// Lines contains every line written, in order.
	Lines []string

	// PollError, if set, will be returned by Poll.
	PollError error

	// WriteError, if set, will be returned by WriteLine.
	WriteError error

	// Closed tracks if Close was called.
	Closed bool

	index int
}

// NewFakeConsole creates a FakeConsole with the given input chunks.
func NewFakeConsole(inputs [][]byte) *FakeConsole {
	return &FakeConsole{Inputs: inputs}
}

// Poll returns the next scripted chunk, or nothing when exhausted.
func (f *FakeConsole) Poll() ([]byte, error) {
	if f.PollError != nil {
		return nil, f.PollError
	}
	if f.index >= len(f.Inputs) {
		return nil, nil
	}
	chunk := f.Inputs[f.index]
	f.index++
	return chunk, nil
}

// WriteLine records the output line.
func (f *FakeConsole) WriteLine(s string) error {
	if f.WriteError != nil {
		return f.WriteError
	}
	f.Lines = append(f.Lines, s)
	return nil
}

// Close marks the console as closed.
func (f *FakeConsole) Close() error {
	f.Closed = true
	return nil
}

// Reset clears recorded output and rewinds the scripted input.
func (f *FakeConsole) Reset() {
	f.Lines = nil
	f.index = 0
	f.Closed = false
	f.PollError = nil
	f.WriteError = nil
}
