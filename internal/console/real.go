package console

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// RealConsole is a serial port console.
type RealConsole struct {
	port serial.Port
	buf  []byte
}

// NewRealConsole opens the serial device at the given baud rate and
// configures a near-zero read timeout so Poll never stalls the
// control loop.
func NewRealConsole(device string, baud int) (*RealConsole, error) {
	mode := &serial.Mode{BaudRate: baud}
	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", device, err)
	}
	if err := port.SetReadTimeout(time.Millisecond); err != nil {
		port.Close()
		return nil, fmt.Errorf("set read timeout: %w", err)
	}
	return &RealConsole{
		port: port,
		buf:  make([]byte, 256),
	}, nil
}

// Poll reads whatever bytes arrived since the last poll. A timed-out
// read returns n=0 with no error, which maps to "nothing pending".
func (c *RealConsole) Poll() ([]byte, error) {
	n, err := c.port.Read(c.buf)
	if err != nil {
		return nil, fmt.Errorf("read serial port: %w", err)
	}
	if n == 0 {
		return nil, nil
	}
	out := make([]byte, n)
	copy(out, c.buf[:n])
	return out, nil
}

// WriteLine writes one CRLF-terminated line.
func (c *RealConsole) WriteLine(s string) error {
	if _, err := c.port.Write([]byte(s + "\r\n")); err != nil {
		return fmt.Errorf("write serial port: %w", err)
	}
	return nil
}

// Close releases the port.
func (c *RealConsole) Close() error {
	return c.port.Close()
}
