package mag

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// MLX90393 single-measurement protocol. Each command selects axes via
// the low nibble (zyxt bits); we always request X, Y and Z.
const (
	cmdStartMeasurement = 0x30
	cmdReadMeasurement  = 0x40
	axesXYZ             = 0x0E

	// Status byte error bit.
	statusError = 0x10

	// Microtesla per LSB at gain 1x, 16-bit resolution.
	sensitivityXY = 0.150
	sensitivityZ  = 0.242
)

// RealSensor reads an MLX90393 over the Linux I2C bus.
type RealSensor struct {
	bus i2c.BusCloser
	dev i2c.Dev
}

// NewRealSensor opens the given I2C bus ("" = first available) and
// addresses the probe.
func NewRealSensor(busName string, addr uint16) (*RealSensor, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host: %w", err)
	}

	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %q: %w", busName, err)
	}

	s := &RealSensor{
		bus: bus,
		dev: i2c.Dev{Bus: bus, Addr: addr},
	}

	// Probe with a start-measurement command so a missing sensor
	// fails at startup, not on the first tick.
	if err := s.start(); err != nil {
		bus.Close()
		return nil, err
	}
	return s, nil
}

func (s *RealSensor) start() error {
	var status [1]byte
	if err := s.dev.Tx([]byte{cmdStartMeasurement | axesXYZ}, status[:]); err != nil {
		return fmt.Errorf("start measurement: %w", err)
	}
	if status[0]&statusError != 0 {
		return fmt.Errorf("start measurement: sensor status 0x%02x", status[0])
	}
	return nil
}

// Read collects the pending measurement and starts the next one.
// Conversion takes ~2ms per axis; at a 100ms tick the previous
// conversion is always complete.
func (s *RealSensor) Read() (Reading, error) {
	// Status byte plus 2 bytes per axis.
	var buf [7]byte
	if err := s.dev.Tx([]byte{cmdReadMeasurement | axesXYZ}, buf[:]); err != nil {
		return Reading{}, fmt.Errorf("read measurement: %w", err)
	}
	if buf[0]&statusError != 0 {
		return Reading{}, fmt.Errorf("read measurement: sensor status 0x%02x", buf[0])
	}

	if err := s.start(); err != nil {
		return Reading{}, err
	}

	x := int16(uint16(buf[1])<<8 | uint16(buf[2]))
	y := int16(uint16(buf[3])<<8 | uint16(buf[4]))
	z := int16(uint16(buf[5])<<8 | uint16(buf[6]))

	return Reading{
		X: float64(x) * sensitivityXY,
		Y: float64(y) * sensitivityXY,
		Z: float64(z) * sensitivityZ,
	}, nil
}

// Close releases the bus.
func (s *RealSensor) Close() error {
	return s.bus.Close()
}
