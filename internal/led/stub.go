//go:build !linux

package led

import "errors"

// NewRealIndicator is not available on non-Linux platforms.
// This stub allows the code to compile for development.
func NewRealIndicator(pin int) (Indicator, error) {
	return nil, errors.New("GPIO character device only supported on Linux")
}
