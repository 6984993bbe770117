package device

import (
	"errors"
	"fmt"
)

var ErrDeviceDisconnected = errors.New("device disconnected")

// TransportError reports a failed control transfer: timeout, disconnect
// or a short read.
type TransportError struct {
	Op      string
	wrapped error
}

func NewTransportError(op string, err error) *TransportError {
	return &TransportError{Op: op, wrapped: err}
}

func (e *TransportError) Unwrap() error { return e.wrapped }
func (e *TransportError) Error() string {
	if e.wrapped == nil {
		return fmt.Sprintf("device transport error: %s", e.Op)
	}
	return fmt.Sprintf("device transport error: %s: %v", e.Op, e.wrapped)
}

// DeviceError is a nonzero status byte returned by the firmware.
type DeviceError struct {
	Dict   uint8
	Opcode uint8
	Status DeviceStatus
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device error: dict %d opcode 0x%02x: %v", e.Dict, e.Opcode, e.Status)
}

// ConfigurationError is an invalid host-side request, detected before
// anything is sent to the device.
type ConfigurationError struct {
	Reason string
}

func Configf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Reason: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// VersionError is returned when the firmware is too old for this host.
type VersionError struct {
	Major, Minor, Sub uint8
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("firmware version %d.%d.%d is too old; need 2.0.1 or newer", e.Major, e.Minor, e.Sub)
}
