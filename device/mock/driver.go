package mock

import "inlretro/device"

const driverName = "mock"

type Driver struct{}

func (d *Driver) DisplayName() string {
	return "Mock Device"
}

func (d *Driver) DisplayDescription() string {
	return "Emulated programmer with a pattern-filled cartridge, for dry runs"
}

// Open ignores name and returns a fresh emulated programmer.
func (d *Driver) Open(name string) (device.Transport, error) {
	return New(&PatternCart{}), nil
}

func init() {
	device.Register(driverName, &Driver{})
}
