package device

import "fmt"

// FirmwareVersion is decoded from the bcdDevice field of the device
// descriptor.
type FirmwareVersion struct {
	Major, Minor, Sub uint8
}

func ParseBCDDevice(bcd uint16) FirmwareVersion {
	return FirmwareVersion{
		Major: uint8(bcd >> 8),
		Minor: uint8(bcd>>4) & 0x0F,
		Sub:   uint8(bcd) & 0x0F,
	}
}

func (v FirmwareVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Sub)
}

// Check fails with a *VersionError for firmware older than 2.0.1.
func (v FirmwareVersion) Check() error {
	if v.Major > 2 {
		return nil
	}
	if v.Major == 2 && (v.Minor > 0 || v.Sub > 0) {
		return nil
	}
	return &VersionError{Major: v.Major, Minor: v.Minor, Sub: v.Sub}
}
