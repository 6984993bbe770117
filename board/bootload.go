package board

import (
	"log"

	"inlretro/device"
	"inlretro/opcodes"
)

// AppVersion asks the firmware for its application version.
func AppVersion(c *device.Conn) (uint8, error) {
	return c.Read8(opcodes.DictBootload, opcodes.GetAppVer, 0, 0)
}

// CheckAppVersion logs a warning when the firmware application version
// differs from the one this host speaks. Only a failed transfer is an
// error.
func CheckAppVersion(c *device.Conn) (v uint8, err error) {
	v, err = AppVersion(c)
	if err != nil {
		return
	}
	if v != opcodes.AppVersion {
		log.Printf("board: warning: firmware app version %d, expected %d\n", v, opcodes.AppVersion)
	}
	return
}

// Pointer returns the bootloader's memory pointer.
func Pointer(c *device.Conn) (uint32, error) {
	b, err := c.ReadRaw(opcodes.DictBootload, opcodes.GetPtr, 0, 0, 6)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}
