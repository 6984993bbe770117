package snes

import (
	"inlretro/device"
	"inlretro/opcodes"
)

// SetBank drives A16-A23.
func SetBank(c *device.Conn, bank uint8) error {
	return c.Exec(opcodes.DictSNES, opcodes.SNESSetBank, uint16(bank), 0)
}

// ROMRead reads one byte with /ROMSEL asserted.
func ROMRead(c *device.Conn, addr uint16) (uint8, error) {
	return c.Read8(opcodes.DictSNES, opcodes.SNESROMRd, addr, 0)
}

// SysRead reads one byte with /ROMSEL released.
func SysRead(c *device.Conn, addr uint16) (uint8, error) {
	return c.Read8(opcodes.DictSNES, opcodes.SNESSysRd, addr, 0)
}

// ReadBus reads n bytes starting at a 24-bit bus address. The read must
// not cross a bank boundary.
func ReadBus(c *device.Conn, bus uint32, n int) ([]byte, error) {
	if err := SetBank(c, uint8(bus>>16)); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	for i := range b {
		v, err := ROMRead(c, uint16(bus)+uint16(i))
		if err != nil {
			return nil, err
		}
		b[i] = v
	}
	return b, nil
}
