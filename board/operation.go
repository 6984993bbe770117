package board

import (
	"inlretro/device"
	"inlretro/opcodes"
)

func SetOperation(c *device.Conn, code uint8) error {
	return c.Exec(opcodes.DictOperation, opcodes.SetOperation, uint16(code), 0)
}

func GetOperation(c *device.Conn) (uint8, error) {
	return c.Read8(opcodes.DictOperation, opcodes.GetOperation, 0, 0)
}
