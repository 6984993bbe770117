package board

import (
	"inlretro/device"
	"inlretro/opcodes"
)

func pinport(c *device.Conn, opcode uint8, operand uint16) error {
	return c.Exec(opcodes.DictPinport, opcode, operand, 0)
}

func CtlSetLow(c *device.Conn, pin uint16) error  { return pinport(c, opcodes.CtlSetLo, pin) }
func CtlSetHigh(c *device.Conn, pin uint16) error { return pinport(c, opcodes.CtlSetHi, pin) }
func CtlOutput(c *device.Conn, pin uint16) error  { return pinport(c, opcodes.CtlOP, pin) }
func CtlPullup(c *device.Conn, pin uint16) error  { return pinport(c, opcodes.CtlIPPU, pin) }

// CtlRead returns the level of a control pin; nonzero is high.
func CtlRead(c *device.Conn, pin uint16) (uint16, error) {
	return c.Read16(opcodes.DictPinport, opcodes.CtlRd, pin, 0)
}

func AddrSet(c *device.Conn, addr uint16) error { return pinport(c, opcodes.AddrSet, addr) }
func DataSet(c *device.Conn, v uint8) error     { return pinport(c, opcodes.DataSet, uint16(v)) }
func ExpSet(c *device.Conn, v uint8) error      { return pinport(c, opcodes.ExpSet, uint16(v)) }
func HAddrSet(c *device.Conn, v uint8) error    { return pinport(c, opcodes.HAddrSet, uint16(v)) }

// DataRead returns the data port.
func DataRead(c *device.Conn) (uint16, error) {
	return c.Read16(opcodes.DictPinport, opcodes.DataRd, 0, 0)
}

// AddrRead returns the address port.
func AddrRead(c *device.Conn) (uint16, error) {
	return c.Read16(opcodes.DictPinport, opcodes.AddrRd, 0, 0)
}
