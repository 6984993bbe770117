// Package board issues programmer-level commands: port setup, pin
// control, operation state and bootloader queries.
package board

import (
	"fmt"

	"inlretro/device"
	"inlretro/opcodes"
)

func ioCmd(c *device.Conn, opcode uint8, operand uint16) error {
	return c.Exec(opcodes.DictIO, opcode, operand, 0)
}

// Reset returns every cartridge port to its idle state.
func Reset(c *device.Conn) error {
	return ioCmd(c, opcodes.IOReset, 0)
}

func InitNES(c *device.Conn) error     { return ioCmd(c, opcodes.NESInit, 0) }
func InitSNES(c *device.Conn) error    { return ioCmd(c, opcodes.SNESInit, 0) }
func InitGameboy(c *device.Conn) error { return ioCmd(c, opcodes.GameboyInit, 0) }
func InitGBA(c *device.Conn) error     { return ioCmd(c, opcodes.GBAInit, 0) }
func InitSega(c *device.Conn) error    { return ioCmd(c, opcodes.SegaInit, 0) }

// GameboyPower selects the cartridge supply: 5V for DMG carts, 3V for
// GBC-only carts.
func GameboyPower(c *device.Conn, threeVolt bool) error {
	if threeVolt {
		return ioCmd(c, opcodes.GBPower3V, 0)
	}
	return ioCmd(c, opcodes.GBPower5V, 0)
}

// EXP0Pullup runs the EXP0 pull-up test and returns the raw result.
func EXP0Pullup(c *device.Conn) (uint8, error) {
	return c.Read8(opcodes.DictIO, opcodes.EXP0PullupTest, 0, 0)
}

// DescribeEXP0 names the result of EXP0Pullup.
func DescribeEXP0(r uint8) string {
	switch r {
	case opcodes.EXP0StuckHi:
		return "EXP0 stuck high"
	case opcodes.CannotPullupEXP0:
		return "cannot pull up EXP0"
	case 0:
		return "EXP0 ok"
	}
	return fmt.Sprintf("EXP0 test result 0x%02x", r)
}

// Session brackets cartridge access: init runs first and the ports are
// reset again when the returned func is called.
func Session(c *device.Conn, init func(*device.Conn) error) (done func(), err error) {
	if err = Reset(c); err != nil {
		return nil, fmt.Errorf("board: io reset: %w", err)
	}
	if err = init(c); err != nil {
		_ = Reset(c)
		return nil, fmt.Errorf("board: io init: %w", err)
	}
	return func() { _ = Reset(c) }, nil
}
