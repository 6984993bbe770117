// Package nes dumps NES cartridges: mapper banking, mirroring and flash
// ID probes, and iNES output.
package nes

import (
	"inlretro/device"
	"inlretro/opcodes"
)

func nesExec(c *device.Conn, opcode uint8, addr uint16, data uint8) error {
	return c.Exec(opcodes.DictNES, opcode, addr, data)
}

// CPUWrite writes data at a CPU address with M2 toggling as the console would.
func CPUWrite(c *device.Conn, addr uint16, data uint8) error {
	return nesExec(c, opcodes.NESCPUWr, addr, data)
}

func CPURead(c *device.Conn, addr uint16) (uint8, error) {
	return c.Read8(opcodes.DictNES, opcodes.NESCPURd, addr, 0)
}

func PPUWrite(c *device.Conn, addr uint16, data uint8) error {
	return nesExec(c, opcodes.NESPPUWr, addr, data)
}

func PPURead(c *device.Conn, addr uint16) (uint8, error) {
	return c.Read8(opcodes.DictNES, opcodes.NESPPURd, addr, 0)
}

// DiscreteWrite writes PRG-ROM through /WE on EXP0 without touching a
// discrete mapper's latch.
func DiscreteWrite(c *device.Conn, addr uint16, data uint8) error {
	return nesExec(c, opcodes.DiscreteEXP0PRGROMWr, addr, data)
}

// MMC1Write loads a whole MMC1 register; the firmware shifts the five
// bits in.
func MMC1Write(c *device.Conn, addr uint16, data uint8) error {
	return nesExec(c, opcodes.NESMMC1Wr, addr, data)
}

type write struct {
	addr uint16
	data uint8
}

func cpuWrites(c *device.Conn, ws ...write) error {
	for _, w := range ws {
		if err := CPUWrite(c, w.addr, w.data); err != nil {
			return err
		}
	}
	return nil
}
