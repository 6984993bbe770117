package nes

import (
	"fmt"

	"inlretro/board"
	"inlretro/device"
	"inlretro/opcodes"
)

type Mirroring uint8

const (
	MirrorSingleA  = Mirroring(opcodes.Mir1ScnA)
	MirrorSingleB  = Mirroring(opcodes.Mir1ScnB)
	MirrorVertical = Mirroring(opcodes.MirVert)
	MirrorHorizont = Mirroring(opcodes.MirHorz)
)

func (m Mirroring) String() string {
	switch m {
	case MirrorSingleA:
		return "1-screen A"
	case MirrorSingleB:
		return "1-screen B"
	case MirrorVertical:
		return "vertical"
	case MirrorHorizont:
		return "horizontal"
	}
	return fmt.Sprintf("mirroring(0x%02x)", uint8(m))
}

// ClassifyMirroring maps the CIRAM A10 levels sensed at PPU $0400 (h)
// and $0800 (v) to a mirroring mode.
func ClassifyMirroring(h, v uint16) Mirroring {
	switch {
	case h == 0 && v == 0:
		return MirrorSingleA
	case h != 0 && v == 0:
		return MirrorVertical
	case h == 0 && v != 0:
		return MirrorHorizont
	default:
		return MirrorSingleB
	}
}

// DetectMirroring senses CIRAM A10 with the PPU address bus at $0400
// and then $0800.
func DetectMirroring(c *device.Conn) (m Mirroring, err error) {
	if err = board.AddrSet(c, 0x0400); err != nil {
		return
	}
	h, err := board.CtlRead(c, opcodes.PinCIA10)
	if err != nil {
		return
	}
	if err = board.AddrSet(c, 0x0800); err != nil {
		return
	}
	v, err := board.CtlRead(c, opcodes.PinCIA10)
	if err != nil {
		return
	}
	return ClassifyMirroring(h, v), nil
}
