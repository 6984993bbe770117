package nes

import (
	"fmt"
	"io"
)

// Header describes the 16-byte iNES header written before PRG and CHR.
type Header struct {
	PRGKB     int
	CHRKB     int
	Mapper    uint8
	Mirroring Mirroring
}

func (h Header) Bytes() (b [16]byte) {
	copy(b[:4], "NES\x1A")
	b[4] = uint8(h.PRGKB / 16)
	b[5] = uint8(h.CHRKB / 8)
	b[6] = (h.Mapper & 0x0F) << 4
	if h.Mirroring == MirrorVertical {
		b[6] |= 0x01
	}
	b[7] = h.Mapper & 0xF0
	return
}

func (h Header) WriteTo(w io.Writer) (int64, error) {
	b := h.Bytes()
	n, err := w.Write(b[:])
	return int64(n), err
}

func (h Header) String() string {
	return fmt.Sprintf("mapper %d, PRG %dKB, CHR %dKB, %v mirroring", h.Mapper, h.PRGKB, h.CHRKB, h.Mirroring)
}
