package genesis

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// Header is the block at $100-$1FF. Multi-byte fields are big-endian.
type Header struct {
	System       string
	Copyright    string
	DomesticName string
	OverseasName string
	Serial       string
	Checksum     uint16
	Devices      string
	ROMStart     uint32
	ROMEnd       uint32
	RAMStart     uint32
	RAMEnd       uint32

	ExtraMemory      bool
	ExtraMemoryType  uint8
	ExtraMemoryStart uint32
	ExtraMemoryEnd   uint32

	Regions string
}

const (
	headerStart = 0x100
	headerSize  = 0x100
)

func ParseHeader(b []byte) (*Header, error) {
	if len(b) < headerSize {
		return nil, fmt.Errorf("genesis: header needs %d bytes, got %d", headerSize, len(b))
	}
	at := func(addr, n int) []byte { return b[addr-headerStart : addr-headerStart+n] }
	u32 := func(addr int) uint32 { return binary.BigEndian.Uint32(at(addr, 4)) }

	h := &Header{
		System:       text(at(0x100, 16)),
		Copyright:    text(at(0x110, 16)),
		DomesticName: text(at(0x120, 48)),
		OverseasName: text(at(0x150, 48)),
		Serial:       text(at(0x180, 14)),
		Checksum:     binary.BigEndian.Uint16(at(0x18E, 2)),
		Devices:      text(at(0x190, 16)),
		ROMStart:     u32(0x1A0),
		ROMEnd:       u32(0x1A4),
		RAMStart:     u32(0x1A8),
		RAMEnd:       u32(0x1AC),
		Regions:      text(at(0x1F0, 3)),
	}
	if x := at(0x1B0, 12); x[0] == 'R' && x[1] == 'A' {
		h.ExtraMemory = true
		h.ExtraMemoryType = x[2]
		h.ExtraMemoryStart = binary.BigEndian.Uint32(x[4:])
		h.ExtraMemoryEnd = binary.BigEndian.Uint32(x[8:])
	}
	return h, nil
}

func text(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.Join(strings.Fields(string(b)), " ")
}

// ROMSizeKB is zero when the ROM range is inverted.
func (h *Header) ROMSizeKB() int {
	if h.ROMEnd < h.ROMStart {
		return 0
	}
	return int((h.ROMEnd - h.ROMStart + 1) / 1024)
}

func (h *Header) RAMSizeKB() int {
	if h.RAMEnd < h.RAMStart {
		return 0
	}
	return int((h.RAMEnd - h.RAMStart + 1) / 1024)
}

// ExtraMemoryKB is the bus span of the extra memory in kilobytes. An
// odd-address 8-bit part covers every other byte of its span.
func (h *Header) ExtraMemoryKB() int {
	if !h.ExtraMemory || h.ExtraMemoryEnd < h.ExtraMemoryStart {
		return 0
	}
	switch h.ExtraMemoryStart {
	case 0x200001:
		return int((h.ExtraMemoryEnd - h.ExtraMemoryStart + 2) / 1024)
	case 0x200000:
		return int((h.ExtraMemoryEnd - h.ExtraMemoryStart + 1) / 1024)
	}
	return 0
}

func (h *Header) ExtraMemoryTypeName() string {
	if s, ok := extraMemoryTypes[h.ExtraMemoryType]; ok {
		return s
	}
	return fmt.Sprintf("unknown (0x%02x)", h.ExtraMemoryType)
}

func (h *Header) String() string {
	s := fmt.Sprintf("%q / %q (%s, %s), serial %q, ROM %dKB, RAM %dKB, regions %q, checksum 0x%04x",
		h.DomesticName, h.OverseasName, h.System, h.Copyright, h.Serial, h.ROMSizeKB(), h.RAMSizeKB(), h.Regions, h.Checksum)
	if h.ExtraMemory {
		s += fmt.Sprintf(", extra memory %s %dKB", h.ExtraMemoryTypeName(), h.ExtraMemoryKB())
	}
	return s
}

// SaveRAMType is the only extra memory the firmware can page out.
const SaveRAMType = 0xF8

var extraMemoryTypes = map[uint8]string{
	0xA0: "no save 16-bit",
	0xB0: "no save 8-bit (even addresses)",
	0xB8: "no save 8-bit (odd addresses)",
	0xE0: "save 16-bit",
	0xE8: "EEPROM",
	0xF0: "save 8-bit (even addresses)",
	0xF8: "save 8-bit (odd addresses)",
}
