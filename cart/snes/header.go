package snes

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"
	"strings"

	"golang.org/x/text/encoding/japanese"
)

// HeaderSize is the length of the cartridge header at $FFB0.
const HeaderSize = 0x30

// $FFB0
type Header struct {
	MakerCode          uint16
	GameCode           uint32
	Fixed1             [7]byte
	ExpansionRAMSize   byte
	SpecialVersion     byte
	CartridgeSubType   byte
	Title              [21]byte
	MapMode            byte
	CartridgeType      byte
	ROMSize            byte
	RAMSize            byte
	DestinationCode    byte
	Fixed2             byte
	MaskROMVersion     byte
	ComplementCheckSum uint16
	CheckSum           uint16
}

func NewHeader(b []byte) (h *Header, err error) {
	if len(b) < HeaderSize {
		return nil, fmt.Errorf("snes: header needs %d bytes, got %d", HeaderSize, len(b))
	}
	h = &Header{}
	err = readBinaryStruct(bytes.NewReader(b[:HeaderSize]), h)
	return
}

func readBinaryStruct(b *bytes.Reader, into interface{}) (err error) {
	hv := reflect.ValueOf(into).Elem()
	for i := 0; i < hv.NumField(); i++ {
		f := hv.Field(i)
		if !f.CanAddr() {
			panic(fmt.Errorf("error handling struct field %s of type %s; cannot take address of field", hv.Type().Field(i).Name, hv.Type().Name()))
		}

		err = binary.Read(b, binary.LittleEndian, f.Addr().Interface())
		if err != nil {
			return fmt.Errorf("error reading struct field %s of type %s: %w", hv.Type().Field(i).Name, hv.Type().Name(), err)
		}
	}
	return
}

// ROMSizeKB is zero for an invalid size code.
func (h *Header) ROMSizeKB() int {
	if _, ok := romSizes[h.ROMSize]; !ok {
		return 0
	}
	return 1 << h.ROMSize
}

func (h *Header) RAMSizeKB() int {
	if h.RAMSize == 0 || h.RAMSize > 0x07 {
		return 0
	}
	return 1 << h.RAMSize
}

// TitleString decodes the title as JIS X 0201, which covers ASCII and
// half-width katakana.
func (h *Header) TitleString() string {
	raw := bytes.TrimRight(h.Title[:], "\x00 ")
	s, err := japanese.ShiftJIS.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.TrimSpace(string(raw))
	}
	return strings.TrimSpace(string(s))
}

// ChecksumOK reports whether the checksum and its complement agree.
func (h *Header) ChecksumOK() bool {
	return h.CheckSum^h.ComplementCheckSum == 0xFFFF
}

// Valid reports whether every table-driven field holds a known code.
func (h *Header) Valid() bool {
	if _, ok := hardwareTypes[h.CartridgeType]; !ok {
		return false
	}
	if _, ok := destinationCodes[h.DestinationCode]; !ok {
		return false
	}
	if _, ok := romSizes[h.ROMSize]; !ok {
		return false
	}
	return h.RAMSize <= 0x07
}

func (h *Header) HardwareType() string {
	if s, ok := hardwareTypes[h.CartridgeType]; ok {
		return s
	}
	return fmt.Sprintf("unknown (0x%02x)", h.CartridgeType)
}

func (h *Header) Destination() string {
	if s, ok := destinationCodes[h.DestinationCode]; ok {
		return s
	}
	return fmt.Sprintf("unknown (0x%02x)", h.DestinationCode)
}

func (h *Header) String() string {
	return fmt.Sprintf("%q map mode 0x%02x, %s, ROM %dKB, RAM %dKB, %s, version %d",
		h.TitleString(), h.MapMode, h.HardwareType(), h.ROMSizeKB(), h.RAMSizeKB(), h.Destination(), h.MaskROMVersion)
}

var hardwareTypes = map[byte]string{
	0x00: "ROM only",
	0x01: "ROM + RAM",
	0x02: "ROM + save RAM",
	0x03: "ROM + DSP",
	0x04: "ROM + DSP + RAM",
	0x05: "ROM + DSP + save RAM",
	0x13: "ROM + SuperFX",
	0x14: "ROM + SuperFX + RAM",
	0x15: "ROM + SuperFX + save RAM",
	0x1A: "ROM + SuperFX + save RAM",
	0x25: "ROM + OBC1 + save RAM",
	0x32: "ROM + SA-1 + save RAM",
	0x33: "ROM + SA-1",
	0x34: "ROM + SA-1 + RAM",
	0x35: "ROM + SA-1 + save RAM",
	0x43: "ROM + S-DD1",
	0x45: "ROM + S-DD1 + save RAM",
	0x55: "ROM + S-RTC + save RAM",
	0xE3: "ROM + Super Game Boy",
	0xE5: "ROM + Satellaview BIOS",
	0xF3: "ROM + CX4",
	0xF5: "ROM + SPC7110 + save RAM",
	0xF6: "ROM + ST010/ST011 + save RAM",
	0xF9: "ROM + SPC7110 + RTC + save RAM",
}

var destinationCodes = map[byte]string{
	0x00: "Japan",
	0x01: "USA",
	0x02: "Europe",
	0x03: "Sweden/Scandinavia",
	0x04: "Finland",
	0x05: "Denmark",
	0x06: "France",
	0x07: "Netherlands",
	0x08: "Spain",
	0x09: "Germany",
	0x0A: "Italy",
	0x0B: "China",
	0x0C: "Indonesia",
	0x0D: "South Korea",
	0x0E: "International",
	0x0F: "Canada",
	0x10: "Brazil",
	0x11: "Australia",
}

var romSizes = map[byte]struct{}{
	0x08: {}, // 256KB
	0x09: {},
	0x0A: {},
	0x0B: {},
	0x0C: {},
	0x0D: {}, // 8MB
}
