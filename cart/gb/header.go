package gb

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/japanese"
)

// Header block bounds; the title starts at $0134.
const (
	headerStart = 0x134
	headerEnd   = 0x150
)

type Header struct {
	Title          string
	NewLicensee    [2]byte
	SGB            uint8
	CartType       uint8
	ROMSize        uint8
	RAMSize        uint8
	Destination    uint8
	OldLicensee    uint8
	Version        uint8
	HeaderChecksum uint8
	GlobalChecksum uint16

	computedChecksum uint8
}

// ParseHeader decodes $0134-$014F.
func ParseHeader(b []byte) (*Header, error) {
	if len(b) < headerEnd-headerStart {
		return nil, fmt.Errorf("gb: header needs %d bytes, got %d", headerEnd-headerStart, len(b))
	}
	at := func(addr int) []byte { return b[addr-headerStart:] }

	h := &Header{
		SGB:            at(0x146)[0],
		CartType:       at(0x147)[0],
		ROMSize:        at(0x148)[0],
		RAMSize:        at(0x149)[0],
		Destination:    at(0x14A)[0],
		OldLicensee:    at(0x14B)[0],
		Version:        at(0x14C)[0],
		HeaderChecksum: at(0x14D)[0],
		GlobalChecksum: binary.BigEndian.Uint16(at(0x14E)),
	}
	copy(h.NewLicensee[:], at(0x144))

	n := 11
	if h.OldLicensee == 0x33 {
		n = 16
	}
	h.Title = decodeTitle(at(0x134)[:n])

	for _, v := range b[:0x14D-headerStart] {
		h.computedChecksum = h.computedChecksum - v - 1
	}
	return h, nil
}

func decodeTitle(raw []byte) string {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	s, err := japanese.ShiftJIS.NewDecoder().Bytes(raw)
	if err != nil {
		return strings.TrimSpace(string(raw))
	}
	return strings.TrimSpace(string(s))
}

func (h *Header) ChecksumOK() bool { return h.computedChecksum == h.HeaderChecksum }

// ROMSizeKB is 32KB shifted by the size code, or zero for an unknown code.
func (h *Header) ROMSizeKB() int {
	if h.ROMSize > 8 {
		return 0
	}
	return 32 << h.ROMSize
}

// RAMSizeKB returns -1 for an unknown code.
func (h *Header) RAMSizeKB() int {
	if kb, ok := ramSizes[h.RAMSize]; ok {
		return kb
	}
	return -1
}

func (h *Header) Licensee() string {
	code := h.OldLicensee
	if code == 0x33 {
		v, err := strconv.ParseUint(string(h.NewLicensee[:]), 16, 8)
		if err != nil {
			return fmt.Sprintf("unknown (%q)", h.NewLicensee[:])
		}
		code = uint8(v)
	}
	if s, ok := licensees[code]; ok {
		return s
	}
	return fmt.Sprintf("unknown (0x%02x)", code)
}

func (h *Header) CartTypeName() string {
	if s, ok := cartTypes[h.CartType]; ok {
		return s
	}
	return fmt.Sprintf("unknown (0x%02x)", h.CartType)
}

func (h *Header) String() string {
	sgb := "no"
	if h.SGB == 0x03 {
		sgb = "yes"
	}
	dest := "Japan"
	if h.Destination != 0 {
		dest = "overseas"
	}
	return fmt.Sprintf("%q by %s, %s, ROM %dKB, RAM %dKB, SGB %s, %s, version 0x%02x, global checksum 0x%04x",
		h.Title, h.Licensee(), h.CartTypeName(), h.ROMSizeKB(), h.RAMSizeKB(), sgb, dest, h.Version, h.GlobalChecksum)
}

var ramSizes = map[uint8]int{
	0x00: 0,
	0x01: 2,
	0x02: 8,
	0x03: 32,
	0x04: 128,
	0x05: 64,
}

var cartTypes = map[uint8]string{
	0x00: "ROM only",
	0x01: "MBC1",
	0x02: "MBC1+RAM",
	0x03: "MBC1+RAM+BATTERY",
	0x05: "MBC2",
	0x06: "MBC2+BATTERY",
	0x08: "ROM+RAM",
	0x09: "ROM+RAM+BATTERY",
	0x0B: "MMM01",
	0x0C: "MMM01+RAM",
	0x0D: "MMM01+RAM+BATTERY",
	0x0F: "MBC3+TIMER+BATTERY",
	0x10: "MBC3+TIMER+RAM+BATTERY",
	0x11: "MBC3",
	0x12: "MBC3+RAM",
	0x13: "MBC3+RAM+BATTERY",
	0x19: "MBC5",
	0x1A: "MBC5+RAM",
	0x1B: "MBC5+RAM+BATTERY",
	0x1C: "MBC5+RUMBLE",
	0x1D: "MBC5+RUMBLE+RAM",
	0x1E: "MBC5+RUMBLE+RAM+BATTERY",
	0x20: "MBC6",
	0x22: "MBC7+SENSOR+RUMBLE+RAM+BATTERY",
	0xFC: "POCKET CAMERA",
	0xFD: "BANDAI TAMA5",
	0xFE: "HuC3",
	0xFF: "HuC1+RAM+BATTERY",
}

var licensees = map[uint8]string{
	0x01: "Nintendo",
	0x08: "Capcom",
	0x09: "Hot-B",
	0x0A: "Jaleco",
	0x0B: "Coconuts",
	0x0C: "Elite Systems",
	0x13: "Electronic Arts",
	0x18: "Hudson Soft",
	0x19: "ITC Entertainment",
	0x1A: "Yanoman",
	0x1D: "Clary",
	0x1F: "Virgin",
	0x20: "KSS",
	0x22: "POW",
	0x24: "PCM Complete",
	0x25: "San-X",
	0x28: "Kotobuki Systems",
	0x29: "Seta",
	0x30: "Infogrames",
	0x31: "Nintendo",
	0x32: "Bandai",
	0x34: "Konami",
	0x35: "Hector",
	0x37: "Taito",
	0x38: "Hudson Soft",
	0x39: "Banpresto",
	0x3C: "Entertainment i",
	0x3E: "Gremlin",
	0x41: "Ubi Soft",
	0x42: "Atlus",
	0x44: "Malibu",
	0x46: "Angel",
	0x47: "Spectrum Holobyte",
	0x49: "Irem",
	0x4A: "Virgin",
	0x4D: "Malibu",
	0x4F: "U.S. Gold",
	0x50: "Absolute",
	0x51: "Acclaim",
	0x52: "Activision",
	0x53: "American Sammy",
	0x54: "Gametek",
	0x55: "Park Place",
	0x56: "LJN",
	0x57: "Matchbox",
	0x58: "Mattel",
	0x59: "Milton Bradley",
	0x5A: "Mindscape",
	0x5B: "Romstar",
	0x5C: "Naxat Soft",
	0x5D: "Tradewest",
	0x60: "Titus",
	0x61: "Virgin",
	0x64: "LucasArts",
	0x67: "Ocean",
	0x69: "Electronic Arts",
	0x6E: "Elite Systems",
	0x6F: "Electro Brain",
	0x70: "Infogrames",
	0x71: "Interplay",
	0x72: "Broderbund",
	0x73: "Sculptured",
	0x75: "The Sales Curve",
	0x78: "THQ",
	0x79: "Accolade",
	0x7A: "Triffix Entertainment",
	0x7C: "Microprose",
	0x7F: "Kemco",
	0x80: "Misawa",
	0x83: "Lozc",
	0x86: "Tokuma Shoten Intermedia",
	0x87: "Tsukuda Original",
	0x8B: "Bullet-Proof Software",
	0x8C: "Vic Tokai",
	0x8E: "Ape",
	0x8F: "I'Max",
	0x91: "Chunsoft",
	0x92: "Video System",
	0x93: "Tsuburava",
	0x95: "Varie",
	0x96: "Yonezawa/S'Pal",
	0x97: "Kaneko",
	0x99: "Pack-In-Soft",
	0x9A: "Nihon Bussan",
	0x9B: "Tecmo",
	0x9C: "Imagineer",
	0x9D: "Banpresto",
	0x9F: "Nova",
	0xA1: "Hori Electric",
	0xA2: "Bandai",
	0xA4: "Konami",
	0xA6: "Kawada",
	0xA7: "Takara",
	0xA9: "Technos Japan",
	0xAA: "Broderbund",
	0xAC: "Toei Animation",
	0xAD: "Toho",
	0xAF: "Namco",
	0xB0: "Acclaim",
	0xB1: "ASCII or Nexoft",
	0xB2: "Bandai",
	0xB4: "Enix",
	0xB6: "HAL",
	0xB7: "SNK",
	0xB9: "Pony Canyon",
	0xBA: "Culture Brain",
	0xBB: "Sunsoft",
	0xBD: "Sony Imagesoft",
	0xBF: "Sammy",
	0xC0: "Taito",
	0xC2: "Kemco",
	0xC3: "Squaresoft",
	0xC4: "Tokuma Shoten Intermedia",
	0xC5: "Data East",
	0xC6: "Tonkin House",
	0xC8: "Koei",
	0xC9: "UFL",
	0xCA: "Ultra",
	0xCB: "Vap",
	0xCC: "Use",
	0xCD: "Meldac",
	0xCE: "Pony Canyon",
	0xCF: "Angel",
	0xD0: "Taito",
	0xD1: "Sofel",
	0xD2: "Quest",
	0xD3: "Sigma Enterprises",
	0xD4: "ASK Kodansha",
	0xD6: "Naxat Soft",
	0xD7: "Copya System",
	0xD9: "Banpresto",
	0xDA: "Tomy",
	0xDB: "LJN",
	0xDD: "NCS",
	0xDE: "Human",
	0xDF: "Altron",
	0xE0: "Jaleco",
	0xE1: "Towa Chiki",
	0xE2: "Yutaka",
	0xE3: "Varie",
	0xE5: "Epoch",
	0xE7: "Athena",
	0xE8: "Asmik",
	0xE9: "Natsume",
	0xEA: "King Records",
	0xEB: "Atlus",
	0xEC: "Epic/Sony Records",
	0xEE: "IGS",
	0xF0: "A Wave",
	0xF3: "Extreme Entertainment",
	0xFF: "LJN",
}
