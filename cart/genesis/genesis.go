// Package genesis reads Sega Genesis / Mega Drive cartridges.
package genesis

import (
	"context"
	"fmt"
	"io"
	"log"

	"inlretro/board"
	"inlretro/device"
	"inlretro/dump"
	"inlretro/opcodes"
)

const (
	bankKB    = 128
	ramBankKB = 8
	// ramBase is the bank of $200000 on the word bus.
	ramBase = 0x20 >> 1
)

func SetBank(c *device.Conn, bank uint16) error {
	return c.Exec(opcodes.DictGenesis, opcodes.GenSetBank, bank, 0)
}

// ReadWord reads the word at a word address in the current bank. The
// firmware sends the 16-bit bus value low byte first, so the byte at the
// even address ends up in the high half of the result.
func ReadWord(c *device.Conn, word uint16) (uint16, error) {
	return c.Read16(opcodes.DictGenesis, opcodes.GenROMRd, word, 0)
}

func ReadHeader(c *device.Conn) (*Header, error) {
	if err := SetBank(c, 0); err != nil {
		return nil, fmt.Errorf("genesis: set bank: %w", err)
	}
	b := make([]byte, headerSize)
	for i := 0; i < len(b); i += 2 {
		w, err := ReadWord(c, uint16(headerStart+i)>>1)
		if err != nil {
			return nil, fmt.Errorf("genesis: read header: %w", err)
		}
		b[i], b[i+1] = uint8(w>>8), uint8(w)
	}
	return ParseHeader(b)
}

func Probe(c *device.Conn) (*Header, error) {
	done, err := board.Session(c, board.InitSega)
	if err != nil {
		return nil, err
	}
	defer done()

	h, err := ReadHeader(c)
	if err != nil {
		return nil, err
	}
	log.Printf("genesis: %v\n", h)
	return h, nil
}

// DumpROM writes the ROM 64KB at a time, two pages per 128KB bank.
// romKB overrides the header's ROM range when positive.
func DumpROM(ctx context.Context, d *dump.Dumper, w io.Writer, romKB int) (h *Header, err error) {
	c := d.Conn
	done, err := board.Session(c, board.InitSega)
	if err != nil {
		return
	}
	defer done()

	if h, err = ReadHeader(c); err != nil {
		return
	}
	log.Printf("genesis: %v\n", h)
	if romKB <= 0 {
		romKB = h.ROMSizeKB()
	}
	if romKB <= 0 || romKB%bankKB != 0 {
		return h, device.Configf("Genesis ROM size %dKB is not a multiple of %dKB", romKB, bankKB)
	}
	if h.ExtraMemory && h.ExtraMemoryStart < uint32(romKB)*1024 {
		log.Printf("genesis: warning: save RAM at $%06X overlaps the ROM; the upper banks may read as RAM\n", h.ExtraMemoryStart)
	}

	n := romKB / bankKB
	log.Printf("genesis: dumping ROM (%dKB, %d banks)\n", romKB, n)
	banker := dump.BankerFunc(func(ctx context.Context, i int) (dump.Window, error) {
		if i%2 == 1 {
			return dump.Window{SizeKB: bankKB / 2, Mapper: 0x00, Mem: opcodes.MemGenesisROMPage1}, nil
		}
		return dump.Window{SizeKB: bankKB / 2, Mapper: 0x00, Mem: opcodes.MemGenesisROMPage0}, SetBank(c, uint16(i/2))
	})
	if err = d.Banked(ctx, w, 2*n, banker); err != nil {
		return h, fmt.Errorf("genesis: ROM: %w", err)
	}
	return
}

// SaveRAMKB returns the number of save RAM bytes, in KB, that DumpRAM
// reads before padding. Only extra memory of type SaveRAMType can be
// dumped.
func SaveRAMKB(h *Header) (int, error) {
	if !h.ExtraMemory || h.ExtraMemoryType != SaveRAMType {
		return 0, device.Configf("dumping Genesis extra memory of type %s is not supported", h.ExtraMemoryTypeName())
	}
	size := h.ExtraMemoryKB() / 2
	if size <= 0 {
		return 0, device.Configf("Genesis save RAM range $%06X-$%06X is empty", h.ExtraMemoryStart, h.ExtraMemoryEnd)
	}
	return size, nil
}

// DumpRAM writes odd-address 8-bit save RAM, each byte preceded by 0xFF
// so the file lines up with the 16-bit bus.
func DumpRAM(ctx context.Context, d *dump.Dumper, w io.Writer) (h *Header, err error) {
	c := d.Conn
	done, err := board.Session(c, board.InitSega)
	if err != nil {
		return
	}
	defer done()

	if h, err = ReadHeader(c); err != nil {
		return
	}
	log.Printf("genesis: %v\n", h)
	size, err := SaveRAMKB(h)
	if err != nil {
		return
	}

	n := (size + ramBankKB - 1) / ramBankKB
	log.Printf("genesis: dumping save RAM (%dKB, %d banks)\n", size, n)
	banker := dump.BankerFunc(func(ctx context.Context, i int) (dump.Window, error) {
		kb := ramBankKB
		if rest := size - i*ramBankKB; rest < kb {
			kb = rest
		}
		return dump.Window{SizeKB: kb, Mapper: 0x00, Mem: opcodes.MemGenesisRAMPage}, SetBank(c, uint16(ramBase+i))
	})
	if err = d.Banked(ctx, NewPadWriter(w), n, banker); err != nil {
		return h, fmt.Errorf("genesis: save RAM: %w", err)
	}
	return
}

// PadWriter writes 0xFF before every byte.
type PadWriter struct {
	w   io.Writer
	buf []byte
}

func NewPadWriter(w io.Writer) *PadWriter { return &PadWriter{w: w} }

func (p *PadWriter) Write(b []byte) (int, error) {
	if cap(p.buf) < 2*len(b) {
		p.buf = make([]byte, 2*len(b))
	}
	out := p.buf[:2*len(b)]
	for i, v := range b {
		out[2*i] = 0xFF
		out[2*i+1] = v
	}
	if _, err := p.w.Write(out); err != nil {
		return 0, err
	}
	return len(b), nil
}
