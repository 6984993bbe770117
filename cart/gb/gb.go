// Package gb reads Game Boy cartridge headers and ROM.
package gb

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

func Read(c *device.Conn, addr uint16) (uint8, error) {
	return c.Read8(opcodes.DictGB, opcodes.GameboyRd, addr, 0)
}

func Write(c *device.Conn, addr uint16, v uint8) error {
	return c.Exec(opcodes.DictGB, opcodes.GameboyWr, addr, v)
}

type writes []struct {
	addr uint16
	v    uint8
}

func (ws writes) apply(c *device.Conn) error {
	for _, w := range ws {
		if err := Write(c, w.addr, w.v); err != nil {
			return fmt.Errorf("gb: write $%04X<-0x%02x: %w", w.addr, w.v, err)
		}
	}
	return nil
}

func ReadHeader(c *device.Conn) (*Header, error) {
	b := make([]byte, headerEnd-headerStart)
	for i := range b {
		v, err := Read(c, uint16(headerStart+i))
		if err != nil {
			return nil, fmt.Errorf("gb: read header: %w", err)
		}
		b[i] = v
	}
	return ParseHeader(b)
}

func session(c *device.Conn) (done func(), err error) {
	done, err = board.Session(c, board.InitGameboy)
	if err != nil {
		return
	}
	if err = board.GameboyPower(c, false); err != nil {
		done()
		return nil, err
	}
	return
}

// Probe powers the slot at 5V and reads the header.
func Probe(c *device.Conn) (*Header, error) {
	done, err := session(c)
	if err != nil {
		return nil, err
	}
	defer done()

	h, err := ReadHeader(c)
	if err != nil {
		return nil, err
	}
	logHeader(h)
	return h, nil
}

func logHeader(h *Header) {
	log.Printf("gb: %v\n", h)
	if !h.ChecksumOK() {
		log.Printf("gb: warning: header checksum 0x%02x does not match computed 0x%02x\n", h.HeaderChecksum, h.computedChecksum)
	}
}

// DumpROM reads the header and writes the whole ROM. romKB overrides the
// header's size when positive.
func DumpROM(ctx context.Context, d *dump.Dumper, w io.Writer, romKB int) (h *Header, err error) {
	c := d.Conn
	done, err := session(c)
	if err != nil {
		return
	}
	defer done()

	if h, err = ReadHeader(c); err != nil {
		return
	}
	logHeader(h)
	if romKB <= 0 {
		romKB = h.ROMSizeKB()
	}

	m, err := mbcFor(h.CartType)
	if err != nil {
		return
	}
	n, banker, err := m.plan(c, romKB)
	if err != nil {
		return
	}
	log.Printf("gb: dumping %s ROM (%dKB, %d banks)\n", m.name, romKB, n)
	if err = d.Banked(ctx, w, n, banker); err != nil {
		return h, fmt.Errorf("gb: ROM: %w", err)
	}
	return
}
