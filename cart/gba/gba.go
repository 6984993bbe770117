// Package gba reads Game Boy Advance cartridge headers and ROM.
package gba

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"inlretro/board"
	"inlretro/device"
	"inlretro/dump"
	"inlretro/opcodes"
)

const (
	// bankKB is the span of one latched A16-A23 value.
	bankKB = 128

	// DefaultROMKB is dumped when no size is given; the header has none.
	DefaultROMKB = 32 * 1024
)

// Latch puts a word address on the multiplexed bus. Reads then
// auto-increment from there.
func Latch(c *device.Conn, word uint32) error {
	return c.Exec(opcodes.DictGBA, opcodes.GBALatchAddr, uint16(word), uint8(word>>16))
}

func Release(c *device.Conn) error {
	return c.Exec(opcodes.DictGBA, opcodes.GBAReleaseBus, 0, 0)
}

// ReadWord reads the next little-endian ROM word.
func ReadWord(c *device.Conn) (uint16, error) {
	return c.Read16(opcodes.DictGBA, opcodes.GBARd, 0, 0)
}

// ReadBytes reads n bytes starting at an even byte address.
func ReadBytes(c *device.Conn, addr uint32, n int) (b []byte, err error) {
	if err = Latch(c, addr>>1); err != nil {
		return
	}
	defer func() {
		if rerr := Release(c); err == nil {
			err = rerr
		}
	}()

	b = make([]byte, (n+1)&^1)
	for i := 0; i < len(b); i += 2 {
		var w uint16
		if w, err = ReadWord(c); err != nil {
			return nil, err
		}
		b[i], b[i+1] = uint8(w), uint8(w>>8)
	}
	return b[:n], nil
}

// Header is the block at $A0-$BF.
type Header struct {
	Title      string
	GameCode   string
	MakerCode  string
	UnitCode   uint8
	DeviceType uint8
	Version    uint8
	Checksum   uint8

	computed uint8
}

func ParseHeader(b []byte) (*Header, error) {
	if len(b) < 0x20 {
		return nil, fmt.Errorf("gba: header needs %d bytes, got %d", 0x20, len(b))
	}
	h := &Header{
		Title:      cstring(b[0x00:0x0C]),
		GameCode:   cstring(b[0x0C:0x10]),
		MakerCode:  cstring(b[0x10:0x12]),
		UnitCode:   b[0x13],
		DeviceType: b[0x14],
		Version:    b[0x1C],
		Checksum:   b[0x1D],
	}
	var sum uint8
	for _, v := range b[:0x1D] {
		sum -= v
	}
	h.computed = sum - 0x19
	return h, nil
}

func cstring(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return strings.TrimSpace(string(b))
}

func (h *Header) ChecksumOK() bool { return h.computed == h.Checksum }

func (h *Header) String() string {
	return fmt.Sprintf("%q code %q maker %q, version %d, checksum 0x%02x", h.Title, h.GameCode, h.MakerCode, h.Version, h.Checksum)
}

func ReadHeader(c *device.Conn) (*Header, error) {
	b, err := ReadBytes(c, 0xA0, 0x20)
	if err != nil {
		return nil, fmt.Errorf("gba: read header: %w", err)
	}
	return ParseHeader(b)
}

func session(c *device.Conn) (done func(), err error) {
	done, err = board.Session(c, board.InitGBA)
	if err != nil {
		return
	}
	if err = board.GameboyPower(c, true); err != nil {
		done()
		return nil, err
	}
	return
}

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
	log.Printf("gba: %v\n", h)
	if !h.ChecksumOK() {
		log.Printf("gba: warning: header checksum 0x%02x does not match computed 0x%02x\n", h.Checksum, h.computed)
	}
}

// probeBanks are checked for erased contents; a blank bank there means
// the ROM ended.
func probeBank(i int) bool { return i == 32 || i == 64 || i == 128 }

func blank(b []byte) bool {
	for _, v := range b {
		if v != 0xFF {
			return false
		}
	}
	return true
}

// DumpROM writes romKB of ROM and returns the number of kilobytes
// written. When romKB is not given it defaults to DefaultROMKB and the
// dump stops early at the first probe bank that reads back erased.
func DumpROM(ctx context.Context, d *dump.Dumper, w io.Writer, romKB int) (h *Header, written int, err error) {
	guessed := romKB <= 0
	if guessed {
		romKB = DefaultROMKB
	}
	if romKB%bankKB != 0 || romKB > DefaultROMKB {
		return nil, 0, device.Configf("GBA ROM size %dKB is not a multiple of %dKB up to %dKB", romKB, bankKB, DefaultROMKB)
	}

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

	n := romKB / bankKB
	buf := bytes.NewBuffer(make([]byte, 0, bankKB*1024))
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			return
		}
		if i%8 == 0 {
			log.Printf("gba: dumping ROM bank %d of %d\n", i, n)
		}

		buf.Reset()
		if err = Latch(c, uint32(i)<<16); err != nil {
			return h, written, fmt.Errorf("gba: latch bank %d: %w", i, err)
		}
		if err = d.Dump(ctx, buf, bankKB, 0x00, opcodes.MemGBAROMPage); err != nil {
			return h, written, fmt.Errorf("gba: bank %d: %w", i, err)
		}
		if err = Release(c); err != nil {
			return h, written, fmt.Errorf("gba: release bank %d: %w", i, err)
		}

		if guessed && probeBank(i) && blank(buf.Bytes()) {
			log.Printf("gba: bank %d is blank; ROM ends at %dKB\n", i, written)
			break
		}
		if _, err = w.Write(buf.Bytes()); err != nil {
			return h, written, fmt.Errorf("gba: write bank %d: %w", i, err)
		}
		written += bankKB
	}
	return
}
