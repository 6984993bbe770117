// Package snes reads Super Nintendo cartridge headers, ROM and save RAM.
package snes

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/alttpo/snes/mapping/lorom"

	"inlretro/board"
	"inlretro/device"
	"inlretro/dump"
	"inlretro/opcodes"
)

// Cart is a resolved cartridge.
type Cart struct {
	Mapping Mapping
	Header  *Header
}

// ReadHeader reads the header at a bus address such as $00FFB0.
func ReadHeader(c *device.Conn, bus uint32) (*Header, error) {
	b, err := ReadBus(c, bus, HeaderSize)
	if err != nil {
		return nil, fmt.Errorf("snes: read header at $%06X: %w", bus, err)
	}
	return NewHeader(b)
}

// Resolve tries each header location in turn and takes the first valid
// one. A checksum mismatch is only reported.
//
// Besides the hardware type, destination, ROM size and RAM size tables,
// a candidate's map mode byte must agree with its location. This goes
// beyond the table check on purpose: a LoROM board ignores A15, so its
// header mirrors into $00FFB0 and would otherwise resolve as HiROM.
func Resolve(c *device.Conn) (cart Cart, err error) {
	for _, cand := range candidates {
		var h *Header
		h, err = ReadHeader(c, cand.bus)
		if err != nil {
			return
		}
		if !h.Valid() || !cand.mapping.matches(h.MapMode) {
			log.Printf("snes: no %s header at $%06X\n", cand.mapping, cand.bus)
			continue
		}
		if !h.ChecksumOK() {
			log.Printf("snes: warning: %s checksum 0x%04x does not match complement 0x%04x\n",
				cand.mapping, h.CheckSum, h.ComplementCheckSum)
		}
		log.Printf("snes: %s header: %v\n", cand.mapping, h)
		return Cart{Mapping: cand.mapping, Header: h}, nil
	}
	return cart, device.Configf("no valid SNES header at $40FFB0, $00FFB0 or $007FB0")
}

// Probe initializes the SNES port and resolves the cartridge.
func Probe(c *device.Conn) (cart Cart, err error) {
	done, err := board.Session(c, board.InitSNES)
	if err != nil {
		return
	}
	defer done()
	return Resolve(c)
}

// romBanker selects ROM banks in file order.
func romBanker(c *device.Conn, m Mapping) dump.BankerFunc {
	return func(ctx context.Context, i int) (dump.Window, error) {
		switch m {
		case LoROM:
			// 32KB of ROM per bank at $8000, read through the $80+ mirror.
			bus, err := lorom.PakAddressToBus(uint32(i) * 0x8000)
			if err != nil {
				return dump.Window{}, fmt.Errorf("snes: LoROM bank %d: %w", i, err)
			}
			return dump.Window{SizeKB: 32, Mapper: 0x80, Mem: opcodes.MemSNESROMPage}, SetBank(c, uint8(bus>>16))
		case ExHiROM:
			// $C0-$FF hold the first 4MB; the rest lives at $40-$7D.
			bank := uint8(0xC0 + i)
			if i >= 0x40 {
				bank = uint8(i)
			}
			return dump.Window{SizeKB: 64, Mapper: 0x00, Mem: opcodes.MemSNESROMPage}, SetBank(c, bank)
		default:
			return dump.Window{SizeKB: 64, Mapper: 0x00, Mem: opcodes.MemSNESROMPage}, SetBank(c, uint8(0xC0+i))
		}
	}
}

func romBanks(m Mapping, romKB int) (int, error) {
	size := 64
	limit := 64 * 64
	switch m {
	case LoROM:
		size = 32
		limit = 128 * 32
	case ExHiROM:
		limit = (64 + 0x3E) * 64
	}
	if romKB <= 0 || romKB%size != 0 || romKB > limit {
		return 0, device.Configf("%s ROM size %dKB is not a multiple of %dKB up to %dKB", m, romKB, size, limit)
	}
	return romKB / size, nil
}

// DumpROM resolves the cartridge and writes its ROM. romKB overrides the
// header's size when positive.
func DumpROM(ctx context.Context, d *dump.Dumper, w io.Writer, romKB int) (cart Cart, err error) {
	c := d.Conn
	done, err := board.Session(c, board.InitSNES)
	if err != nil {
		return
	}
	defer done()

	if cart, err = Resolve(c); err != nil {
		return
	}
	if romKB <= 0 {
		romKB = cart.Header.ROMSizeKB()
	}
	n, err := romBanks(cart.Mapping, romKB)
	if err != nil {
		return
	}
	log.Printf("snes: dumping %s ROM (%dKB, %d banks)\n", cart.Mapping, romKB, n)
	if err = d.Banked(ctx, w, n, romBanker(c, cart.Mapping)); err != nil {
		return cart, fmt.Errorf("snes: ROM: %w", err)
	}
	return
}

// DumpRAM writes battery-backed save RAM. ramKB overrides the header's
// size when positive.
func DumpRAM(ctx context.Context, d *dump.Dumper, w io.Writer, ramKB int) (cart Cart, err error) {
	c := d.Conn
	done, err := board.Session(c, board.InitSNES)
	if err != nil {
		return
	}
	defer done()

	if cart, err = Resolve(c); err != nil {
		return
	}
	if ramKB <= 0 {
		ramKB = cart.Header.RAMSizeKB()
	}
	if ramKB == 0 {
		return cart, device.Configf("cartridge reports no save RAM")
	}

	var (
		n      int
		banker dump.BankerFunc
	)
	switch cart.Mapping {
	case LoROM:
		if ramKB > 32 {
			return cart, device.Configf("LoROM save RAM %dKB exceeds 32KB", ramKB)
		}
		n = 1
		banker = func(ctx context.Context, i int) (dump.Window, error) {
			return dump.Window{SizeKB: ramKB, Mapper: 0x00, Mem: opcodes.MemSNESROMPage}, SetBank(c, 0x70)
		}
	default:
		// HiROM save RAM sits at $6000-$7FFF, 8KB per bank from $30.
		if ramKB < 8 {
			n = 1
		} else {
			if ramKB%8 != 0 || ramKB > 8*16 {
				return cart, device.Configf("HiROM save RAM %dKB must be whole 8KB banks", ramKB)
			}
			n = ramKB / 8
		}
		size := ramKB
		if size > 8 {
			size = 8
		}
		banker = func(ctx context.Context, i int) (dump.Window, error) {
			return dump.Window{SizeKB: size, Mapper: 0x60, Mem: opcodes.MemSNESSysPage}, SetBank(c, uint8(0x30+i))
		}
	}
	log.Printf("snes: dumping %s save RAM (%dKB)\n", cart.Mapping, ramKB)
	if err = d.Banked(ctx, w, n, banker); err != nil {
		return cart, fmt.Errorf("snes: save RAM: %w", err)
	}
	return
}
