package nes

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

// Probe runs the mapper's self tests and logs what they found.
func Probe(c *device.Conn, m Mapper) (*ProbeResult, error) {
	done, err := board.Session(c, board.InitNES)
	if err != nil {
		return nil, err
	}
	defer done()

	r, err := m.Probe(c)
	if err != nil {
		return nil, err
	}
	r.Log(m.Name())
	return r, nil
}

// DumpROM writes an iNES header followed by PRG-ROM and CHR-ROM.
func DumpROM(ctx context.Context, d *dump.Dumper, w io.Writer, m Mapper, prgKB, chrKB int) (h Header, err error) {
	c := d.Conn
	done, err := board.Session(c, board.InitNES)
	if err != nil {
		return
	}
	defer done()

	if err = m.Init(c); err != nil {
		return h, wrapf(m.Name(), err)
	}
	prg, err := m.PRG(ctx, d, prgKB)
	if err != nil {
		return
	}
	chr, err := m.CHR(ctx, d, chrKB)
	if err != nil {
		return
	}
	mir, err := DetectMirroring(c)
	if err != nil {
		return h, wrapf(m.Name(), err)
	}

	h = Header{PRGKB: prgKB, CHRKB: chrKB, Mapper: m.Number(), Mirroring: mir}
	log.Printf("nes: %v\n", h)
	if _, err = h.WriteTo(w); err != nil {
		return h, fmt.Errorf("nes: write header: %w", err)
	}

	log.Printf("nes: dumping PRG-ROM (%d banks)\n", prg.Banks)
	if err = d.Banked(ctx, w, prg.Banks, prg.Banker); err != nil {
		return h, fmt.Errorf("nes: PRG-ROM: %w", err)
	}
	if chr.Banks > 0 {
		log.Printf("nes: dumping CHR-ROM (%d banks)\n", chr.Banks)
		if err = d.Banked(ctx, w, chr.Banks, chr.Banker); err != nil {
			return h, fmt.Errorf("nes: CHR-ROM: %w", err)
		}
	}
	return
}

// DumpRAM reads battery-backed PRG-RAM from $6000.
func DumpRAM(ctx context.Context, d *dump.Dumper, w io.Writer, m Mapper, ramKB int) (err error) {
	rm, ok := m.(RAMMapper)
	if !ok {
		return device.Configf("%s boards have no PRG-RAM support", m.Name())
	}
	if ramKB == 0 {
		ramKB = 8
	}
	if ramKB != 8 {
		return device.Configf("PRG-RAM size %dKB; only 8KB at $6000 is supported", ramKB)
	}

	c := d.Conn
	done, err := board.Session(c, board.InitNES)
	if err != nil {
		return
	}
	defer done()

	if err = rm.Init(c); err != nil {
		return wrapf(m.Name(), err)
	}
	if err = rm.EnableRAM(c); err != nil {
		return wrapf(m.Name(), err)
	}
	log.Printf("nes: dumping PRG-RAM (%dKB)\n", ramKB)
	if err = d.Dump(ctx, w, ramKB, 0x06, opcodes.MemNESCPU4KB); err != nil {
		return fmt.Errorf("nes: PRG-RAM: %w", err)
	}
	return
}
