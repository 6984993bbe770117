package nes

import (
	"context"

	"inlretro/device"
	"inlretro/dump"
	"inlretro/opcodes"
)

type NROM struct{}

func (NROM) Name() string  { return "nrom" }
func (NROM) Number() uint8 { return opcodes.MapNROM }

func (NROM) Init(c *device.Conn) error { return nil }

func (m NROM) Probe(c *device.Conn) (r *ProbeResult, err error) {
	if r, err = baseProbe(c); err != nil {
		return nil, wrapf(m.Name(), err)
	}
	if r.PRGFlash, err = discretePRGID(c); err != nil {
		return nil, wrapf(m.Name(), err)
	}
	id, err := chrID(c, 0x0AAA, nil)
	if err != nil {
		return nil, wrapf(m.Name(), err)
	}
	r.CHRFlash = &id
	return
}

// PRG reads 32KB at $8000, or the whole ROM when it is smaller.
func (NROM) PRG(ctx context.Context, d *dump.Dumper, prgKB int) (Plan, error) {
	return discretePRG(prgKB)
}

func (NROM) CHR(ctx context.Context, d *dump.Dumper, chrKB int) (Plan, error) {
	if chrKB == 0 {
		return Plan{}, nil
	}
	if err := checkSize("CHR", chrKB, 8); err != nil {
		return Plan{}, err
	}
	return fixedWindows(chrKB/8, chrWindow(8)), nil
}

func discretePRG(prgKB int) (Plan, error) {
	if err := checkSize("PRG", prgKB, 16); err != nil {
		return Plan{}, err
	}
	kb := 32
	if prgKB < kb {
		kb = prgKB
	}
	return fixedWindows(prgKB/kb, prgWindow(kb)), nil
}

func init() {
	Register(NROM{})
}
