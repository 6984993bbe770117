package nes

import (
	"context"

	"inlretro/device"
	"inlretro/dump"
	"inlretro/opcodes"
)

type CNROM struct{}

func (CNROM) Name() string  { return "cnrom" }
func (CNROM) Number() uint8 { return opcodes.MapCNROM }

func (CNROM) Init(c *device.Conn) error { return nil }

func (m CNROM) Probe(c *device.Conn) (r *ProbeResult, err error) {
	if r, err = baseProbe(c); err != nil {
		return nil, wrapf(m.Name(), err)
	}
	if r.PRGFlash, err = discretePRGID(c); err != nil {
		return nil, wrapf(m.Name(), err)
	}

	// the $1555 and $0AAA commands land in different CHR banks.
	banks := []write{{0x8002, 0x02}, {0x8001, 0x01}, {0x8002, 0x02}}
	id, err := chrID(c, 0x0AAA, func(i int) error {
		return CPUWrite(c, banks[i].addr, banks[i].data)
	})
	if err != nil {
		return nil, wrapf(m.Name(), err)
	}
	r.CHRFlash = &id
	return
}

func (CNROM) PRG(ctx context.Context, d *dump.Dumper, prgKB int) (Plan, error) {
	return discretePRG(prgKB)
}

// CHR selects each 8KB bank by writing its number to a ROM byte that
// holds the same value.
func (CNROM) CHR(ctx context.Context, d *dump.Dumper, chrKB int) (Plan, error) {
	if err := checkSize("CHR", chrKB, 8); err != nil {
		return Plan{}, err
	}
	c := d.Conn
	return Plan{
		Banks: chrKB / 8,
		Banker: dump.BankerFunc(func(ctx context.Context, i int) (dump.Window, error) {
			err := cpuWrites(c, write{0x8000 + uint16(i), uint8(i)}, write{0x8003, uint8(i)})
			return chrWindow(8), err
		}),
	}, nil
}

func init() {
	Register(CNROM{})
}
