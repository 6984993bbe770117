package nes

import (
	"context"

	"inlretro/board"
	"inlretro/device"
	"inlretro/dump"
	"inlretro/opcodes"
)

type MMC3 struct{}

func (MMC3) Name() string  { return "mmc3" }
func (MMC3) Number() uint8 { return opcodes.MapMMC3 }

// Init leaves PRG-RAM disabled and write protected, selects vertical
// mirroring, and lays out CHR so $1000-$17FF answers $5555 commands and
// $1800-$1FFF answers $2AAA. $8000 is left selecting a CHR register so
// stray writes there cannot move PRG.
func (MMC3) Init(c *device.Conn) error {
	return cpuWrites(c,
		write{0xA001, 0x40},
		write{0xA000, 0x00},
		write{0x8000, 0x00}, write{0x8001, 0x00},
		write{0x8000, 0x01}, write{0x8001, 0x02},
		write{0x8000, 0x02}, write{0x8001, 0x15},
		write{0x8000, 0x03}, write{0x8001, 0x15},
		write{0x8000, 0x04}, write{0x8001, 0x0A},
		write{0x8000, 0x05}, write{0x8001, 0x0A},
		write{0x8000, 0x07}, write{0x8001, 0x01},
		write{0x8000, 0x06}, write{0x8001, 0x00},
		write{0x8000, 0x00},
	)
}

func (m MMC3) Probe(c *device.Conn) (r *ProbeResult, err error) {
	if err = m.Init(c); err != nil {
		return nil, wrapf(m.Name(), err)
	}

	r = &ProbeResult{}
	if err = mirrorTest(c, r, MirrorVertical, func() error { return CPUWrite(c, 0xA000, 0x00) }); err != nil {
		return nil, wrapf(m.Name(), err)
	}
	if err = mirrorTest(c, r, MirrorHorizont, func() error { return CPUWrite(c, 0xA000, 0x01) }); err != nil {
		return nil, wrapf(m.Name(), err)
	}
	r.Mirroring = MirrorHorizont

	if err = senseRAM(c, r); err != nil {
		return nil, wrapf(m.Name(), err)
	}
	if r.EXP0, err = board.EXP0Pullup(c); err != nil {
		return nil, wrapf(m.Name(), err)
	}

	if err = m.Init(c); err != nil {
		return nil, wrapf(m.Name(), err)
	}
	if r.PRGFlash, err = mapperPRGID(c); err != nil {
		return nil, wrapf(m.Name(), err)
	}

	if err = m.Init(c); err != nil {
		return nil, wrapf(m.Name(), err)
	}
	id, err := chrID(c, 0x1AAA, nil)
	if err != nil {
		return nil, wrapf(m.Name(), err)
	}
	r.CHRFlash = &id
	return
}

// PRG maps two 8KB banks at $8000 and $A000 per 16KB window.
func (MMC3) PRG(ctx context.Context, d *dump.Dumper, prgKB int) (Plan, error) {
	if err := checkSize("PRG", prgKB, 16); err != nil {
		return Plan{}, err
	}
	c := d.Conn
	return Plan{
		Banks: prgKB / 16,
		Banker: dump.BankerFunc(func(ctx context.Context, i int) (dump.Window, error) {
			err := cpuWrites(c,
				write{0x8000, 0x06}, write{0x8001, uint8(i * 2)},
				write{0x8000, 0x07}, write{0x8001, uint8(i*2 + 1)},
			)
			return prgWindow(16), err
		}),
	}, nil
}

// CHR maps two 2KB banks at $0000 and $0800 per 4KB window. The bank
// registers count in 1KB units.
func (MMC3) CHR(ctx context.Context, d *dump.Dumper, chrKB int) (Plan, error) {
	if chrKB == 0 {
		return Plan{}, nil
	}
	if err := checkSize("CHR", chrKB, 4); err != nil {
		return Plan{}, err
	}
	c := d.Conn
	return Plan{
		Banks: chrKB / 4,
		Banker: dump.BankerFunc(func(ctx context.Context, i int) (dump.Window, error) {
			err := cpuWrites(c,
				write{0x8000, 0x00}, write{0x8001, uint8((i * 2) << 1)},
				write{0x8000, 0x01}, write{0x8001, uint8((i*2 + 1) << 1)},
			)
			return chrWindow(4), err
		}),
	}, nil
}

// EnableRAM enables PRG-RAM reads with writes still denied.
func (MMC3) EnableRAM(c *device.Conn) error {
	return CPUWrite(c, 0xA001, 0xC0)
}

func init() {
	Register(MMC3{})
}
