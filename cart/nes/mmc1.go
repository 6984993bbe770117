package nes

import (
	"context"

	"inlretro/board"
	"inlretro/device"
	"inlretro/dump"
	"inlretro/opcodes"
)

type MMC1 struct{}

func (MMC1) Name() string  { return "mmc1" }
func (MMC1) Number() uint8 { return opcodes.MapMMC1 }

// Init selects 32KB PRG mode and 4KB CHR mode.
func (MMC1) Init(c *device.Conn) error {
	if _, err := CPURead(c, 0x8000); err != nil {
		return err
	}
	if err := CPUWrite(c, 0x8000, 0x80); err != nil {
		return err
	}
	for _, w := range []write{{0x8000, 0x10}, {0xE000, 0x10}, {0xA000, 0x12}, {0xC000, 0x15}} {
		if err := MMC1Write(c, w.addr, w.data); err != nil {
			return err
		}
	}
	return nil
}

func (m MMC1) Probe(c *device.Conn) (r *ProbeResult, err error) {
	if err = m.Init(c); err != nil {
		return nil, wrapf(m.Name(), err)
	}

	r = &ProbeResult{}
	for ctl, want := range []Mirroring{MirrorSingleA, MirrorSingleB, MirrorVertical, MirrorHorizont} {
		ctl := uint8(ctl)
		if err = mirrorTest(c, r, want, func() error { return MMC1Write(c, 0x8000, ctl) }); err != nil {
			return nil, wrapf(m.Name(), err)
		}
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
	id, err := chrID(c, 0x0AAA, nil)
	if err != nil {
		return nil, wrapf(m.Name(), err)
	}
	r.CHRFlash = &id
	return
}

func (MMC1) PRG(ctx context.Context, d *dump.Dumper, prgKB int) (Plan, error) {
	if err := checkSize("PRG", prgKB, 32); err != nil {
		return Plan{}, err
	}
	c := d.Conn
	return Plan{
		Banks: prgKB / 32,
		Banker: dump.BankerFunc(func(ctx context.Context, i int) (dump.Window, error) {
			// the low bit is ignored in 32KB mode.
			err := MMC1Write(c, 0xE000, uint8(i<<1))
			return prgWindow(32), err
		}),
	}, nil
}

func (MMC1) CHR(ctx context.Context, d *dump.Dumper, chrKB int) (Plan, error) {
	if chrKB == 0 {
		return Plan{}, nil
	}
	if err := checkSize("CHR", chrKB, 8); err != nil {
		return Plan{}, err
	}
	c := d.Conn
	return Plan{
		Banks: chrKB / 8,
		Banker: dump.BankerFunc(func(ctx context.Context, i int) (dump.Window, error) {
			if err := MMC1Write(c, 0xA000, uint8(i*2)); err != nil {
				return dump.Window{}, err
			}
			err := MMC1Write(c, 0xC000, uint8(i*2+1))
			return chrWindow(8), err
		}),
	}, nil
}

// EnableRAM clears the PRG-RAM disable bit.
func (MMC1) EnableRAM(c *device.Conn) error {
	return MMC1Write(c, 0xE000, 0x00)
}

func init() {
	Register(MMC1{})
}
