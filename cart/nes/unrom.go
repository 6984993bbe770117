package nes

import (
	"bytes"
	"context"
	"log"

	"inlretro/device"
	"inlretro/dump"
	"inlretro/opcodes"
)

// UNROM boards have bus conflicts, so a bank is selected by writing its
// number over a ROM byte that already holds it. Games carry such a bank
// table in the fixed bank.
type UNROM struct{}

func (UNROM) Name() string  { return "unrom" }
func (UNROM) Number() uint8 { return opcodes.MapUxROM }

func (UNROM) Init(c *device.Conn) error {
	return CPUWrite(c, 0x8000, 0x00)
}

func (m UNROM) Probe(c *device.Conn) (r *ProbeResult, err error) {
	if r, err = baseProbe(c); err != nil {
		return nil, wrapf(m.Name(), err)
	}
	if err = senseRAM(c, r); err != nil {
		return nil, wrapf(m.Name(), err)
	}
	if err = m.Init(c); err != nil {
		return nil, wrapf(m.Name(), err)
	}
	if r.PRGFlash, err = discretePRGID(c); err != nil {
		return nil, wrapf(m.Name(), err)
	}
	return
}

// FindBankTable returns the offset in data of the first run of bytes
// 0, 1, ..., n-1.
func FindBankTable(data []byte, n int) (int, bool) {
	if n <= 0 {
		return 0, false
	}

	start, run := 0, 0
	for i, b := range data {
		if int(b) == run {
			if run == 0 {
				start = i
			}
			run++
		} else if b == 0 {
			// a zero breaking one run starts the next.
			start, run = i, 1
		} else {
			run = 0
		}
		if run == n {
			return start, true
		}
	}
	return 0, false
}

// BankTable dumps the fixed bank at $C000 and returns the CPU address of
// a table holding every switchable bank number.
func BankTable(ctx context.Context, d *dump.Dumper, prgKB int) (uint16, error) {
	var fixed bytes.Buffer
	if err := d.Dump(ctx, &fixed, 16, 0x0C, opcodes.MemNESCPU4KB); err != nil {
		return 0, err
	}

	n := prgKB / 16
	off, ok := FindBankTable(fixed.Bytes(), n)
	if !ok {
		return 0, device.Configf("no %d-entry bank table in the fixed bank", n)
	}
	base := 0xC000 + uint16(off)
	log.Printf("nes: unrom: bank table at $%04X\n", base)
	return base, nil
}

// PRG switches each 16KB bank into $8000 through the bank table; the
// last bank is read from the fixed window at $C000.
func (m UNROM) PRG(ctx context.Context, d *dump.Dumper, prgKB int) (Plan, error) {
	if err := checkSize("PRG", prgKB, 16); err != nil {
		return Plan{}, err
	}
	table, err := BankTable(ctx, d, prgKB)
	if err != nil {
		return Plan{}, wrapf(m.Name(), err)
	}

	c := d.Conn
	n := prgKB / 16
	return Plan{
		Banks: n,
		Banker: dump.BankerFunc(func(ctx context.Context, i int) (dump.Window, error) {
			if i == n-1 {
				return dump.Window{SizeKB: 16, Mapper: 0x0C, Mem: opcodes.MemNESCPU4KB}, nil
			}
			err := CPUWrite(c, table+uint16(i), uint8(i))
			return prgWindow(16), err
		}),
	}, nil
}

func (m UNROM) CHR(ctx context.Context, d *dump.Dumper, chrKB int) (Plan, error) {
	return noCHR(m.Name(), chrKB)
}

func init() {
	Register(UNROM{})
}
