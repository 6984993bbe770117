package nes

import (
	"fmt"
	"log"

	"inlretro/board"
	"inlretro/device"
)

// FlashID is a JEDEC manufacturer and product ID pair.
type FlashID struct {
	Manufacturer uint8
	Product      uint8
}

func (id FlashID) String() string {
	return fmt.Sprintf("manf 0x%02x prod 0x%02x", id.Manufacturer, id.Product)
}

// ProbeResult collects what a mapper's self tests found.
type ProbeResult struct {
	Mirroring      Mirroring
	EXP0           uint8
	PRGFlash       FlashID
	CHRFlash       *FlashID
	CHRRAM         *bool
	MirrorFailures []string
}

func (r *ProbeResult) Log(name string) {
	log.Printf("nes: %s: mirroring %v, %s\n", name, r.Mirroring, board.DescribeEXP0(r.EXP0))
	log.Printf("nes: %s: PRG flash %v\n", name, r.PRGFlash)
	if r.CHRFlash != nil {
		log.Printf("nes: %s: CHR flash %v\n", name, *r.CHRFlash)
	}
	if r.CHRRAM != nil {
		log.Printf("nes: %s: CHR-RAM %v\n", name, *r.CHRRAM)
	}
	for _, f := range r.MirrorFailures {
		log.Printf("nes: %s: mirror test fail (%s)\n", name, f)
	}
}

// readID reads the two ID bytes and issues the exit command.
func readID(c *device.Conn, rd func(*device.Conn, uint16) (uint8, error), base uint16, exit func() error) (id FlashID, err error) {
	if id.Manufacturer, err = rd(c, base); err != nil {
		return
	}
	if id.Product, err = rd(c, base+1); err != nil {
		return
	}
	err = exit()
	return
}

// discretePRGID enters software ID mode through EXP0 writes, as on
// NROM, CNROM and UNROM boards.
func discretePRGID(c *device.Conn) (FlashID, error) {
	for _, w := range []write{{0x5555, 0xAA}, {0x2AAA, 0x55}, {0x5555, 0x90}} {
		if err := DiscreteWrite(c, w.addr, w.data); err != nil {
			return FlashID{}, err
		}
	}
	return readID(c, CPURead, 0x8000, func() error { return DiscreteWrite(c, 0x8000, 0xF0) })
}

// mapperPRGID enters software ID mode through the mapper's windows at
// $D555 and $AAAA.
func mapperPRGID(c *device.Conn) (FlashID, error) {
	if err := cpuWrites(c, write{0xD555, 0xAA}, write{0xAAAA, 0x55}, write{0xD555, 0x90}); err != nil {
		return FlashID{}, err
	}
	return readID(c, CPURead, 0x8000, func() error { return CPUWrite(c, 0x8000, 0xF0) })
}

// chrID enters software ID mode on CHR flash. When set, between runs
// before each command write.
func chrID(c *device.Conn, second uint16, between func(i int) error) (id FlashID, err error) {
	cmds := []write{{0x1555, 0xAA}, {second, 0x55}, {0x1555, 0x90}}
	for i, w := range cmds {
		if between != nil {
			if err = between(i); err != nil {
				return
			}
		}
		if err = PPUWrite(c, w.addr, w.data); err != nil {
			return
		}
	}
	return readID(c, PPURead, 0x0000, func() error { return PPUWrite(c, 0x0000, 0xF0) })
}

// PPURAMSense writes two patterns at addr and reads them back. Both
// surviving means the board has CHR-RAM.
func PPURAMSense(c *device.Conn, addr uint16) (bool, error) {
	for _, v := range []uint8{0xAA, 0x55} {
		if err := PPUWrite(c, addr, v); err != nil {
			return false, err
		}
		got, err := PPURead(c, addr)
		if err != nil {
			return false, err
		}
		if got != v {
			return false, nil
		}
	}
	return true, nil
}

// mirrorTest sets a mirroring mode through set and checks that
// DetectMirroring agrees.
func mirrorTest(c *device.Conn, r *ProbeResult, want Mirroring, set func() error) error {
	if err := set(); err != nil {
		return err
	}
	got, err := DetectMirroring(c)
	if err != nil {
		return err
	}
	if got != want {
		r.MirrorFailures = append(r.MirrorFailures, want.String())
	}
	return nil
}

func baseProbe(c *device.Conn) (r *ProbeResult, err error) {
	r = &ProbeResult{}
	if r.Mirroring, err = DetectMirroring(c); err != nil {
		return
	}
	r.EXP0, err = board.EXP0Pullup(c)
	return
}

func senseRAM(c *device.Conn, r *ProbeResult) error {
	ram, err := PPURAMSense(c, 0x1000)
	if err != nil {
		return err
	}
	r.CHRRAM = &ram
	return nil
}
