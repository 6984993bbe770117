package nes

import (
	"math/rand"

	"inlretro/device"
	"inlretro/opcodes"
)

// testCart emulates the NES boards the mappers drive, behind the mock
// programmer.
type testCart struct {
	board     string
	prg, chr  []byte
	chrRAM    bool
	wram      [0x2000]byte
	mirroring Mirroring

	addr uint16

	prgBank, chrBank int
	mmc1             [4]uint8
	mmc3Select       uint8
	mmc3Regs         [8]uint8
	mmc3Mirror       uint8
}

func randomBytes(seed int64, n int) []byte {
	b := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(b)
	return b
}

func newTestCart(board string, prgKB, chrKB int) *testCart {
	f := &testCart{
		board:     board,
		prg:       randomBytes(1, prgKB*1024),
		mirroring: MirrorVertical,
	}
	if chrKB > 0 {
		f.chr = randomBytes(2, chrKB*1024)
	} else {
		f.chr = make([]byte, 0x2000)
		f.chrRAM = true
	}
	return f
}

func (f *testCart) Exec(req device.Request) ([]byte, device.DeviceStatus) {
	switch req.Dict {
	case opcodes.DictNES:
		switch req.Opcode {
		case opcodes.NESCPUWr:
			f.cpuWrite(req.Operand, req.Misc)
		case opcodes.NESMMC1Wr:
			f.mmc1[(req.Operand>>13)&3] = req.Misc & 0x1F
		case opcodes.NESPPUWr:
			if f.chrRAM {
				f.chr[req.Operand&0x1FFF] = req.Misc
			}
		case opcodes.DiscreteEXP0PRGROMWr:
		case opcodes.NESCPURd:
			return []byte{f.cpuRead(req.Operand)}, device.Success
		case opcodes.NESPPURd:
			return []byte{f.ppuRead(req.Operand)}, device.Success
		default:
			return nil, device.ErrBadNESOpcode
		}
		return nil, device.Success
	case opcodes.DictPinport:
		switch req.Opcode {
		case opcodes.AddrSet:
			f.addr = req.Operand
		case opcodes.CtlRd:
			if req.Operand != opcodes.PinCIA10 {
				return []byte{0, 0}, device.Success
			}
			return []byte{f.ciramA10(), 0}, device.Success
		}
		return nil, device.Success
	case opcodes.DictIO:
		if req.Opcode == opcodes.EXP0PullupTest {
			return []byte{0}, device.Success
		}
		return nil, device.Success
	}
	return nil, device.ErrUnknownDictionary
}

func (f *testCart) Read(mem, mapper uint8, offset uint32, p []byte) {
	for i := range p {
		o := uint16(offset) + uint16(i)
		switch mem {
		case opcodes.MemNESCPU4KB:
			p[i] = f.cpuRead(uint16(mapper)<<12 + o)
		case opcodes.MemNESPPU1KB:
			p[i] = f.ppuRead(uint16(mapper)<<10 + o)
		}
	}
}

func (f *testCart) currentMirroring() Mirroring {
	switch f.board {
	case "mmc1":
		return []Mirroring{MirrorSingleA, MirrorSingleB, MirrorVertical, MirrorHorizont}[f.mmc1[0]&3]
	case "mmc3":
		if f.mmc3Mirror&1 == 0 {
			return MirrorVertical
		}
		return MirrorHorizont
	}
	return f.mirroring
}

func (f *testCart) ciramA10() uint8 {
	switch f.currentMirroring() {
	case MirrorVertical:
		return uint8(f.addr>>10) & 1
	case MirrorHorizont:
		return uint8(f.addr>>11) & 1
	case MirrorSingleB:
		return 1
	}
	return 0
}

func (f *testCart) prgOffset(addr uint16) int {
	a := int(addr - 0x8000)
	const k16 = 0x4000
	n16 := len(f.prg) / k16
	switch f.board {
	case "unrom":
		if addr < 0xC000 {
			return f.prgBank*k16 + a
		}
		return (n16-1)*k16 + a - k16
	case "mmc1":
		prgReg := int(f.mmc1[3] & 0x0F)
		switch (f.mmc1[0] >> 2) & 3 {
		case 0, 1:
			return (prgReg>>1)*0x8000 + a
		case 2:
			if addr < 0xC000 {
				return a
			}
			return prgReg*k16 + a - k16
		default:
			if addr < 0xC000 {
				return prgReg*k16 + a
			}
			return (n16-1)*k16 + a - k16
		}
	case "mmc3":
		n8 := len(f.prg) / 0x2000
		banks := []int{int(f.mmc3Regs[6]), int(f.mmc3Regs[7]), n8 - 2, n8 - 1}
		return (banks[a/0x2000]%n8)*0x2000 + a%0x2000
	}
	return a
}

func (f *testCart) cpuRead(addr uint16) uint8 {
	switch {
	case addr >= 0x6000 && addr < 0x8000:
		return f.wram[addr-0x6000]
	case addr >= 0x8000:
		return f.prg[f.prgOffset(addr)%len(f.prg)]
	}
	return 0
}

func (f *testCart) cpuWrite(addr uint16, data uint8) {
	if addr >= 0x6000 && addr < 0x8000 {
		f.wram[addr-0x6000] = data
		return
	}
	if addr < 0x8000 {
		return
	}
	switch f.board {
	case "cnrom":
		f.chrBank = int(data)
	case "unrom":
		// bus conflict: the ROM drives the same lines.
		f.prgBank = int(data & f.cpuRead(addr))
	case "mmc1":
		if data&0x80 != 0 {
			f.mmc1[0] |= 0x0C
		}
	case "mmc3":
		switch addr & 0xE001 {
		case 0x8000:
			f.mmc3Select = data
		case 0x8001:
			f.mmc3Regs[f.mmc3Select&7] = data
		case 0xA000:
			f.mmc3Mirror = data
		}
	}
}

func (f *testCart) ppuRead(addr uint16) uint8 {
	addr &= 0x1FFF
	a := int(addr)
	if f.chrRAM {
		return f.chr[a]
	}
	var off int
	switch f.board {
	case "cnrom":
		off = f.chrBank*0x2000 + a
	case "mmc1":
		if f.mmc1[0]&0x10 != 0 {
			bank := int(f.mmc1[1])
			if addr >= 0x1000 {
				bank = int(f.mmc1[2])
			}
			off = bank*0x1000 + a%0x1000
		} else {
			off = int(f.mmc1[1]&0x1E)*0x1000 + a
		}
	case "mmc3":
		switch {
		case addr < 0x0800:
			off = int(f.mmc3Regs[0]&0xFE)*0x400 + a
		case addr < 0x1000:
			off = int(f.mmc3Regs[1]&0xFE)*0x400 + a - 0x0800
		default:
			off = int(f.mmc3Regs[2+(a-0x1000)/0x400])*0x400 + a%0x400
		}
	default:
		off = a
	}
	return f.chr[off%len(f.chr)]
}
