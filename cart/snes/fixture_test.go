package snes

import (
	"encoding/hex"
	"math/rand"

	"inlretro/device"
	"inlretro/opcodes"
)

const zeldaHeader = "018d2401e2306bffffffffffffffffff544845204c4547454e44204f46205a454c4441202020020a03010100f2500dafffffffff2c82ffff2c82c9800080d882"

// testCart emulates a SNES board behind the mock programmer.
type testCart struct {
	mapping Mapping
	rom     []byte
	sram    []byte
	bank    uint8
	banks   []uint8

	// patch overrides ROM reads at 24-bit bus addresses.
	patch map[uint32]byte
}

func newTestCart(m Mapping, romKB, ramKB int) *testCart {
	f := &testCart{
		mapping: m,
		rom:     make([]byte, romKB*1024),
		sram:    make([]byte, ramKB*1024),
	}
	r := rand.New(rand.NewSource(int64(m) + 1))
	r.Read(f.rom)
	r.Read(f.sram)
	return f
}

// putHeader writes the Zelda header with its map mode and sizes patched.
func (f *testCart) putHeader(pc int, mapMode, romSize, ramSize byte) {
	h := f.rom[pc : pc+0x40]
	if _, err := hex.Decode(h, []byte(zeldaHeader)); err != nil {
		panic(err)
	}
	h[0x25] = mapMode
	h[0x27] = romSize
	h[0x28] = ramSize
}

func (f *testCart) pc(bank uint8, addr uint16) int {
	var pc int
	switch f.mapping {
	case LoROM:
		pc = int(bank&0x7F)*0x8000 + int(addr&0x7FFF)
	case HiROM:
		pc = int(bank&0x3F)<<16 | int(addr)
	case ExHiROM:
		pc = int(bank&0x3F)<<16 | int(addr)
		if bank < 0xC0 {
			pc += 0x400000
		}
	}
	return pc % len(f.rom)
}

// patchHeader overlays the Zelda header at a bus address with one field
// changed.
func (f *testCart) patchHeader(bus uint32, mapMode byte, offset int, value byte) {
	h, err := hex.DecodeString(zeldaHeader)
	if err != nil {
		panic(err)
	}
	h[0x25] = mapMode
	h[offset] = value
	if f.patch == nil {
		f.patch = make(map[uint32]byte)
	}
	for i, v := range h[:HeaderSize] {
		f.patch[bus+uint32(i)] = v
	}
}

func (f *testCart) romRead(bank uint8, addr uint16) uint8 {
	if v, ok := f.patch[uint32(bank)<<16|uint32(addr)]; ok {
		return v
	}
	if f.mapping == LoROM && bank == 0x70 && addr < 0x8000 && len(f.sram) > 0 {
		return f.sram[int(addr)%len(f.sram)]
	}
	return f.rom[f.pc(bank, addr)]
}

func (f *testCart) sysRead(bank uint8, addr uint16) uint8 {
	if f.mapping != LoROM && bank >= 0x30 && bank < 0x40 && addr >= 0x6000 && addr < 0x8000 && len(f.sram) > 0 {
		return f.sram[(int(bank-0x30)*0x2000+int(addr-0x6000))%len(f.sram)]
	}
	return 0xFF
}

func (f *testCart) Exec(req device.Request) ([]byte, device.DeviceStatus) {
	switch req.Dict {
	case opcodes.DictSNES:
		switch req.Opcode {
		case opcodes.SNESSetBank:
			f.bank = uint8(req.Operand)
			f.banks = append(f.banks, f.bank)
			return nil, device.Success
		case opcodes.SNESROMRd:
			return []byte{f.romRead(f.bank, req.Operand)}, device.Success
		case opcodes.SNESSysRd:
			return []byte{f.sysRead(f.bank, req.Operand)}, device.Success
		}
		return nil, device.ErrBadSNESOpcode
	case opcodes.DictIO, opcodes.DictPinport:
		return nil, device.Success
	}
	return nil, device.ErrUnknownDictionary
}

func (f *testCart) Read(mem, mapper uint8, offset uint32, p []byte) {
	for i := range p {
		addr := uint16(mapper)<<8 + uint16(offset) + uint16(i)
		switch mem {
		case opcodes.MemSNESROMPage:
			p[i] = f.romRead(f.bank, addr)
		case opcodes.MemSNESSysPage:
			p[i] = f.sysRead(f.bank, addr)
		}
	}
}
