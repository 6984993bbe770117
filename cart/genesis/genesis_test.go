package genesis

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"math/rand"
	"testing"

	"inlretro/device"
	"inlretro/device/mock"
	"inlretro/dump"
	"inlretro/opcodes"
	"inlretro/util"
)

// testCart emulates a Genesis cartridge with odd-byte save RAM.
type testCart struct {
	rom  []byte
	sram []byte
	bank uint16
}

func newTestCart(romKB, sramKB int) *testCart {
	f := &testCart{rom: make([]byte, romKB*1024), sram: make([]byte, sramKB*1024)}
	r := rand.New(rand.NewSource(int64(romKB)))
	r.Read(f.rom)
	r.Read(f.sram)

	h := f.rom[0x100:0x200]
	for i := range h {
		h[i] = ' '
	}
	copy(h[0x00:], "SEGA GENESIS")
	copy(h[0x10:], "(C)SEGA 1991.APR")
	copy(h[0x20:], "SONIC THE               HEDGEHOG")
	copy(h[0x50:], "SONIC THE HEDGEHOG")
	copy(h[0x80:], "GM 00001009-00")
	binary.BigEndian.PutUint16(h[0x8E:], 0x264A)
	copy(h[0x90:], "J")
	binary.BigEndian.PutUint32(h[0xA0:], 0)
	binary.BigEndian.PutUint32(h[0xA4:], uint32(romKB*1024-1))
	binary.BigEndian.PutUint32(h[0xA8:], 0xFF0000)
	binary.BigEndian.PutUint32(h[0xAC:], 0xFFFFFF)
	if sramKB > 0 {
		copy(h[0xB0:], []byte{'R', 'A', 0xF8, 0x20})
		binary.BigEndian.PutUint32(h[0xB4:], 0x200001)
		binary.BigEndian.PutUint32(h[0xB8:], uint32(0x200001+sramKB*2*1024-2))
	}
	copy(h[0xF0:], "JUE")
	return f
}

func (f *testCart) Exec(req device.Request) ([]byte, device.DeviceStatus) {
	switch req.Dict {
	case opcodes.DictGenesis:
		switch req.Opcode {
		case opcodes.GenSetBank:
			f.bank = req.Operand
			return nil, device.Success
		case opcodes.GenROMRd:
			a := int(f.bank)*0x20000 + int(req.Operand)*2
			return []byte{f.rom[a+1], f.rom[a]}, device.Success
		}
		return nil, device.GenFail
	case opcodes.DictIO, opcodes.DictPinport:
		return nil, device.Success
	}
	return nil, device.ErrUnknownDictionary
}

func (f *testCart) Read(mem, mapper uint8, offset uint32, p []byte) {
	for i := range p {
		o := int(offset) + i
		switch mem {
		case opcodes.MemGenesisROMPage0:
			p[i] = f.rom[int(f.bank)*0x20000+o]
		case opcodes.MemGenesisROMPage1:
			p[i] = f.rom[int(f.bank)*0x20000+0x10000+o]
		case opcodes.MemGenesisRAMPage:
			p[i] = f.sram[int(f.bank-ramBase)*0x2000+o]
		}
	}
}

func newDumper(f *testCart) *dump.Dumper {
	return dump.NewDumper(device.NewConn(mock.New(f)), dump.Options{})
}

func TestReadHeader(t *testing.T) {
	f := newTestCart(512, 8)
	h, err := ReadHeader(device.NewConn(mock.New(f)))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		got  interface{}
		want interface{}
	}{
		{"System", h.System, "SEGA GENESIS"},
		{"DomesticName", h.DomesticName, "SONIC THE HEDGEHOG"},
		{"Serial", h.Serial, "GM 00001009-00"},
		{"Checksum", h.Checksum, uint16(0x264A)},
		{"ROMSizeKB", h.ROMSizeKB(), 512},
		{"RAMSizeKB", h.RAMSizeKB(), 64},
		{"ExtraMemory", h.ExtraMemory, true},
		{"ExtraMemoryType", h.ExtraMemoryType, uint8(SaveRAMType)},
		{"ExtraMemoryKB", h.ExtraMemoryKB(), 16},
		{"Regions", h.Regions, "JUE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s got = %v, want %v", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestReadWordByteOrder(t *testing.T) {
	f := newTestCart(256, 0)
	f.rom[0x20000+0x200], f.rom[0x20000+0x201] = 0x12, 0x34
	c := device.NewConn(mock.New(f))

	if err := SetBank(c, 1); err != nil {
		t.Fatal(err)
	}
	got, err := ReadWord(c, 0x100)
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x1234 {
		t.Errorf("ReadWord() got = %#04x, want %#04x", got, 0x1234)
	}
}

func TestExtraMemoryKB(t *testing.T) {
	tests := []struct {
		name       string
		start, end uint32
		want       int
	}{
		{"odd 8K part", 0x200001, 0x203FFF, 16},
		{"even 16-bit", 0x200000, 0x203FFF, 16},
		{"inverted", 0x203FFF, 0x200001, 0},
		{"elsewhere", 0x300000, 0x303FFF, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Header{ExtraMemory: true, ExtraMemoryStart: tt.start, ExtraMemoryEnd: tt.end}
			if got := h.ExtraMemoryKB(); got != tt.want {
				t.Errorf("ExtraMemoryKB() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPadWriter(t *testing.T) {
	var out bytes.Buffer
	n, err := NewPadWriter(&out).Write([]byte{0x12, 0x34})
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("Write() got = %v, want %v", n, 2)
	}
	want := []byte{0xFF, 0x12, 0xFF, 0x34}
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("Write() wrote % x, want % x", out.Bytes(), want)
	}
}

func TestDumpROM(t *testing.T) {
	util.RedirectLog(t)
	f := newTestCart(512, 0)
	d := newDumper(f)

	var out bytes.Buffer
	if _, err := DumpROM(context.Background(), d, &out, 0); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out.Bytes(), f.rom) {
		t.Errorf("DumpROM() image differs from ROM (got %d bytes, want %d)", out.Len(), len(f.rom))
	}
	if d.Stats.Sessions != 8 {
		t.Errorf("DumpROM() sessions got = %v, want %v", d.Stats.Sessions, 8)
	}
}

func TestDumpRAM(t *testing.T) {
	util.RedirectLog(t)
	f := newTestCart(256, 8)

	var out bytes.Buffer
	if _, err := DumpRAM(context.Background(), newDumper(f), &out); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 2*len(f.sram) {
		t.Fatalf("DumpRAM() got %d bytes, want %d", out.Len(), 2*len(f.sram))
	}
	b := out.Bytes()
	for i, v := range f.sram {
		if b[2*i] != 0xFF || b[2*i+1] != v {
			t.Fatalf("DumpRAM() byte pair %d got = % x, want ff %02x", i, b[2*i:2*i+2], v)
		}
	}
}

func TestDumpRAMUnsupported(t *testing.T) {
	util.RedirectLog(t)
	f := newTestCart(256, 0)
	_, err := DumpRAM(context.Background(), newDumper(f), &bytes.Buffer{})
	var cerr *device.ConfigurationError
	if !errors.As(err, &cerr) {
		t.Errorf("DumpRAM() got = %v, want ConfigurationError", err)
	}
}
