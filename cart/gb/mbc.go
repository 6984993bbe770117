package gb

import (
	"context"

	"inlretro/device"
	"inlretro/dump"
	"inlretro/opcodes"
)

const bankKB = 16

type mbc struct {
	name     string
	maxBanks int
	// selects returns the register writes that map bank n at $4000, and
	// the window base where it then appears.
	selects func(n int) (writes, uint8)
}

var (
	romOnly = mbc{name: "ROM only", maxBanks: 2}
	mbc1    = mbc{name: "MBC1", maxBanks: 128, selects: func(n int) (writes, uint8) {
		if n&0x1F == 0 {
			// $20/$40/$60 cannot be mapped at $4000; mode 1 shows them at $0000.
			return writes{{0x6000, 1}, {0x4000, uint8(n >> 5)}}, 0x00
		}
		return writes{{0x6000, 0}, {0x4000, uint8(n >> 5)}, {0x2000, uint8(n & 0x1F)}}, 0x40
	}}
	mbc2 = mbc{name: "MBC2", maxBanks: 16, selects: func(n int) (writes, uint8) {
		return writes{{0x2100, uint8(n)}}, 0x40
	}}
	mbc3 = mbc{name: "MBC3", maxBanks: 128, selects: func(n int) (writes, uint8) {
		return writes{{0x2100, uint8(n)}}, 0x40
	}}
	mbc5 = mbc{name: "MBC5", maxBanks: 512, selects: func(n int) (writes, uint8) {
		return writes{{0x2000, uint8(n)}, {0x3000, uint8(n >> 8)}}, 0x40
	}}
)

func mbcFor(cartType uint8) (mbc, error) {
	switch cartType {
	case 0x00, 0x08, 0x09:
		return romOnly, nil
	case 0x01, 0x02, 0x03:
		return mbc1, nil
	case 0x05, 0x06:
		return mbc2, nil
	case 0x0F, 0x10, 0x11, 0x12, 0x13:
		return mbc3, nil
	case 0x19, 0x1A, 0x1B, 0x1C, 0x1D, 0x1E:
		return mbc5, nil
	}
	return mbc{}, device.Configf("unsupported Game Boy cartridge type 0x%02x (%s)", cartType, cartTypes[cartType])
}

func (m mbc) plan(c *device.Conn, romKB int) (int, dump.BankerFunc, error) {
	if romKB <= 0 || romKB%bankKB != 0 || romKB/bankKB > m.maxBanks {
		return 0, nil, device.Configf("%s ROM size %dKB is not a multiple of %dKB up to %dKB", m.name, romKB, bankKB, m.maxBanks*bankKB)
	}
	if m.selects == nil {
		if romKB != 32 {
			return 0, nil, device.Configf("%s ROM size %dKB; only 32KB is addressable", m.name, romKB)
		}
		return 1, func(ctx context.Context, i int) (dump.Window, error) {
			return dump.Window{SizeKB: 32, Mapper: 0x00, Mem: opcodes.MemGameboyPage}, nil
		}, nil
	}

	return romKB / bankKB, func(ctx context.Context, i int) (dump.Window, error) {
		if i == 0 {
			return dump.Window{SizeKB: bankKB, Mapper: 0x00, Mem: opcodes.MemGameboyPage}, nil
		}
		ws, base := m.selects(i)
		return dump.Window{SizeKB: bankKB, Mapper: base, Mem: opcodes.MemGameboyPage}, ws.apply(c)
	}, nil
}
