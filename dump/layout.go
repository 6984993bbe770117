package dump

import (
	"inlretro/device"
	"inlretro/opcodes"
)

// BufferPlan is how one firmware buffer is allocated and paged.
type BufferPlan struct {
	ID        uint8
	BaseBank  uint8
	NumBanks  uint8
	FirstPage uint16
	Reload    uint8
}

// Layout is the allocation of the raw bank pool into buffers that the
// firmware fills in turn.
type Layout struct {
	Size    int
	Buffers []BufferPlan
}

// PlanLayout returns the layout for numBuffers buffers of size bytes.
// Only two buffers of 128 or 256 bytes are supported.
func PlanLayout(numBuffers, size int) (l Layout, err error) {
	if numBuffers != 2 {
		return Layout{}, device.Configf("unsupported buffer count %d", numBuffers)
	}
	if size%opcodes.RawBankSize != 0 || size <= 0 {
		return Layout{}, device.Configf("buffer size %d is not a multiple of %d", size, opcodes.RawBankSize)
	}

	numBanks := size / opcodes.RawBankSize
	if numBanks*numBuffers > opcodes.NumRawBanks {
		return Layout{}, device.Configf("%d buffers of %d bytes need %d raw banks; only %d exist",
			numBuffers, size, numBanks*numBuffers, opcodes.NumRawBanks)
	}

	l = Layout{Size: size}
	switch size {
	case 128:
		// both buffers share a page; the id's top bit selects its upper half.
		l.Buffers = []BufferPlan{
			{ID: 0x00, BaseBank: 0, NumBanks: uint8(numBanks), FirstPage: 0, Reload: 1},
			{ID: 0x80, BaseBank: uint8(numBanks), NumBanks: uint8(numBanks), FirstPage: 0, Reload: 1},
		}
	case 256:
		l.Buffers = []BufferPlan{
			{ID: 0x00, BaseBank: 0, NumBanks: uint8(numBanks), FirstPage: 0, Reload: 2},
			{ID: 0x00, BaseBank: uint8(numBanks), NumBanks: uint8(numBanks), FirstPage: 1, Reload: 2},
		}
	default:
		return Layout{}, device.Configf("unsupported buffer size %d", size)
	}
	return
}

// Chunk returns which buffer fills chunk k and the firmware offset it
// reads from.
func (l Layout) Chunk(k int) (buffer int, offset uint32) {
	buffer = k % len(l.Buffers)
	b := l.Buffers[buffer]
	page := uint32(b.FirstPage) + uint32(k/len(l.Buffers))*uint32(b.Reload)
	offset = page * 256
	if l.Size < 256 && b.ID&0x80 != 0 {
		offset += 128
	}
	return
}
