package mock

import "inlretro/device"

// Cart stands in for the cartridge bus behind the emulated programmer.
type Cart interface {
	// Exec handles a request outside the buffer, operation and bootload
	// dictionaries. It returns the data bytes following status and length.
	Exec(req device.Request) (data []byte, status device.DeviceStatus)

	// Read fills p from the window selected by mem and mapper, starting
	// at offset within the window.
	Read(mem, mapper uint8, offset uint32, p []byte)
}

// PatternCart accepts every command and fills reads with a pattern
// derived from the window and offset.
type PatternCart struct{}

func (PatternCart) Exec(req device.Request) ([]byte, device.DeviceStatus) {
	if req.Length <= 2 {
		return nil, device.Success
	}
	return make([]byte, req.Length-2), device.Success
}

func (PatternCart) Read(mem, mapper uint8, offset uint32, p []byte) {
	for i := range p {
		o := offset + uint32(i)
		p[i] = uint8(o) ^ uint8(o>>8) ^ mapper
	}
}
