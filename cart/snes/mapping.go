package snes

import "fmt"

type Mapping int

const (
	LoROM Mapping = iota
	HiROM
	ExHiROM
)

func (m Mapping) String() string {
	switch m {
	case LoROM:
		return "LoROM"
	case HiROM:
		return "HiROM"
	case ExHiROM:
		return "ExHiROM"
	}
	return fmt.Sprintf("Mapping(%d)", int(m))
}

// matches reports whether a header's map mode byte agrees with m. A
// LoROM board ignores A15, so its header also shows up at the HiROM
// location; the map mode tells them apart.
func (m Mapping) matches(mapMode byte) bool {
	switch mapMode & 0x0F {
	case 0x0, 0x2, 0x3:
		return m == LoROM
	case 0x1, 0xA:
		return m == HiROM
	case 0x5:
		return m == ExHiROM
	}
	return false
}

type candidate struct {
	mapping Mapping
	bus     uint32
}

// Header candidates in probe order.
var candidates = []candidate{
	{ExHiROM, 0x40FFB0},
	{HiROM, 0x00FFB0},
	{LoROM, 0x007FB0},
}
