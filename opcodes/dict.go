// Package opcodes holds the INL Retro-Prog firmware dictionaries.
// Values are bit-exact with the firmware shared headers.
package opcodes

// Dictionary numbers travel in bRequest.
const (
	DictPinport   uint8 = 1
	DictIO        uint8 = 2
	DictNES       uint8 = 3
	DictSNES      uint8 = 4
	DictBuffer    uint8 = 5
	DictOperation uint8 = 7
	DictBootload  uint8 = 10
	DictGB        uint8 = 12
	DictGBA       uint8 = 13
	DictGenesis   uint8 = 14
)

// DictName returns a short name for a dictionary number, for logs.
func DictName(dict uint8) string {
	switch dict {
	case DictPinport:
		return "pinport"
	case DictIO:
		return "io"
	case DictNES:
		return "nes"
	case DictSNES:
		return "snes"
	case DictBuffer:
		return "buffer"
	case DictOperation:
		return "operation"
	case DictBootload:
		return "bootload"
	case DictGB:
		return "gameboy"
	case DictGBA:
		return "gba"
	case DictGenesis:
		return "genesis"
	}
	return "unknown"
}

// Firmware return lengths: 1 = status only, 3 = status+len+byte,
// 4 = status+len+word.
const (
	RLStatus = 1
	RLByte   = 3
	RLWord   = 4
)
