package opcodes

// SNES dictionary.
const (
	SNESSetBank uint8 = 0x00
	SNESROMRd   uint8 = 0x01
	SNESROMWr   uint8 = 0x02
	FlashWr5V   uint8 = 0x03
	FlashWr3V   uint8 = 0x04
	SNESSysRd   uint8 = 0x05
	SNESSysWr   uint8 = 0x06
)
