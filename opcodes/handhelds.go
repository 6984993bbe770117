package opcodes

// Game Boy dictionary.
const (
	GameboyRd uint8 = 0x00
	GameboyWr uint8 = 0x01
)

// GBA dictionary.
const (
	GBARd         uint8 = 0x00
	GBALatchAddr  uint8 = 0x02
	GBAReleaseBus uint8 = 0x03
)

// Genesis dictionary.
const (
	GenSetAddr uint8 = 0x00
	GenROMRd   uint8 = 0x01
	GenSetBank uint8 = 0x02
)
