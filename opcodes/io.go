package opcodes

// IO dictionary.
const (
	IOReset     uint8 = 0
	NESInit     uint8 = 1
	SNESInit    uint8 = 2
	SWIMInit    uint8 = 3
	JTAGInit    uint8 = 4
	GameboyInit uint8 = 5
	GBAInit     uint8 = 6
	SegaInit    uint8 = 7
	GBPower5V   uint8 = 9
	GBPower3V   uint8 = 10

	// RL=3
	EXP0PullupTest uint8 = 0x80
)

// EXP0 pull-up test results.
const (
	EXP0StuckHi      uint8 = 0xF0
	CannotPullupEXP0 uint8 = 0xE0
)

// IO init operands.
const (
	DisableSTMDebug uint16 = 0x10

	SWIMOnA0   uint16 = 1
	SWIMOnEXP0 uint16 = 2
	SWIMOnD0   uint16 = 3

	JTAGOnEXP0_3  uint16 = 1
	JTAGOnSNESCtl uint16 = 2
)
