package opcodes

// Operation dictionary.
const (
	SetOperation        uint8 = 0x00
	CopyBuff0ToElements uint8 = 0x01
	CopyElementsToBuff0 uint8 = 0x02
	SetOperFunc         uint8 = 0x03
	SetRdFunc           uint8 = 0x04
	SetWrMemFunc        uint8 = 0x05
	SetWrMapFunc        uint8 = 0x06

	// RL=3
	GetOperation uint8 = 0x40
)

// Operation dictionary ranges.
const (
	OperNRVMin uint8 = 0x00
	OperNRVMax uint8 = 0x3F
	OperRVMin  uint8 = 0x40
	OperRVMax  uint8 = 0x7F
)
