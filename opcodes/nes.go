package opcodes

// NES dictionary: writes.
const (
	DiscreteEXP0PRGROMWr uint8 = 0x00
	NESPPUWr             uint8 = 0x01
	NESCPUWr             uint8 = 0x02
	NESMMC1Wr            uint8 = 0x04
	NESDualportWr        uint8 = 0x05
	DiscPushEXP0PRGROMWr uint8 = 0x06

	MMC3PRGFlashWr    uint8 = 0x07
	MMC3CHRFlashWr    uint8 = 0x08
	NROMPRGFlashWr    uint8 = 0x09
	NROMCHRFlashWr    uint8 = 0x0A
	CNROMCHRFlashWr   uint8 = 0x0B
	CDREAMCHRFlashWr  uint8 = 0x0C
	UNROMPRGFlashWr   uint8 = 0x0D
	MMC1PRGFlashWr    uint8 = 0x0E
	MMC1CHRFlashWr    uint8 = 0x0F
	MMC4PRGSOPFlashWr uint8 = 0x10
	MMC4CHRFlashWr    uint8 = 0x11
	MAP30PRGFlashWr   uint8 = 0x12
	GTROMPRGFlashWr   uint8 = 0x13
	MMC4PRGFlashWr    uint8 = 0x14

	SetCurBank      uint8 = 0x20
	SetBankTable    uint8 = 0x21
	M2LowWr         uint8 = 0x22
	PPUPageWrLFSR   uint8 = 0x23
	SetNumPRGBanks  uint8 = 0x24
	M2HighWr        uint8 = 0x25
	MMC3SPRGFlashWr uint8 = 0x26

	// Shares its value with M2HighWr.
	Flash3VWr = M2HighWr
)

// NES dictionary: reads.
const (
	EmulateNESCPURd uint8 = 0x80
	NESCPURd        uint8 = 0x81
	NESPPURd        uint8 = 0x82
	CIRAMA10Mirror  uint8 = 0x83
	NESDualportRd   uint8 = 0x84
	GetCurBank      uint8 = 0x85
	GetBankTable    uint8 = 0x86
	GetNumPRGBanks  uint8 = 0x87
	MMC5PRGRAMWr    uint8 = 0x88
)

// CIRAM A10 mirroring results.
const (
	Mir1ScnA uint8 = 0x10
	Mir1ScnB uint8 = 0x11
	MirVert  uint8 = 0x12
	MirHorz  uint8 = 0x13
)
