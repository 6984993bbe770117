package opcodes

// Buffer dictionary: opcodes without return data.
const (
	RawBufferReset uint8 = 0x00

	// operand = memory<<8 | part, misc = buffer number
	SetMemNPart uint8 = 0x30
	// operand = multiple<<8 | add_multiple, misc = buffer number
	SetMultNAddMult uint8 = 0x31
	// operand = mapper<<8 | variant, misc = buffer number
	SetMapNMapVar uint8 = 0x32
	SetFunction   uint8 = 0x33

	BuffOutPayloadN2BInsp uint8 = 0x40
	BuffPayloadN          uint8 = 0x41
)

// Buffer dictionary: opcodes with return data.
const (
	GetPriElements   uint8 = 0x50 // RL=8
	GetSecElements   uint8 = 0x51 // RL=8
	GetPageNum       uint8 = 0x52 // RL=4
	GetRawBankStatus uint8 = 0x60 // RL=3
	GetCurBuffStatus uint8 = 0x61 // RL=3
)

// Buffer dictionary: payload transfers. BuffPayload returns raw data
// with no status byte.
const (
	BuffPayload          uint8 = 0x70
	BuffOutPayload2BInsp uint8 = 0x71
)

// Buffer dictionary: buffer number encoded in the opcode.
const (
	// operand = id<<8 | base bank, misc = number of banks
	AllocateBuffer0 uint8 = 0x80
	AllocateBuffer1 uint8 = 0x81
	AllocateBuffer2 uint8 = 0x82
	AllocateBuffer3 uint8 = 0x83
	AllocateBuffer4 uint8 = 0x84
	AllocateBuffer5 uint8 = 0x85
	AllocateBuffer6 uint8 = 0x86
	AllocateBuffer7 uint8 = 0x87

	// operand = first page, misc = reload
	SetReloadPagenum0 uint8 = 0x90
	SetReloadPagenum1 uint8 = 0x91
	SetReloadPagenum2 uint8 = 0x92
	SetReloadPagenum3 uint8 = 0x93
	SetReloadPagenum4 uint8 = 0x94
	SetReloadPagenum5 uint8 = 0x95
	SetReloadPagenum6 uint8 = 0x96
	SetReloadPagenum7 uint8 = 0x97

	BuffPayload0 uint8 = 0xF0
	BuffPayload1 uint8 = 0xF1
	BuffPayload2 uint8 = 0xF2
	BuffPayload3 uint8 = 0xF3
	BuffPayload4 uint8 = 0xF4
	BuffPayload5 uint8 = 0xF5
	BuffPayload6 uint8 = 0xF6
	BuffPayload7 uint8 = 0xF7
)

// Offsets into the data returned by GetPriElements / GetSecElements,
// counted after the status and length bytes.
const (
	BuffLastIdx  = 0
	BuffStatus   = 1
	BuffCurByte  = 2
	BuffReload   = 3
	BuffID       = 4
	BuffFunction = 5

	BuffMemType  = 0
	BuffPartNum  = 1
	BuffMultiple = 2
	BuffAddMult  = 3
	BuffMapper   = 4
	BuffMapVar   = 5
)

// Raw buffer geometry.
const (
	NumRawBanks = 16
	RawBankSize = 32
	NumBuffers  = 4
	MaxBuffers  = 8
)

// Memory types (SetMemNPart operand high byte).
const (
	MemPRGROM          uint8 = 0x10
	MemCHRROM          uint8 = 0x11
	MemPRGRAM          uint8 = 0x12
	MemSNESROM         uint8 = 0x13
	MemSNESRAM         uint8 = 0x14
	MemGenesisROM      uint8 = 0x15
	MemNESCPU4KB       uint8 = 0x20
	MemNESPPU1KB       uint8 = 0x21
	MemNESCPUPage      uint8 = 0x22
	MemNESPPUPage      uint8 = 0x23
	MemSNESROMPage     uint8 = 0x24
	MemSNESSysPage     uint8 = 0x25
	MemGameboyPage     uint8 = 0x26
	MemGBAROMPage      uint8 = 0x27
	MemGenesisROMPage0 uint8 = 0x28
	MemGenesisROMPage1 uint8 = 0x29
	MemN64ROMPage      uint8 = 0x30
	MemNESPPU1KBToggle uint8 = 0x31
	MemNESCPU4KBToggle uint8 = 0x32
	MemGenesisRAMPage  uint8 = 0x33
)

// Part numbers (SetMemNPart operand low byte).
const (
	PartSSTManfID  uint8 = 0xBF
	PartSSTProd128 uint8 = 0xB5
	PartSSTProd256 uint8 = 0xB6
	PartSSTProd512 uint8 = 0xB7
	PartSRAM       uint8 = 0xAA
	PartMaskROM    uint8 = 0xDD
)

// Mapper numbers (SetMapNMapVar operand high byte).
const (
	MapNROM   uint8 = 0
	MapMMC1   uint8 = 1
	MapUxROM  uint8 = 2
	MapCNROM  uint8 = 3
	MapMMC3   uint8 = 4
	MapMMC5   uint8 = 5
	MapAxROM  uint8 = 7
	MapMMC2   uint8 = 9
	MapMMC4   uint8 = 10
	MapCDREAM uint8 = 11
	MapCNINJA uint8 = 12
	MapA53    uint8 = 28
	MapMAP30  uint8 = 30
	MapEZNSF  uint8 = 31
	MapBxROM  uint8 = 34
	MapRAMBO  uint8 = 64
	MapH3001  uint8 = 65
	MapGxROM  uint8 = 66
	MapSUN3   uint8 = 67
	MapSUN4   uint8 = 68
	MapFME7   uint8 = 69
	MapHDIVER uint8 = 78
	MapGTROM  uint8 = 111
	MapDxROM  uint8 = 205
	MapMMC3S  uint8 = 252
	MapMM2    uint8 = 253
	MapDPROM  uint8 = 254
)

// Mapper variants (SetMapNMapVar operand low byte).
const (
	VarNone          uint8 = 0
	VarLoROM         uint8 = 0
	VarHiROM         uint8 = 1
	VarExHiROM       uint8 = 2
	VarSOROM         uint8 = 3
	VarLoROM5Volt    uint8 = 4
	VarHiROM5Volt    uint8 = 5
	VarLoROM3Volt    uint8 = 6
	VarHiROM3Volt    uint8 = 7
	VarLoROM3VPage   uint8 = 8
	VarHiROM3VPage   uint8 = 9
	VarLoROM3VVerify uint8 = 10
	VarHiROM3VVerify uint8 = 11
)

// Buffer and operation statuses. SetOperation takes the same codes.
const (
	StatusEmpty        uint8 = 0x00
	StatusReset        uint8 = 0x01
	StatusProblem      uint8 = 0x10
	StatusPreparing    uint8 = 0x20
	StatusUSBUnloading uint8 = 0x80
	StatusUSBLoading   uint8 = 0x90
	StatusUSBFull      uint8 = 0x98
	StatusChecking     uint8 = 0xC0
	StatusDumping      uint8 = 0xD0
	StatusStartDump    uint8 = 0xD2
	StatusDumped       uint8 = 0xD8
	StatusErasing      uint8 = 0xE0
	StatusFlashing     uint8 = 0xF0
	StatusStartFlash   uint8 = 0xF2
	StatusFlashed      uint8 = 0xF4
	StatusFlashWait    uint8 = 0xF8
	StatusStopped      uint8 = 0xFE
	StatusUnalloc      uint8 = 0xFF
)

// Buffer dictionary opcode ranges.
const (
	BuffNRVMin       uint8 = 0x00
	BuffNRVMax       uint8 = 0x3F
	BuffNRVMiscMin   uint8 = 0x30
	BuffPayloadNMin  uint8 = 0x40
	BuffPayloadNMax  uint8 = 0x4F
	BuffRVMin        uint8 = 0x50
	BuffRVMax        uint8 = 0x6F
	BuffRVMiscMax    uint8 = 0x5F
	BuffPayloadMin   uint8 = 0x70
	BuffPayloadMax   uint8 = 0x7F
	BuffOpNRVMin     uint8 = 0x80
	BuffOpNRVMax     uint8 = 0xBF
	BuffOpRVMin      uint8 = 0xC0
	BuffOpRVMax      uint8 = 0xEF
	BuffOpPayloadMin uint8 = 0xF0
	BuffOpPayloadMax uint8 = 0xFF
)

// BufferClass says how a buffer opcode encodes its buffer number and
// whether it returns data.
type BufferClass int

const (
	ClassNoReturn BufferClass = iota
	ClassNoReturnBufferInMisc
	ClassPayloadN
	ClassReturnBufferInMisc
	ClassReturn
	ClassPayload
	ClassNoReturnBufferInOpcode
	ClassReturnBufferInOpcode
	ClassPayloadBufferInOpcode
)

func (c BufferClass) String() string {
	switch c {
	case ClassNoReturn:
		return "nrv"
	case ClassNoReturnBufferInMisc:
		return "nrv-misc"
	case ClassPayloadN:
		return "payloadn"
	case ClassReturnBufferInMisc:
		return "rv-misc"
	case ClassReturn:
		return "rv"
	case ClassPayload:
		return "payload"
	case ClassNoReturnBufferInOpcode:
		return "nrv-op"
	case ClassReturnBufferInOpcode:
		return "rv-op"
	case ClassPayloadBufferInOpcode:
		return "payload-op"
	}
	return "invalid"
}

// ClassifyBuffer returns the class of a buffer dictionary opcode.
func ClassifyBuffer(op uint8) BufferClass {
	switch {
	case op < BuffNRVMiscMin:
		return ClassNoReturn
	case op <= BuffNRVMax:
		return ClassNoReturnBufferInMisc
	case op <= BuffPayloadNMax:
		return ClassPayloadN
	case op <= BuffRVMiscMax:
		return ClassReturnBufferInMisc
	case op <= BuffRVMax:
		return ClassReturn
	case op <= BuffPayloadMax:
		return ClassPayload
	case op <= BuffOpNRVMax:
		return ClassNoReturnBufferInOpcode
	case op <= BuffOpRVMax:
		return ClassReturnBufferInOpcode
	default:
		return ClassPayloadBufferInOpcode
	}
}

// BufferInOpcode returns the buffer number encoded in the low bits of an
// opcode of the buffer-in-opcode classes.
func BufferInOpcode(op uint8) uint8 {
	return op & 0x07
}
