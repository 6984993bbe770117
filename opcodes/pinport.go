package opcodes

// Pinport dictionary: control pins.
const (
	CtlEnable uint8 = 0
	CtlIPPU   uint8 = 1
	CtlIPFL   uint8 = 2
	CtlOP     uint8 = 3
	CtlSetLo  uint8 = 4
	CtlSetHi  uint8 = 5
	CtlRd     uint8 = 6
	CtlOD     uint8 = 24
	CtlPP     uint8 = 25
)

// Pinport dictionary: data, address and expansion ports.
const (
	DataEnable uint8 = 7
	DataIPPU   uint8 = 8
	DataIP     uint8 = 9
	DataOP     uint8 = 10
	DataSet    uint8 = 11
	DataRd     uint8 = 12

	AddrEnable uint8 = 13
	AddrPU     uint8 = 14
	AddrIP     uint8 = 15
	AddrOP     uint8 = 16
	AddrSet    uint8 = 17
	AddrRd     uint8 = 26

	ExpEnable  uint8 = 18
	ExpDisable uint8 = 19
	ExpSet     uint8 = 20

	HAddrEnable  uint8 = 21
	HAddrDisable uint8 = 22
	HAddrSet     uint8 = 23

	FFAddrEnable  uint8 = 27
	FFAddrDisable uint8 = 28
	FFAddrSet     uint8 = 29
)

// Control pin numbers (operand of the Ctl* opcodes).
const (
	PinM2     uint16 = 0
	PinROMSEL uint16 = 1
	PinPRGRW  uint16 = 2
	PinFREE   uint16 = 3
	PinCSRD   uint16 = 4
	PinCSWR   uint16 = 5
	PinCICE   uint16 = 6
	PinAHL    uint16 = 7
	PinEXP0   uint16 = 8
	PinLED    uint16 = 9
	PinIRQ    uint16 = 10
	PinCIA10  uint16 = 11
	PinBL     uint16 = 12
	PinAXL    uint16 = 13
	PinAUDL   uint16 = 14
	PinAUDR   uint16 = 15
	PinGBP    uint16 = 16
	PinSWD    uint16 = 17
	PinSWC    uint16 = 18
	PinAFL    uint16 = 19
	PinCOUT   uint16 = 20
	PinFCAPU  uint16 = 21
	PinC22    uint16 = 22
	PinC23    uint16 = 23
	PinC24    uint16 = 24
	PinC25    uint16 = 25
	PinC26    uint16 = 26
	PinC27    uint16 = 27
	PinC28    uint16 = 28
	PinC29    uint16 = 29

	// SNES reset shares the EXP0 line.
	PinSNESRST = PinEXP0
)
