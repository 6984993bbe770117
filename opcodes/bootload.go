package opcodes

// Bootload dictionary.
const (
	LoadAddrH    uint8 = 2
	JumpAddr     uint8 = 3
	PrepFWUpdate uint8 = 4
	SetPtrHi     uint8 = 5
	SetPtrLo     uint8 = 6
	GetPtr       uint8 = 7
	RdPtrOffset  uint8 = 8
	WrPtrOffset  uint8 = 9
	RdPtrOffUp   uint8 = 10
	WrPtrOffUp   uint8 = 11
	GetAppVer    uint8 = 12
)

// AppVersion is the application version this host speaks.
const AppVersion uint8 = 3
