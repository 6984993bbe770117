package device

import "fmt"

// DeviceStatus is the first byte of every checked response.
type DeviceStatus uint8

const (
	Success              DeviceStatus = 0x00
	ErrUnknownDictionary DeviceStatus = 0x80
	ErrBadPinportOpcode  DeviceStatus = 0x81
	ErrCtlPinNotPresent  DeviceStatus = 0x82
	ErrBadIOOpcode       DeviceStatus = 0x90
	ErrBadNESOpcode      DeviceStatus = 0xA0
	ErrBadSNESOpcode     DeviceStatus = 0xA1
	ErrBadBuffOpcode     DeviceStatus = 0xB0
	ErrBufNDoesNotExist  DeviceStatus = 0xB1
	ErrBuffAllocRange    DeviceStatus = 0xB2
	ErrBuffStatusAlloc   DeviceStatus = 0xB3
	ErrBuffIDAlloc       DeviceStatus = 0xB4
	ErrBuffRawAlloc      DeviceStatus = 0xB5
	ErrBuffAllocSizeZero DeviceStatus = 0xB6
	ErrBuffUnsupMemType  DeviceStatus = 0xB7
	ErrBadOperOpcode     DeviceStatus = 0xC0
	ErrBadBootloadOpcode DeviceStatus = 0xD0
	GenFail              DeviceStatus = 0xFF
)

var statusNames = map[DeviceStatus]string{
	Success:              "SUCCESS",
	ErrUnknownDictionary: "ERR_UNKN_DICTIONARY",
	ErrBadPinportOpcode:  "ERR_BAD_PINPORT_OPCODE",
	ErrCtlPinNotPresent:  "ERR_CTL_PIN_NOT_PRESENT",
	ErrBadIOOpcode:       "ERR_BAD_IO_OPCODE",
	ErrBadNESOpcode:      "ERR_BAD_NES_OPCODE",
	ErrBadSNESOpcode:     "ERR_BAD_SNES_OPCODE",
	ErrBadBuffOpcode:     "ERR_BAD_BUFF_OPCODE",
	ErrBufNDoesNotExist:  "ERR_BUFN_DOES_NOT_EXIST",
	ErrBuffAllocRange:    "ERR_BUFF_ALLOC_RANGE",
	ErrBuffStatusAlloc:   "ERR_BUFF_STATUS_ALREADY_ALLOC",
	ErrBuffIDAlloc:       "ERR_BUFF_ID_ALREADY_ALLOC",
	ErrBuffRawAlloc:      "ERR_BUFF_RAW_ALREADY_ALLOC",
	ErrBuffAllocSizeZero: "ERR_BUFF_ALLOC_SIZE_ZERO",
	ErrBuffUnsupMemType:  "ERR_BUFF_UNSUP_MEM_TYPE",
	ErrBadOperOpcode:     "ERR_BAD_OPER_OPCODE",
	ErrBadBootloadOpcode: "ERR_BAD_BOOTLOAD_OPCODE",
	GenFail:              "GEN_FAIL",
}

func (s DeviceStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("0x%02x", uint8(s))
}
