package device

import "fmt"

// Request is one control transfer. Misc and Opcode share wValue;
// Operand is wIndex. Length is the number of bytes the firmware
// returns for the opcode.
type Request struct {
	Dict    uint8
	Opcode  uint8
	Misc    uint8
	Operand uint16
	Length  int
}

func (r Request) Value() uint16 {
	return uint16(r.Misc)<<8 | uint16(r.Opcode)
}

func (r Request) Index() uint16 {
	return r.Operand
}

func (r Request) String() string {
	return fmt.Sprintf("{dict:%d op:0x%02x misc:0x%02x operand:0x%04x len:%d}", r.Dict, r.Opcode, r.Misc, r.Operand, r.Length)
}

// DecodeValue splits wValue back into its opcode and misc bytes.
func DecodeValue(v uint16) (opcode, misc uint8) {
	return uint8(v), uint8(v >> 8)
}
