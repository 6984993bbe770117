package device

import (
	"fmt"
	"log"
	"time"
)

// Timeout applies to every control transfer.
const Timeout = time.Second

// Conn issues firmware requests over a Transport and checks the status
// byte of each response.
type Conn struct {
	t Transport

	// Lenient logs a nonzero status and returns the response instead of
	// failing with a *DeviceError.
	Lenient bool

	lastStatus DeviceStatus
	transfers  uint64
}

func NewConn(t Transport) *Conn {
	return &Conn{t: t}
}

func (c *Conn) Close() error {
	return c.t.Close()
}

// LastStatus is the status byte of the most recent checked transfer.
func (c *Conn) LastStatus() DeviceStatus { return c.lastStatus }

// Transfers counts control transfers issued so far.
func (c *Conn) Transfers() uint64 { return c.transfers }

func (c *Conn) control(req Request) (buf []byte, err error) {
	if req.Length <= 0 {
		return nil, Configf("request %v has no return length", req)
	}

	buf = make([]byte, req.Length)
	c.transfers++
	n, err := c.t.Control(req.Dict, req.Value(), req.Index(), buf)
	if err != nil {
		return nil, NewTransportError(req.String(), err)
	}
	if n != req.Length {
		return nil, NewTransportError(req.String(), fmt.Errorf("short read: got %d bytes, want %d", n, req.Length))
	}
	return
}

// Transfer issues req and checks the status byte.
func (c *Conn) Transfer(req Request) (buf []byte, err error) {
	buf, err = c.control(req)
	if err != nil {
		return
	}

	c.lastStatus = DeviceStatus(buf[0])
	if c.lastStatus != Success {
		if c.Lenient {
			log.Printf("device: %v returned status %v\n", req, c.lastStatus)
			return
		}
		return nil, &DeviceError{Dict: req.Dict, Opcode: req.Opcode, Status: c.lastStatus}
	}
	return
}

// TransferNoCheck issues req and returns the raw response. Byte 0 is data.
func (c *Conn) TransferNoCheck(req Request) ([]byte, error) {
	return c.control(req)
}

// Exec issues an opcode that returns only a status byte.
func (c *Conn) Exec(dict, opcode uint8, operand uint16, misc uint8) error {
	_, err := c.Transfer(Request{Dict: dict, Opcode: opcode, Operand: operand, Misc: misc, Length: 1})
	return err
}

// Read8 issues an opcode returning status, length and one data byte.
func (c *Conn) Read8(dict, opcode uint8, operand uint16, misc uint8) (uint8, error) {
	buf, err := c.Transfer(Request{Dict: dict, Opcode: opcode, Operand: operand, Misc: misc, Length: 3})
	if err != nil {
		return 0, err
	}
	return buf[2], nil
}

// Read16 issues an opcode returning status, length and two data bytes
// in little-endian order.
func (c *Conn) Read16(dict, opcode uint8, operand uint16, misc uint8) (uint16, error) {
	buf, err := c.Transfer(Request{Dict: dict, Opcode: opcode, Operand: operand, Misc: misc, Length: 4})
	if err != nil {
		return 0, err
	}
	return uint16(buf[3])<<8 | uint16(buf[2]), nil
}

// ReadRaw issues an opcode with a custom return length and returns the
// bytes after the status and length bytes.
func (c *Conn) ReadRaw(dict, opcode uint8, operand uint16, misc uint8, length int) ([]byte, error) {
	buf, err := c.Transfer(Request{Dict: dict, Opcode: opcode, Operand: operand, Misc: misc, Length: length})
	if err != nil {
		return nil, err
	}
	if len(buf) < 2 {
		return nil, nil
	}
	return buf[2:], nil
}
