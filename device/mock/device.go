// Package mock emulates the programmer firmware's buffer manager so
// dump sequences can run without hardware.
package mock

import (
	"sync"

	"inlretro/device"
	"inlretro/opcodes"
)

type buffer struct {
	allocated bool
	id        uint8
	baseBank  uint8
	numBanks  uint8
	status    uint8
	mem       uint8
	part      uint8
	mapper    uint8
	variant   uint8
	firstPage uint16
	reload    uint8
	page      uint16
	polls     int
}

func (b *buffer) size() int { return int(b.numBanks) * opcodes.RawBankSize }

// Device implements device.Transport.
type Device struct {
	mu sync.Mutex

	Cart Cart

	// Latency is the number of status polls a buffer reports DUMPING
	// before it becomes DUMPED.
	Latency int
	// Stuck keeps every buffer in DUMPING forever.
	Stuck bool
	// Version is reported as the firmware application version.
	Version uint8

	// Record keeps every request in Requests.
	Record   bool
	Requests []device.Request

	Sessions    int
	Drains      int
	Polls       int
	EarlyDrains int

	buffers   [opcodes.NumBuffers]buffer
	rawBanks  [opcodes.NumRawBanks]bool
	operation uint8
	current   int
	closed    bool
}

func New(cart Cart) *Device {
	d := &Device{Cart: cart, Version: opcodes.AppVersion}
	d.resetBuffers()
	return d
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Operation returns the last operation set by the host.
func (d *Device) Operation() uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.operation
}

// AllocatedBanks counts raw banks currently owned by a buffer.
func (d *Device) AllocatedBanks() (n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, used := range d.rawBanks {
		if used {
			n++
		}
	}
	return
}

func (d *Device) Control(request uint8, value, index uint16, data []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, device.ErrDeviceDisconnected
	}

	opcode, misc := device.DecodeValue(value)
	req := device.Request{Dict: request, Opcode: opcode, Misc: misc, Operand: index, Length: len(data)}
	if d.Record {
		d.Requests = append(d.Requests, req)
	}

	if req.Dict == opcodes.DictBuffer && opcodes.ClassifyBuffer(opcode) == opcodes.ClassPayload {
		d.drain(data)
		return len(data), nil
	}

	var rsp []byte
	var status device.DeviceStatus
	switch req.Dict {
	case opcodes.DictBuffer:
		rsp, status = d.bufferOp(req)
	case opcodes.DictOperation:
		rsp, status = d.operationOp(req)
	case opcodes.DictBootload:
		rsp, status = d.bootloadOp(req)
	default:
		if d.Cart == nil {
			status = device.ErrUnknownDictionary
			break
		}
		rsp, status = d.Cart.Exec(req)
	}

	return respond(data, status, rsp), nil
}

func respond(data []byte, status device.DeviceStatus, rsp []byte) int {
	if len(data) == 0 {
		return 0
	}
	data[0] = uint8(status)
	if len(data) > 1 {
		data[1] = uint8(len(rsp))
		copy(data[2:], rsp)
	}
	return len(data)
}

func (d *Device) resetBuffers() {
	for i := range d.buffers {
		d.buffers[i] = buffer{status: opcodes.StatusUnalloc}
	}
	for i := range d.rawBanks {
		d.rawBanks[i] = false
	}
	d.current = 0
}

func (d *Device) buffer(n uint8) (*buffer, device.DeviceStatus) {
	if int(n) >= len(d.buffers) {
		return nil, device.ErrBufNDoesNotExist
	}
	return &d.buffers[n], device.Success
}

func (d *Device) bufferOp(req device.Request) ([]byte, device.DeviceStatus) {
	switch opcodes.ClassifyBuffer(req.Opcode) {
	case opcodes.ClassNoReturnBufferInOpcode:
		n := opcodes.BufferInOpcode(req.Opcode)
		switch req.Opcode &^ 0x07 {
		case opcodes.AllocateBuffer0:
			return nil, d.allocate(n, uint8(req.Operand>>8), uint8(req.Operand), req.Misc)
		case opcodes.SetReloadPagenum0:
			b, st := d.buffer(n)
			if st != device.Success {
				return nil, st
			}
			b.firstPage = req.Operand
			b.page = req.Operand
			b.reload = req.Misc
			return nil, device.Success
		}
		return nil, device.ErrBadBuffOpcode
	}

	switch req.Opcode {
	case opcodes.RawBufferReset:
		d.resetBuffers()
		return nil, device.Success
	case opcodes.SetMemNPart:
		b, st := d.buffer(req.Misc)
		if st != device.Success {
			return nil, st
		}
		b.mem, b.part = uint8(req.Operand>>8), uint8(req.Operand)
		return nil, device.Success
	case opcodes.SetMapNMapVar:
		b, st := d.buffer(req.Misc)
		if st != device.Success {
			return nil, st
		}
		b.mapper, b.variant = uint8(req.Operand>>8), uint8(req.Operand)
		return nil, device.Success
	case opcodes.SetMultNAddMult, opcodes.SetFunction:
		if _, st := d.buffer(req.Misc); st != device.Success {
			return nil, st
		}
		return nil, device.Success
	case opcodes.GetPriElements:
		b, st := d.buffer(req.Misc)
		if st != device.Success {
			return nil, st
		}
		last := uint8(0)
		if b.size() > 0 {
			last = uint8(b.size() - 1)
		}
		return []byte{last, b.status, 0, b.reload, b.id, 0}, device.Success
	case opcodes.GetSecElements:
		b, st := d.buffer(req.Misc)
		if st != device.Success {
			return nil, st
		}
		return []byte{b.mem, b.part, 0, 0, b.mapper, b.variant}, device.Success
	case opcodes.GetPageNum:
		b, st := d.buffer(req.Misc)
		if st != device.Success {
			return nil, st
		}
		return []byte{uint8(b.page), uint8(b.page >> 8)}, device.Success
	case opcodes.GetRawBankStatus:
		bank := int(req.Operand)
		if bank >= len(d.rawBanks) {
			return nil, device.ErrBuffAllocRange
		}
		for i := range d.buffers {
			b := &d.buffers[i]
			if b.allocated && bank >= int(b.baseBank) && bank < int(b.baseBank)+int(b.numBanks) {
				return []byte{b.id}, device.Success
			}
		}
		return []byte{opcodes.StatusUnalloc}, device.Success
	case opcodes.GetCurBuffStatus:
		return []byte{d.poll()}, device.Success
	}
	return nil, device.ErrBadBuffOpcode
}

func (d *Device) allocate(n, id, base, numBanks uint8) device.DeviceStatus {
	b, st := d.buffer(n)
	if st != device.Success {
		return st
	}
	if numBanks == 0 {
		return device.ErrBuffAllocSizeZero
	}
	if int(base)+int(numBanks) > opcodes.NumRawBanks {
		return device.ErrBuffAllocRange
	}
	if b.allocated {
		return device.ErrBuffStatusAlloc
	}
	for i := int(base); i < int(base)+int(numBanks); i++ {
		if d.rawBanks[i] {
			return device.ErrBuffRawAlloc
		}
	}
	for i := int(base); i < int(base)+int(numBanks); i++ {
		d.rawBanks[i] = true
	}
	*b = buffer{
		allocated: true,
		id:        id,
		baseBank:  base,
		numBanks:  numBanks,
		status:    opcodes.StatusEmpty,
	}
	return device.Success
}

func (d *Device) operationOp(req device.Request) ([]byte, device.DeviceStatus) {
	switch req.Opcode {
	case opcodes.SetOperation:
		d.operation = uint8(req.Operand)
		switch d.operation {
		case opcodes.StatusReset:
			for i := range d.buffers {
				if d.buffers[i].allocated {
					d.buffers[i].status = opcodes.StatusEmpty
				}
			}
			d.current = 0
		case opcodes.StatusStartDump:
			d.Sessions++
			d.current = 0
			for i := range d.buffers {
				b := &d.buffers[i]
				if b.allocated {
					b.page = b.firstPage
					b.status = opcodes.StatusDumping
					b.polls = 0
				}
			}
		}
		return nil, device.Success
	case opcodes.GetOperation:
		return []byte{d.operation}, device.Success
	case opcodes.CopyBuff0ToElements, opcodes.CopyElementsToBuff0,
		opcodes.SetOperFunc, opcodes.SetRdFunc, opcodes.SetWrMemFunc, opcodes.SetWrMapFunc:
		return nil, device.Success
	}
	return nil, device.ErrBadOperOpcode
}

func (d *Device) bootloadOp(req device.Request) ([]byte, device.DeviceStatus) {
	if req.Opcode == opcodes.GetAppVer {
		return []byte{d.Version}, device.Success
	}
	return nil, device.ErrBadBootloadOpcode
}

// poll returns the status of the buffer the host drains next.
func (d *Device) poll() uint8 {
	d.Polls++
	b := &d.buffers[d.current]
	if !b.allocated {
		return opcodes.StatusUnalloc
	}
	if b.status != opcodes.StatusDumping || d.Stuck {
		return b.status
	}
	b.polls++
	if b.polls > d.Latency {
		b.status = opcodes.StatusDumped
	}
	return b.status
}

func (d *Device) drain(p []byte) {
	d.Drains++
	for i := range p {
		p[i] = 0
	}

	b := &d.buffers[d.current]
	if !b.allocated || b.status != opcodes.StatusDumped {
		d.EarlyDrains++
		return
	}

	offset := uint32(b.page) * 256
	if b.size() < 256 && b.id&0x80 != 0 {
		offset += 128
	}
	n := b.size()
	if n > len(p) {
		n = len(p)
	}
	if d.Cart != nil {
		d.Cart.Read(b.mem, b.mapper, offset, p[:n])
	}

	b.page += uint16(b.reload)
	b.status = opcodes.StatusDumping
	b.polls = 0

	// advance to the next allocated buffer:
	for i := 1; i <= len(d.buffers); i++ {
		next := (d.current + i) % len(d.buffers)
		if d.buffers[next].allocated {
			d.current = next
			break
		}
	}
}
