package device

import (
	"errors"
	"testing"
)

type fakeTransport struct {
	rsp    []byte
	err    error
	n      int
	closed bool

	lastRequest uint8
	lastValue   uint16
	lastIndex   uint16
}

func (f *fakeTransport) Control(request uint8, value, index uint16, data []byte) (int, error) {
	f.lastRequest, f.lastValue, f.lastIndex = request, value, index
	if f.err != nil {
		return 0, f.err
	}
	n := copy(data, f.rsp)
	if f.n > 0 {
		n = f.n
	}
	return n, nil
}

func (f *fakeTransport) Close() error {
	f.closed = true
	return nil
}

type fakeDriver struct{ t *fakeTransport }

func (d fakeDriver) Open(name string) (Transport, error) { return d.t, nil }

func TestRequestRoundTrip(t *testing.T) {
	for op := 0; op < 256; op += 7 {
		for misc := 0; misc < 256; misc += 11 {
			r := Request{Opcode: uint8(op), Misc: uint8(misc), Operand: 0xBEEF}
			gotOp, gotMisc := DecodeValue(r.Value())
			if gotOp != uint8(op) || gotMisc != uint8(misc) {
				t.Fatalf("DecodeValue(%04x) got = (%02x,%02x), want (%02x,%02x)", r.Value(), gotOp, gotMisc, op, misc)
			}
			if r.Index() != 0xBEEF {
				t.Fatalf("Index() got = %04x, want beef", r.Index())
			}
		}
	}
}

func TestRequestEncoding(t *testing.T) {
	f := &fakeTransport{rsp: []byte{0}}
	c := NewConn(f)
	if err := c.Exec(5, 0x80, 0x8000, 4); err != nil {
		t.Fatal(err)
	}
	if f.lastRequest != 5 || f.lastValue != 0x0480 || f.lastIndex != 0x8000 {
		t.Errorf("Control() got = (%d,%04x,%04x), want (5,0480,8000)", f.lastRequest, f.lastValue, f.lastIndex)
	}
}

func TestTransferStrictAndLenient(t *testing.T) {
	f := &fakeTransport{rsp: []byte{0xB2, 1, 0x42}}
	c := NewConn(f)

	_, err := c.Read8(5, 0x61, 0, 0)
	var derr *DeviceError
	if !errors.As(err, &derr) {
		t.Fatalf("Read8() err = %v, want *DeviceError", err)
	}
	if derr.Status != ErrBuffAllocRange {
		t.Errorf("DeviceError.Status got = %v, want %v", derr.Status, ErrBuffAllocRange)
	}

	c.Lenient = true
	b, err := c.Read8(5, 0x61, 0, 0)
	if err != nil {
		t.Fatalf("lenient Read8() err = %v", err)
	}
	if b != 0x42 {
		t.Errorf("Read8() got = %02x, want 42", b)
	}
	if c.LastStatus() != ErrBuffAllocRange {
		t.Errorf("LastStatus() got = %v", c.LastStatus())
	}
}

func TestTransferShortRead(t *testing.T) {
	f := &fakeTransport{rsp: []byte{0, 2, 1, 2}, n: 2}
	c := NewConn(f)
	_, err := c.Read16(1, 6, 11, 0)
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("Read16() err = %v, want *TransportError", err)
	}
}

func TestTransferTransportFailure(t *testing.T) {
	f := &fakeTransport{err: ErrDeviceDisconnected}
	c := NewConn(f)
	err := c.Exec(2, 0, 0, 0)
	if !errors.Is(err, ErrDeviceDisconnected) {
		t.Fatalf("Exec() err = %v, want ErrDeviceDisconnected", err)
	}
}

func TestRead16LittleEndian(t *testing.T) {
	f := &fakeTransport{rsp: []byte{0, 2, 0x34, 0x12}}
	c := NewConn(f)
	w, err := c.Read16(13, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if w != 0x1234 {
		t.Errorf("Read16() got = %04x, want 1234", w)
	}
}

func TestTransferNoCheck(t *testing.T) {
	f := &fakeTransport{rsp: []byte{0xFF, 0xEE}}
	c := NewConn(f)
	buf, err := c.TransferNoCheck(Request{Dict: 5, Opcode: 0x70, Length: 2})
	if err != nil {
		t.Fatal(err)
	}
	if buf[0] != 0xFF || buf[1] != 0xEE {
		t.Errorf("TransferNoCheck() got = %x", buf)
	}
}

func TestDeviceStatusString(t *testing.T) {
	tests := []struct {
		name string
		s    DeviceStatus
		want string
	}{
		{"success", Success, "SUCCESS"},
		{"alloc range", ErrBuffAllocRange, "ERR_BUFF_ALLOC_RANGE"},
		{"unknown", DeviceStatus(0x42), "0x42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.s.String(); got != tt.want {
				t.Errorf("String() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	unregisterAllDrivers()
	defer unregisterAllDrivers()

	f := &fakeTransport{}
	Register("fake", fakeDriver{f})
	if got := Drivers(); len(got) != 1 || got[0] != "fake" {
		t.Fatalf("Drivers() got = %v", got)
	}
	tr, err := Open("fake", "")
	if err != nil {
		t.Fatal(err)
	}
	if tr != Transport(f) {
		t.Errorf("Open() returned a different transport")
	}
	if _, err = Open("nope", ""); err == nil {
		t.Errorf("Open() of unknown driver should fail")
	}

	defer func() {
		if recover() == nil {
			t.Errorf("Register() twice should panic")
		}
	}()
	Register("fake", fakeDriver{f})
}
