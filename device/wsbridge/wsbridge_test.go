package wsbridge

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"inlretro/board"
	"inlretro/device"
	"inlretro/device/mock"
	"inlretro/opcodes"
	"inlretro/util"
)

func startServer(t *testing.T, m *mock.Device) string {
	t.Helper()
	util.RedirectLog(t)
	srv := NewServer(func() (device.Transport, error) { return m, nil })
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return "ws" + strings.TrimPrefix(ts.URL, "http") + "/"
}

func TestBridgeRoundTrip(t *testing.T) {
	m := mock.New(&mock.PatternCart{})
	url := startServer(t, m)

	cl, err := Dial(context.Background(), url)
	if err != nil {
		t.Fatal(err)
	}
	defer cl.Close()
	c := device.NewConn(cl)

	if err = board.SetOperation(c, opcodes.StatusStartDump); err != nil {
		t.Fatal(err)
	}
	got, err := board.GetOperation(c)
	if err != nil {
		t.Fatal(err)
	}
	if got != opcodes.StatusStartDump {
		t.Errorf("GetOperation() got = %#x, want %#x", got, opcodes.StatusStartDump)
	}
	if m.Operation() != opcodes.StatusStartDump {
		t.Errorf("device operation got = %#x, want %#x", m.Operation(), opcodes.StatusStartDump)
	}
}

func TestBridgeDeviceError(t *testing.T) {
	m := mock.New(nil)
	url := startServer(t, m)

	cl, err := Dial(context.Background(), url)
	if err != nil {
		t.Fatal(err)
	}
	defer cl.Close()

	// a nil cart rejects the NES dictionary with a status byte.
	err = device.NewConn(cl).Exec(opcodes.DictNES, opcodes.NESCPUWr, 0x8000, 0)
	var derr *device.DeviceError
	if !errors.As(err, &derr) {
		t.Fatalf("Exec() got = %v, want DeviceError", err)
	}
	if derr.Status != device.ErrUnknownDictionary {
		t.Errorf("Exec() status got = %v, want %v", derr.Status, device.ErrUnknownDictionary)
	}
}

func TestBridgeDisconnect(t *testing.T) {
	m := mock.New(&mock.PatternCart{})
	url := startServer(t, m)

	cl, err := Dial(context.Background(), url)
	if err != nil {
		t.Fatal(err)
	}
	defer cl.Close()

	_ = m.Close()
	err = board.SetOperation(device.NewConn(cl), opcodes.StatusReset)
	if !errors.Is(err, device.ErrDeviceDisconnected) {
		t.Errorf("SetOperation() got = %v, want %v", err, device.ErrDeviceDisconnected)
	}
}

func TestBridgeSingleClient(t *testing.T) {
	m := mock.New(&mock.PatternCart{})
	url := startServer(t, m)

	first, err := Dial(context.Background(), url)
	if err != nil {
		t.Fatal(err)
	}
	defer first.Close()

	second, err := Dial(context.Background(), url)
	if err == nil {
		second.Close()
		t.Fatal("Dial() second client: expected error")
	}
}

func TestServerLengthRange(t *testing.T) {
	s := NewServer(nil)
	buf := make([]byte, maxLength)
	for _, n := range []int{0, -1, maxLength + 1} {
		rsp := s.control(mock.New(nil), request{Request: opcodes.DictOperation, Length: n}, buf)
		if rsp.Error == "" {
			t.Errorf("control() length %d: expected error", n)
		}
	}
}
