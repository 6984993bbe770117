package board

import (
	"testing"

	"inlretro/device"
	"inlretro/device/mock"
	"inlretro/opcodes"
	"inlretro/util"
)

func TestCheckAppVersion(t *testing.T) {
	util.RedirectLog(t)

	tests := []struct {
		name    string
		version uint8
	}{
		{"current", opcodes.AppVersion},
		{"old", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mock.New(&mock.PatternCart{})
			m.Version = tt.version
			got, err := CheckAppVersion(device.NewConn(m))
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.version {
				t.Errorf("CheckAppVersion() got = %v, want %v", got, tt.version)
			}
		})
	}
}

func TestOperationRoundTrip(t *testing.T) {
	c := device.NewConn(mock.New(nil))
	if err := SetOperation(c, opcodes.StatusStartDump); err != nil {
		t.Fatal(err)
	}
	got, err := GetOperation(c)
	if err != nil {
		t.Fatal(err)
	}
	if got != opcodes.StatusStartDump {
		t.Errorf("GetOperation() got = %02x, want %02x", got, opcodes.StatusStartDump)
	}
}

func TestSessionResetsPorts(t *testing.T) {
	m := mock.New(&mock.PatternCart{})
	m.Record = true
	c := device.NewConn(m)

	done, err := Session(c, InitNES)
	if err != nil {
		t.Fatal(err)
	}
	done()

	want := []uint8{opcodes.IOReset, opcodes.NESInit, opcodes.IOReset}
	if len(m.Requests) != len(want) {
		t.Fatalf("got %d requests, want %d", len(m.Requests), len(want))
	}
	for i, op := range want {
		if m.Requests[i].Dict != opcodes.DictIO || m.Requests[i].Opcode != op {
			t.Errorf("request %d got = %v, want io opcode %d", i, m.Requests[i], op)
		}
	}
}

func TestDescribeEXP0(t *testing.T) {
	if got := DescribeEXP0(opcodes.EXP0StuckHi); got != "EXP0 stuck high" {
		t.Errorf("DescribeEXP0() got = %v", got)
	}
	if got := DescribeEXP0(0x12); got != "EXP0 test result 0x12" {
		t.Errorf("DescribeEXP0() got = %v", got)
	}
}
