package dump

import (
	"errors"
	"testing"

	"inlretro/device"
	"inlretro/device/mock"
	"inlretro/opcodes"
)

func TestPlanLayout(t *testing.T) {
	type args struct {
		numBuffers int
		size       int
	}
	tests := []struct {
		name    string
		args    args
		want    []BufferPlan
		wantErr bool
	}{
		{
			name: "2x128",
			args: args{2, 128},
			want: []BufferPlan{
				{ID: 0x00, BaseBank: 0, NumBanks: 4, FirstPage: 0, Reload: 1},
				{ID: 0x80, BaseBank: 4, NumBanks: 4, FirstPage: 0, Reload: 1},
			},
		},
		{
			name: "2x256",
			args: args{2, 256},
			want: []BufferPlan{
				{ID: 0x00, BaseBank: 0, NumBanks: 8, FirstPage: 0, Reload: 2},
				{ID: 0x00, BaseBank: 8, NumBanks: 8, FirstPage: 1, Reload: 2},
			},
		},
		{name: "3x128", args: args{3, 128}, wantErr: true},
		{name: "2x64", args: args{2, 64}, wantErr: true},
		{name: "2x512", args: args{2, 512}, wantErr: true},
		{name: "odd size", args: args{2, 100}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PlanLayout(tt.args.numBuffers, tt.args.size)
			if tt.wantErr {
				var cerr *device.ConfigurationError
				if !errors.As(err, &cerr) {
					t.Fatalf("PlanLayout() err = %v, want *device.ConfigurationError", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(got.Buffers) != len(tt.want) {
				t.Fatalf("PlanLayout() got %d buffers, want %d", len(got.Buffers), len(tt.want))
			}
			for i := range tt.want {
				if got.Buffers[i] != tt.want[i] {
					t.Errorf("PlanLayout() buffer %d got = %+v, want %+v", i, got.Buffers[i], tt.want[i])
				}
			}
		})
	}
}

func TestLayoutInterleave(t *testing.T) {
	for _, size := range []int{128, 256} {
		l, err := PlanLayout(2, size)
		if err != nil {
			t.Fatal(err)
		}
		for k := 0; k < 1000; k++ {
			buffer, offset := l.Chunk(k)
			if buffer != k%2 {
				t.Fatalf("size %d chunk %d: buffer got = %d, want %d", size, k, buffer, k%2)
			}
			if offset != uint32(k*size) {
				t.Fatalf("size %d chunk %d: offset got = %d, want %d", size, k, offset, k*size)
			}
		}
	}
}

func TestAllocateBankPool(t *testing.T) {
	m := mock.New(&mock.PatternCart{})
	m.Record = true
	s := NewSession(device.NewConn(m), Options{})

	tests := []struct {
		name     string
		buffer   int
		base     uint8
		numBanks uint8
	}{
		{"past the pool", 0, 10, 8},
		{"zero banks", 0, 0, 0},
		{"no such buffer", 4, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Allocate(tt.buffer, 0, tt.base, tt.numBanks)
			if !IsConfiguration(err) {
				t.Fatalf("Allocate() err = %v, want configuration error", err)
			}
		})
	}
	if len(m.Requests) != 0 {
		t.Fatalf("invalid allocations reached the device: %v", m.Requests)
	}

	if err := s.Allocate(0, 0, 0, 8); err != nil {
		t.Fatal(err)
	}
	if err := s.Allocate(1, 0x80, 4, 8); !IsConfiguration(err) {
		t.Fatalf("overlapping Allocate() err = %v, want configuration error", err)
	}
	if err := s.Allocate(1, 0x80, 8, 8); err != nil {
		t.Fatal(err)
	}
	if got := m.AllocatedBanks(); got != opcodes.NumRawBanks {
		t.Errorf("AllocatedBanks() got = %d, want %d", got, opcodes.NumRawBanks)
	}
	if len(m.Requests) != 2 {
		t.Errorf("device saw %d requests, want 2", len(m.Requests))
	}
}

func TestAllocateEncoding(t *testing.T) {
	m := mock.New(nil)
	m.Record = true
	s := NewSession(device.NewConn(m), Options{})
	if err := s.Allocate(1, 0x80, 4, 4); err != nil {
		t.Fatal(err)
	}
	r := m.Requests[0]
	if r.Dict != opcodes.DictBuffer || r.Opcode != opcodes.AllocateBuffer1 || r.Operand != 0x8004 || r.Misc != 4 {
		t.Errorf("Allocate() sent %v", r)
	}
}
