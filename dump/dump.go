// Package dump reads cartridge memory through the programmer's staged
// two-buffer pipeline.
package dump

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"inlretro/device"
	"inlretro/opcodes"
)

// ChunkSize is the number of bytes drained per payload transfer.
const ChunkSize = 128

// Window is a span of cartridge memory visible without further bank
// switching.
type Window struct {
	SizeKB int
	Mapper uint8
	Mem    uint8
}

// Banker puts bank i of a cartridge into view and returns the window
// to dump.
type Banker interface {
	SelectBank(ctx context.Context, i int) (Window, error)
}

type BankerFunc func(ctx context.Context, i int) (Window, error)

func (f BankerFunc) SelectBank(ctx context.Context, i int) (Window, error) {
	return f(ctx, i)
}

// Dumper runs dump sessions on one connection.
type Dumper struct {
	Conn    *device.Conn
	Options Options
	Stats   *Stats
}

func NewDumper(c *device.Conn, opts Options) *Dumper {
	return &Dumper{Conn: c, Options: opts, Stats: NewStats()}
}

// Dump reads sizeKB kilobytes from the window at mapBase in memory type
// mem and writes them to w.
func Dump(ctx context.Context, c *device.Conn, w io.Writer, sizeKB int, mapBase, mem uint8) error {
	return NewDumper(c, Options{}).Dump(ctx, w, sizeKB, mapBase, mem)
}

func (d *Dumper) Dump(ctx context.Context, w io.Writer, sizeKB int, mapBase, mem uint8) (err error) {
	if sizeKB <= 0 {
		return device.Configf("dump size %dKB", sizeKB)
	}

	layout, err := PlanLayout(2, ChunkSize)
	if err != nil {
		return
	}

	s := NewSession(d.Conn, d.Options)
	defer func() {
		if err == nil {
			return
		}
		// best effort; keep the original error.
		if rerr := s.SetOperation(opcodes.StatusReset); rerr != nil {
			log.Printf("dump: reset after failure: %v\n", rerr)
			return
		}
		_ = s.ResetAll()
	}()

	if err = s.SetOperation(opcodes.StatusReset); err != nil {
		return fmt.Errorf("dump: reset: %w", err)
	}
	if err = s.ResetAll(); err != nil {
		return fmt.Errorf("dump: raw buffer reset: %w", err)
	}
	if err = s.ApplyLayout(layout); err != nil {
		return fmt.Errorf("dump: allocate: %w", err)
	}
	for i := range layout.Buffers {
		if err = s.SetMemoryAndPart(i, mem, opcodes.PartMaskROM); err != nil {
			return fmt.Errorf("dump: buffer %d memory: %w", i, err)
		}
		if err = s.SetMapperAndVariant(i, mapBase, opcodes.VarNone); err != nil {
			return fmt.Errorf("dump: buffer %d mapper: %w", i, err)
		}
	}
	if err = s.SetOperation(opcodes.StatusStartDump); err != nil {
		return fmt.Errorf("dump: start: %w", err)
	}

	start := time.Now()
	d.Stats.session()

	chunks := sizeKB * 1024 / ChunkSize
	buf := make([]byte, ChunkSize)
	for k := 0; k < chunks; k++ {
		if err = ctx.Err(); err != nil {
			return
		}

		var attempts int
		attempts, err = s.PollUntilDumped(ctx)
		d.Stats.poll(attempts)
		if err != nil {
			return fmt.Errorf("dump: mem 0x%02x map 0x%02x: %w", mem, mapBase, err)
		}
		if err = s.DrainPayload(buf); err != nil {
			return fmt.Errorf("dump: drain chunk %d: %w", k, err)
		}
		if _, err = w.Write(buf); err != nil {
			return fmt.Errorf("dump: write chunk %d: %w", k, err)
		}
		d.Stats.chunk(len(buf))
	}
	d.Stats.elapsed(time.Since(start))

	if err = s.SetOperation(opcodes.StatusReset); err != nil {
		return fmt.Errorf("dump: reset: %w", err)
	}
	if err = s.ResetAll(); err != nil {
		return fmt.Errorf("dump: raw buffer reset: %w", err)
	}
	return
}

// Banked dumps n bank windows, asking banker to select each one first.
func (d *Dumper) Banked(ctx context.Context, w io.Writer, n int, banker Banker) (err error) {
	for i := 0; i < n; i++ {
		if err = ctx.Err(); err != nil {
			return
		}

		var win Window
		win, err = banker.SelectBank(ctx, i)
		if err != nil {
			return fmt.Errorf("dump: select bank %d: %w", i, err)
		}
		if err = d.Dump(ctx, w, win.SizeKB, win.Mapper, win.Mem); err != nil {
			return fmt.Errorf("dump: bank %d: %w", i, err)
		}
	}
	return
}
