package nes

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"inlretro/device"
	"inlretro/dump"
	"inlretro/opcodes"
)

// Plan is a number of bank windows and the banker that selects them.
type Plan struct {
	Banks  int
	Banker dump.Banker
}

// Mapper knows how to bank one NES board family.
type Mapper interface {
	Name() string
	Number() uint8

	// Init puts the mapper registers into a known state.
	Init(c *device.Conn) error
	// Probe runs mirroring and flash ID self tests.
	Probe(c *device.Conn) (*ProbeResult, error)

	PRG(ctx context.Context, d *dump.Dumper, prgKB int) (Plan, error)
	CHR(ctx context.Context, d *dump.Dumper, chrKB int) (Plan, error)
}

// RAMMapper is a mapper with battery-backed PRG-RAM at $6000.
type RAMMapper interface {
	Mapper
	EnableRAM(c *device.Conn) error
}

var (
	mappersMu sync.RWMutex
	mappers   = make(map[string]Mapper)
)

// Register makes a mapper available by its name. If Register is called
// twice with the same name or if m is nil, it panics.
func Register(m Mapper) {
	mappersMu.Lock()
	defer mappersMu.Unlock()
	if m == nil {
		panic("nes: Register mapper is nil")
	}
	name := m.Name()
	if _, dup := mappers[name]; dup {
		panic("nes: Register called twice for mapper " + name)
	}
	mappers[name] = m
}

// Mappers returns a sorted list of the names of the registered mappers.
func Mappers() []string {
	mappersMu.RLock()
	defer mappersMu.RUnlock()
	list := make([]string, 0, len(mappers))
	for name := range mappers {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

func Lookup(name string) (Mapper, error) {
	mappersMu.RLock()
	m, ok := mappers[strings.ToLower(name)]
	mappersMu.RUnlock()
	if !ok {
		return nil, device.Configf("unsupported NES mapper %q (have %s)", name, strings.Join(Mappers(), ", "))
	}
	return m, nil
}

func checkSize(what string, kb, unit int) error {
	if kb <= 0 || kb%unit != 0 {
		return device.Configf("%s size %dKB must be a positive multiple of %dKB", what, kb, unit)
	}
	return nil
}

// fixedWindows is a plan that reads the same window n times with no
// bank switching in between.
func fixedWindows(n int, win dump.Window) Plan {
	return Plan{Banks: n, Banker: dump.BankerFunc(func(ctx context.Context, i int) (dump.Window, error) {
		return win, nil
	})}
}

func prgWindow(kb int) dump.Window {
	return dump.Window{SizeKB: kb, Mapper: 0x08, Mem: opcodes.MemNESCPU4KB}
}

func chrWindow(kb int) dump.Window {
	return dump.Window{SizeKB: kb, Mapper: 0x00, Mem: opcodes.MemNESPPU1KB}
}

// noCHR is for boards that only carry CHR-RAM.
func noCHR(name string, chrKB int) (Plan, error) {
	if chrKB != 0 {
		return Plan{}, device.Configf("%s boards have no CHR-ROM; got %dKB", name, chrKB)
	}
	return Plan{}, nil
}

func wrapf(name string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("nes: %s: %w", name, err)
}
