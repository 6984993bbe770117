package main

import (
	"context"
	"io"
	"log"
	"sort"
	"strings"

	"inlretro/cart/gb"
	"inlretro/cart/gba"
	"inlretro/cart/genesis"
	"inlretro/cart/nes"
	"inlretro/cart/snes"
	"inlretro/device"
	"inlretro/dump"
)

type console struct {
	name     string
	validate func(cfg *config) error
	probe    func(ctx context.Context, d *dump.Dumper, cfg *config) error
	rom      func(ctx context.Context, d *dump.Dumper, w io.Writer, cfg *config) error
	ram      func(ctx context.Context, d *dump.Dumper, w io.Writer, cfg *config) error

	// ramCheck reads the cartridge to confirm there is save RAM to dump.
	ramCheck func(d *dump.Dumper) error
}

func noValidation(*config) error { return nil }

var consoles = map[string]console{
	"nes": {
		name: "NES",
		validate: func(cfg *config) error {
			m, err := nes.Lookup(cfg.mapper)
			if err != nil {
				return err
			}
			if _, ok := m.(nes.RAMMapper); cfg.ramPath != "" && !ok {
				return device.Configf("%s boards have no PRG-RAM support", m.Name())
			}
			if cfg.romPath != "" && cfg.prgKB <= 0 {
				return device.Configf("NES ROM dumps need the PRG-ROM size (-x)")
			}
			return nil
		},
		probe: func(ctx context.Context, d *dump.Dumper, cfg *config) error {
			m, _ := nes.Lookup(cfg.mapper)
			_, err := nes.Probe(d.Conn, m)
			return err
		},
		rom: func(ctx context.Context, d *dump.Dumper, w io.Writer, cfg *config) error {
			m, _ := nes.Lookup(cfg.mapper)
			_, err := nes.DumpROM(ctx, d, w, m, cfg.prgKB, cfg.chrKB)
			return err
		},
		ram: func(ctx context.Context, d *dump.Dumper, w io.Writer, cfg *config) error {
			m, _ := nes.Lookup(cfg.mapper)
			return nes.DumpRAM(ctx, d, w, m, 0)
		},
	},
	"snes": {
		name:     "SNES",
		validate: noValidation,
		probe: func(ctx context.Context, d *dump.Dumper, cfg *config) error {
			_, err := snes.Probe(d.Conn)
			return err
		},
		rom: func(ctx context.Context, d *dump.Dumper, w io.Writer, cfg *config) error {
			_, err := snes.DumpROM(ctx, d, w, cfg.prgKB)
			return err
		},
		ram: func(ctx context.Context, d *dump.Dumper, w io.Writer, cfg *config) error {
			_, err := snes.DumpRAM(ctx, d, w, 0)
			return err
		},
		ramCheck: func(d *dump.Dumper) error {
			cart, err := snes.Probe(d.Conn)
			if err != nil {
				return err
			}
			if cart.Header.RAMSizeKB() == 0 {
				return device.Configf("cartridge reports no save RAM")
			}
			return nil
		},
	},
	"gb": {
		name:     "Game Boy",
		validate: noValidation,
		probe: func(ctx context.Context, d *dump.Dumper, cfg *config) error {
			_, err := gb.Probe(d.Conn)
			return err
		},
		rom: func(ctx context.Context, d *dump.Dumper, w io.Writer, cfg *config) error {
			_, err := gb.DumpROM(ctx, d, w, cfg.prgKB)
			return err
		},
	},
	"gba": {
		name:     "GBA",
		validate: noValidation,
		probe: func(ctx context.Context, d *dump.Dumper, cfg *config) error {
			_, err := gba.Probe(d.Conn)
			return err
		},
		rom: func(ctx context.Context, d *dump.Dumper, w io.Writer, cfg *config) error {
			_, kb, err := gba.DumpROM(ctx, d, w, cfg.prgKB)
			if err == nil {
				log.Printf("gba: ROM is %dKB\n", kb)
			}
			return err
		},
	},
	"genesis": {
		name:     "Genesis",
		validate: noValidation,
		probe: func(ctx context.Context, d *dump.Dumper, cfg *config) error {
			_, err := genesis.Probe(d.Conn)
			return err
		},
		rom: func(ctx context.Context, d *dump.Dumper, w io.Writer, cfg *config) error {
			_, err := genesis.DumpROM(ctx, d, w, cfg.prgKB)
			return err
		},
		ram: func(ctx context.Context, d *dump.Dumper, w io.Writer, cfg *config) error {
			_, err := genesis.DumpRAM(ctx, d, w)
			return err
		},
		ramCheck: func(d *dump.Dumper) error {
			h, err := genesis.Probe(d.Conn)
			if err != nil {
				return err
			}
			_, err = genesis.SaveRAMKB(h)
			return err
		},
	},
}

func consoleNames() []string {
	list := make([]string, 0, len(consoles))
	for name := range consoles {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

func lookupConsole(name string) (console, error) {
	con, ok := consoles[strings.ToLower(name)]
	if !ok {
		return console{}, device.Configf("unsupported console %q (have %s)", name, strings.Join(consoleNames(), ", "))
	}
	return con, nil
}
