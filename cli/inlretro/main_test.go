package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRun(t *testing.T) {
	t.Setenv("INLRETRO_LOG_DIR", t.TempDir())
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"help", []string{"-h"}, 1},
		{"stray argument", []string{"-driver", "mock", "-c", "nes", "-m", "nrom", "extra"}, 1},
		{"unknown console", []string{"-driver", "mock", "-c", "atari"}, 1},
		{"unknown mapper", []string{"-driver", "mock", "-c", "nes", "-m", "mmc5"}, 1},
		{"nes without size", []string{"-driver", "mock", "-c", "nes", "-m", "nrom", "-d", filepath.Join(dir, "nosize.nes")}, 1},
		{"unknown driver", []string{"-driver", "parallel", "-c", "snes"}, 1},
		{"nes probe", []string{"-driver", "mock", "-c", "nes", "-m", "nrom"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(append([]string{"inlretro"}, tt.args...)); got != tt.want {
				t.Errorf("run() got = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := os.Stat(filepath.Join(dir, "nosize.nes")); !os.IsNotExist(err) {
		t.Errorf("os.Stat() got = %v, want not exist", err)
	}
}

func TestRunDumpNES(t *testing.T) {
	t.Setenv("INLRETRO_LOG_DIR", t.TempDir())
	path := filepath.Join(t.TempDir(), "nrom.nes")

	args := []string{"inlretro", "-driver", "mock", "-c", "nes", "-m", "nrom", "-x", "32", "-y", "8", "-d", path, "-stats"}
	if got := run(args); got != 0 {
		t.Fatalf("run() got = %v, want 0", got)
	}

	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := int64(16 + 40*1024); fi.Size() != want {
		t.Errorf("Size() got = %v, want %v", fi.Size(), want)
	}

	// the dump compares equal to itself
	args = append(args[:len(args)-1], "-compare", path)
	path2 := filepath.Join(filepath.Dir(path), "again.nes")
	args[len(args)-3] = path2
	if got := run(args); got != 0 {
		t.Errorf("run() got = %v, want 0", got)
	}
}

func TestRunRAMUnsupported(t *testing.T) {
	t.Setenv("INLRETRO_LOG_DIR", t.TempDir())
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
	}{
		{"nes without prg-ram", []string{"-c", "nes", "-m", "nrom"}},
		{"gb", []string{"-c", "gb"}},
		{"genesis without save ram", []string{"-c", "genesis"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".sav")
			args := append([]string{"inlretro", "-driver", "mock", "-a", path}, tt.args...)
			if got := run(args); got != 1 {
				t.Errorf("run() got = %v, want 1", got)
			}
			if _, err := os.Stat(path); !os.IsNotExist(err) {
				t.Errorf("os.Stat() got = %v, want not exist", err)
			}
		})
	}
}

func TestLookupConsole(t *testing.T) {
	for _, name := range []string{"nes", "SNES", "gb", "gba", "genesis"} {
		if _, err := lookupConsole(name); err != nil {
			t.Errorf("lookupConsole(%q) got = %v, want nil", name, err)
		}
	}
	if _, err := lookupConsole("n64"); err == nil {
		t.Errorf("lookupConsole() got = nil, want error")
	}
}
