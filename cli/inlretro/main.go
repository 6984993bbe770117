// Command inlretro dumps cartridges with an INL Retro-Prog.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"inlretro/board"
	"inlretro/cart/nes"
	"inlretro/device"
	"inlretro/dump"
	"inlretro/romfile"
	"inlretro/util"
	"inlretro/util/env"
)

// include these device drivers:
import (
	_ "inlretro/device/mock"
	_ "inlretro/device/usb"
	_ "inlretro/device/wsbridge"
)

const usageString = `INL Retro-Prog cartridge dumper.

Usage: %[1]s -c console [-d romfile] [-a ramfile] [flags]
       %[1]s serve [flags]

Consoles: %[2]s

`

type config struct {
	console string
	romPath string
	ramPath string
	mapper  string
	prgKB   int
	chrKB   int

	driver   string
	device   string
	lenient  bool
	attempts int
	backoff  time.Duration

	stats   bool
	compare string
	run     string
}

func newFlags(name string, cfg *config) *flag.FlagSet {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), usageString, name, strings.Join(consoleNames(), ", "))
		flags.PrintDefaults()
	}

	flags.StringVar(&cfg.console, "c", "", "console: "+strings.Join(consoleNames(), " | "))
	flags.StringVar(&cfg.romPath, "d", "", "dump ROM to `file`")
	flags.StringVar(&cfg.ramPath, "a", "", "dump save RAM to `file`")
	flags.StringVar(&cfg.mapper, "m", "", "NES mapper: "+strings.Join(nes.Mappers(), " | "))
	flags.IntVar(&cfg.prgKB, "x", 0, "PRG-ROM size in KB (NES); ROM size override elsewhere")
	flags.IntVar(&cfg.chrKB, "y", 0, "CHR-ROM size in KB (NES); 0 for CHR-RAM")

	flags.StringVar(&cfg.driver, "driver", env.GetOrDefault("INLRETRO_DRIVER", "usb"), "device driver: "+strings.Join(device.Drivers(), " | "))
	flags.StringVar(&cfg.device, "device", env.GetOrDefault("INLRETRO_DEVICE", ""), "driver-specific device name")
	flags.BoolVar(&cfg.lenient, "lenient", util.IsTruthy(os.Getenv("INLRETRO_LENIENT")), "log nonzero device status instead of failing")
	flags.IntVar(&cfg.attempts, "attempts", env.GetIntOrDefault("INLRETRO_POLL_ATTEMPTS", dump.DefaultMaxAttempts), "buffer status polls per chunk")
	flags.DurationVar(&cfg.backoff, "backoff", env.GetDurationOrDefault("INLRETRO_POLL_BACKOFF", 0), "delay between buffer status polls")

	flags.BoolVar(&cfg.stats, "stats", false, "print transfer statistics")
	flags.StringVar(&cfg.compare, "compare", "", "compare the ROM dump against a reference `file` (.7z accepted)")
	flags.StringVar(&cfg.run, "run", "", "run `command` with the ROM dump as its last argument")
	return flags
}

func init() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds | log.LUTC)
}

func main() {
	os.Exit(run(os.Args))
}

// run returns the process exit status.
func run(args []string) (code int) {
	logger, err := util.OpenLogFile(env.GetOrDefault("INLRETRO_LOG_DIR", ""), "inlretro")
	if err != nil {
		log.Println(err)
	} else {
		log.Printf("logging to '%s'\n", logger.Path)
		defer func() {
			log.SetOutput(os.Stderr)
			_ = logger.Close()
		}()
	}
	defer func() {
		if p := recover(); p != nil {
			util.LogPanic(p)
			code = 2
		}
	}()

	if len(args) > 1 && args[1] == "serve" {
		return serve(args[0]+" serve", args[2:])
	}

	var cfg config
	flags := newFlags(args[0], &cfg)
	if err = flags.Parse(args[1:]); err != nil {
		// -h lands here as flag.ErrHelp.
		return 1
	}
	if flags.NArg() != 0 {
		flags.Usage()
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err = dumpCart(ctx, &cfg); err != nil {
		log.Printf("inlretro: %v\n", err)
		return 1
	}
	return 0
}

func dumpCart(ctx context.Context, cfg *config) (err error) {
	con, err := lookupConsole(cfg.console)
	if err != nil {
		return
	}
	if err = con.validate(cfg); err != nil {
		return
	}
	if cfg.ramPath != "" && con.ram == nil {
		return device.Configf("save RAM dumps are not supported for %s", con.name)
	}

	t, err := device.Open(cfg.driver, cfg.device)
	if err != nil {
		return
	}
	c := device.NewConn(t)
	c.Lenient = cfg.lenient
	defer c.Close()

	if _, err = board.CheckAppVersion(c); err != nil {
		return
	}

	d := dump.NewDumper(c, dump.Options{MaxAttempts: cfg.attempts, Backoff: cfg.backoff})

	if cfg.romPath == "" && cfg.ramPath == "" {
		return con.probe(ctx, d, cfg)
	}
	if cfg.ramPath != "" {
		if con.ramCheck != nil {
			if err = con.ramCheck(d); err != nil {
				return
			}
		}
		err = writeFile(cfg.ramPath, func(w io.Writer) error { return con.ram(ctx, d, w, cfg) })
		if err != nil {
			return
		}
	}
	if cfg.romPath != "" {
		err = writeFile(cfg.romPath, func(w io.Writer) error { return con.rom(ctx, d, w, cfg) })
		if err != nil {
			return
		}
	}

	if cfg.stats {
		if err = d.Stats.Fprint(os.Stdout); err != nil {
			return
		}
	}
	if cfg.compare != "" && cfg.romPath != "" {
		var r *romfile.Result
		if r, err = romfile.Compare(cfg.romPath, cfg.compare); err != nil {
			return
		}
		if !r.Equal() {
			return fmt.Errorf("dump does not match %s: %v", cfg.compare, r)
		}
	}
	if cfg.run != "" && cfg.romPath != "" {
		return runROM(ctx, cfg.run, cfg.romPath)
	}
	return
}

// writeFile creates path and hands it to fn. On failure the partial file
// is kept and reported as incomplete.
func writeFile(path string, fn func(w io.Writer) error) error {
	f, err := romfile.Create(path)
	if err != nil {
		return err
	}
	if err = fn(f); err != nil {
		if errors.Is(err, context.Canceled) {
			err = fmt.Errorf("interrupted: %w", err)
		}
		return f.Abort(err)
	}
	return f.Commit()
}
