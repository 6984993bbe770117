package main

import (
	"flag"
	"fmt"
	"log"

	"inlretro/device"
	"inlretro/device/wsbridge"
	"inlretro/util/env"
)

const serveUsage = `Share a locally attached programmer over a websocket.

Usage: %s [flags]

`

func serve(name string, args []string) int {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), serveUsage, name)
		flags.PrintDefaults()
	}
	listen := flags.String("listen", env.GetOrDefault("INLRETRO_BRIDGE_LISTEN", "localhost:8765"), "address to listen on")
	path := flags.String("path", "/inlretro", "websocket path")
	driver := flags.String("driver", env.GetOrDefault("INLRETRO_DRIVER", "usb"), "device driver to share")
	dev := flags.String("device", env.GetOrDefault("INLRETRO_DEVICE", ""), "driver-specific device name")
	if err := flags.Parse(args); err != nil {
		return 1
	}
	if *driver == "wsbridge" {
		log.Println("inlretro: serve cannot share a bridged device")
		return 1
	}

	srv := wsbridge.NewServer(func() (device.Transport, error) {
		return device.Open(*driver, *dev)
	})
	if err := wsbridge.ListenAndServe(*listen, *path, srv); err != nil {
		log.Printf("inlretro: %v\n", err)
		return 1
	}
	return 0
}
