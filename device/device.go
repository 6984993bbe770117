// Package device talks to an INL Retro-Prog over vendor control
// transfers. Concrete transports register themselves as drivers.
package device

import (
	"fmt"
	"sort"
	"sync"
)

// Transport issues one vendor control IN transfer and fills data with
// the response. It returns the number of bytes received.
type Transport interface {
	Control(request uint8, value, index uint16, data []byte) (int, error)
	Close() error
}

type Driver interface {
	Open(name string) (Transport, error)
}

var (
	driversMu sync.RWMutex
	drivers   = make(map[string]Driver)
)

// Register makes a device driver available by the provided name.
// If Register is called twice with the same name or if driver is nil,
// it panics.
func Register(name string, driver Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()
	if driver == nil {
		panic("device: Register driver is nil")
	}
	if _, dup := drivers[name]; dup {
		panic("device: Register called twice for driver " + name)
	}
	drivers[name] = driver
}

func unregisterAllDrivers() {
	driversMu.Lock()
	defer driversMu.Unlock()
	// For tests.
	drivers = make(map[string]Driver)
}

// Drivers returns a sorted list of the names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	list := make([]string, 0, len(drivers))
	for name := range drivers {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// Open opens a transport with the named driver. The meaning of name is
// driver specific; an empty name selects the first matching device.
func Open(driverName, name string) (Transport, error) {
	driversMu.RLock()
	driveri, ok := drivers[driverName]
	driversMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("device: unknown driver %q (forgotten import?)", driverName)
	}

	return driveri.Open(name)
}
