// Package usb opens an INL Retro-Prog through libusb.
package usb

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/google/gousb"

	"inlretro/device"
	"inlretro/util"
)

const driverName = "usb"

const (
	VendorID     gousb.ID = 0x16C0
	ProductID    gousb.ID = 0x05DC
	Manufacturer          = "InfiniteNesLives.com"
	Product               = "INL Retro-Prog"
)

var ErrNoDeviceFound = errors.New("usb: no INL Retro-Prog found")

type Driver struct{}

func (d *Driver) DisplayName() string {
	return "INL Retro-Prog (USB)"
}

func (d *Driver) DisplayDescription() string {
	return "Connect to a programmer over USB; name selects a device by \"bus:address\""
}

// Conn holds the device handle and its exclusive lock.
type Conn struct {
	ctx  *gousb.Context
	dev  *gousb.Device
	lock *util.FileLock

	Bus, Address int
	Version      device.FirmwareVersion
}

// Location is a "bus:address" device selector. The zero value matches
// any device.
type Location struct {
	Bus, Address int
}

func ParseLocation(name string) (l Location, err error) {
	if name == "" {
		return
	}
	parts := strings.Split(name, ":")
	if len(parts) != 2 {
		return l, device.Configf("usb device name %q is not bus:address", name)
	}
	if l.Bus, err = strconv.Atoi(parts[0]); err != nil {
		return l, device.Configf("usb device name %q: bad bus", name)
	}
	if l.Address, err = strconv.Atoi(parts[1]); err != nil {
		return l, device.Configf("usb device name %q: bad address", name)
	}
	return
}

func (l Location) Matches(bus, address int) bool {
	return (l.Bus == 0 && l.Address == 0) || (l.Bus == bus && l.Address == address)
}

// CheckIdentity compares the string descriptors against the programmer's.
func CheckIdentity(manufacturer, product string) error {
	if manufacturer != Manufacturer || product != Product {
		return fmt.Errorf("usb: %q by %q is not an %s", product, manufacturer, Product)
	}
	return nil
}

func (d *Driver) Open(name string) (device.Transport, error) {
	loc, err := ParseLocation(name)
	if err != nil {
		return nil, err
	}

	ctx := gousb.NewContext()
	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == VendorID && desc.Product == ProductID && loc.Matches(desc.Bus, desc.Address)
	})
	// OpenDevices can fail on unrelated devices and still return ours.
	if len(devs) == 0 {
		_ = ctx.Close()
		if err != nil {
			return nil, fmt.Errorf("usb: open devices: %w", err)
		}
		return nil, ErrNoDeviceFound
	}

	var c *Conn
	for _, dev := range devs {
		if c != nil {
			_ = dev.Close()
			continue
		}
		if c, err = open(ctx, dev); err != nil {
			log.Printf("usb: %v\n", err)
			_ = dev.Close()
			c = nil
		}
	}
	if c == nil {
		_ = ctx.Close()
		if err == nil {
			err = ErrNoDeviceFound
		}
		return nil, err
	}
	return c, nil
}

func open(ctx *gousb.Context, dev *gousb.Device) (*Conn, error) {
	desc := dev.Desc
	manufacturer, err := dev.Manufacturer()
	if err != nil {
		return nil, fmt.Errorf("usb: %d:%d manufacturer: %w", desc.Bus, desc.Address, err)
	}
	product, err := dev.Product()
	if err != nil {
		return nil, fmt.Errorf("usb: %d:%d product: %w", desc.Bus, desc.Address, err)
	}
	if err = CheckIdentity(manufacturer, product); err != nil {
		return nil, err
	}

	v := device.ParseBCDDevice(uint16(desc.Device))
	if err = v.Check(); err != nil {
		return nil, err
	}

	lock, err := util.LockName(fmt.Sprintf("inlretro-usb-%d-%d", desc.Bus, desc.Address))
	if err != nil {
		return nil, err
	}

	dev.ControlTimeout = device.Timeout
	log.Printf("usb: opened %s at %d:%d, firmware %v\n", product, desc.Bus, desc.Address, v)
	return &Conn{
		ctx:     ctx,
		dev:     dev,
		lock:    lock,
		Bus:     desc.Bus,
		Address: desc.Address,
		Version: v,
	}, nil
}

func (c *Conn) Control(request uint8, value, index uint16, data []byte) (int, error) {
	n, err := c.dev.Control(gousb.ControlIn|gousb.ControlVendor|gousb.ControlDevice, request, value, index, data)
	if errors.Is(err, gousb.ErrorNoDevice) {
		return n, fmt.Errorf("%w: %v", device.ErrDeviceDisconnected, err)
	}
	return n, err
}

func (c *Conn) Close() (err error) {
	err = c.dev.Close()
	if cerr := c.ctx.Close(); err == nil {
		err = cerr
	}
	if lerr := c.lock.Unlock(); err == nil {
		err = lerr
	}
	return
}

func init() {
	device.Register(driverName, &Driver{})
}
