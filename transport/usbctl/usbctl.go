// Package usbctl sends control reports over a raw USB control transfer
// via libusb. This is the HID Set_Report request the kernel driver would
// issue, reproduced from userspace: class request to interface 0,
// feature report type, report id 0.
package usbctl

import (
	"fmt"
	"time"

	"github.com/google/gousb"
)

const (
	// HID class Set_Report bRequest.
	reqSetReport = 0x09
	// HID feature report type, shifted into the high byte of wValue.
	reportTypeFeature = 0x03
	// Report id 0: the control reports are unnumbered.
	reportID = 0x00

	wValue = reportTypeFeature<<8 | reportID
	wIndex = 0 // interface index
)

// Device is an open libusb handle to the mouse.
type Device struct {
	ctx *gousb.Context
	dev *gousb.Device
}

// Open opens the matching device by vendor/product id and bounds its
// control transfers by timeout. Returns an error when no device matches.
func Open(vid, pid uint16, timeout time.Duration) (*Device, error) {
	ctx := gousb.NewContext()
	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("open %04x:%04x: %w", vid, pid, err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("no device %04x:%04x attached", vid, pid)
	}
	// The kernel HID driver owns interface 0 while we are talking over
	// the control pipe; let libusb detach it on claim.
	if err := dev.SetAutoDetach(true); err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("auto-detach on %04x:%04x: %w", vid, pid, err)
	}
	dev.ControlTimeout = timeout
	return &Device{ctx: ctx, dev: dev}, nil
}

// Send issues one synchronous Set_Report control transfer to the default
// endpoint and returns the byte count libusb reports as accepted.
func (d *Device) Send(data []byte) (int, error) {
	return d.dev.Control(
		gousb.ControlOut|gousb.ControlClass|gousb.ControlInterface,
		reqSetReport,
		wValue,
		wIndex,
		data,
	)
}

// BusPath reports the bus number and port chain of the open device, in
// the form the host's device tree uses to name it.
func (d *Device) BusPath() (bus int, ports []int) {
	return d.dev.Desc.Bus, d.dev.Desc.Path
}

// Close releases the device handle and the libusb context.
func (d *Device) Close() error {
	err := d.dev.Close()
	d.ctx.Close()
	return err
}
