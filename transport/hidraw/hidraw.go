// Package hidraw sends control reports as HID feature reports through
// the kernel's hidraw interface. Unlike the libusb backend it leaves the
// kernel HID driver bound to the device, at the cost of not seeing the
// underlying bus topology.
package hidraw

import (
	"fmt"

	"github.com/sstallion/go-hid"
)

// Device is an open hidraw handle to the mouse.
type Device struct {
	dev *hid.Device
}

// Open opens the first hidraw node matching the vendor/product id.
func Open(vid, pid uint16) (*Device, error) {
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("hidapi init: %w", err)
	}
	dev, err := hid.Open(vid, pid, "")
	if err != nil {
		_ = hid.Exit()
		return nil, fmt.Errorf("open %04x:%04x: %w", vid, pid, err)
	}
	return &Device{dev: dev}, nil
}

// Send frames data as an unnumbered feature report and hands it to the
// kernel. The accepted count is normalized to exclude the report id
// prefix so it is comparable with the raw report length.
func (d *Device) Send(data []byte) (int, error) {
	buf := make([]byte, len(data)+1)
	buf[0] = 0x00 // report id
	copy(buf[1:], data)
	n, err := d.dev.SendFeatureReport(buf)
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// Close releases the hidraw handle and tears down hidapi.
func (d *Device) Close() error {
	err := d.dev.Close()
	_ = hid.Exit()
	return err
}
