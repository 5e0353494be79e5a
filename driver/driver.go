// Package driver binds the DeathAdder Chroma and exposes its two
// writable LED color attributes. The binding owns the transport handle;
// each color write is a stateless build-report, checksum, send round
// trip with no retries and no cross-call state.
package driver

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anpep/chromactl/driver/power"
	"github.com/anpep/chromactl/internal/log"
	"github.com/anpep/chromactl/report"
	"github.com/anpep/chromactl/transport"
	"github.com/anpep/chromactl/transport/hidraw"
	"github.com/anpep/chromactl/transport/usbctl"
)

// USB identity of the Razer DeathAdder Chroma. The only device this
// driver knows how to talk to.
const (
	VendorID  = 0x1532
	ProductID = 0x0043
)

// ErrColorSize is returned when a color write is not exactly 3 bytes.
var ErrColorSize = errors.New("color must be exactly 3 bytes (R, G, B)")

// Backend selects how reports reach the device.
type Backend string

const (
	// BackendUSB issues raw control transfers through libusb.
	BackendUSB Backend = "usb"
	// BackendHidraw writes feature reports through the kernel hidraw node.
	BackendHidraw Backend = "hidraw"
)

// Config controls how a binding is established.
type Config struct {
	Backend Backend
	// Timeout bounds each control transfer. Zero means transport.DefaultTimeout.
	Timeout time.Duration
	// PowerRoot overrides the sysfs root for autosuspend control; tests only.
	PowerRoot string
}

// Device is a bound device. Safe to share across goroutines only if the
// caller serializes color writes; the driver adds no locking, and
// last-writer-wins ordering between interleaved writes is up to the
// host's USB stack.
type Device struct {
	sender transport.Sender
	logger *slog.Logger
	raw    log.RawLogger
}

// Bind opens the device, disables its autosuspend for the lifetime of
// the binding and returns the bound handle. The caller must Close it.
func Bind(cfg Config, logger *slog.Logger, raw log.RawLogger) (*Device, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = transport.DefaultTimeout
	}
	if cfg.PowerRoot == "" {
		cfg.PowerRoot = power.DefaultRoot
	}

	var sender transport.Sender
	switch cfg.Backend {
	case BackendHidraw:
		dev, err := hidraw.Open(VendorID, ProductID)
		if err != nil {
			return nil, err
		}
		// hidapi does not expose the bus topology, so autosuspend stays
		// at the host's default on this backend.
		logger.Debug("hidraw backend: leaving autosuspend untouched")
		sender = dev
	case BackendUSB, "":
		dev, err := usbctl.Open(VendorID, ProductID, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		bus, ports := dev.BusPath()
		if err := power.DisableAutosuspend(cfg.PowerRoot, bus, ports); err != nil {
			// Best effort: the write needs privileges the caller may not
			// have, and an autosuspended device fails loudly later anyway.
			logger.Warn("could not disable autosuspend", "error", err)
		}
		sender = dev
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}

	logger.Debug("device bound", "vid", fmt.Sprintf("%04x", VendorID),
		"pid", fmt.Sprintf("%04x", ProductID), "backend", cfg.Backend)
	return New(sender, logger, raw), nil
}

// New wraps an already open sender. Bind is the normal entry point;
// tests hand in stub senders here.
func New(sender transport.Sender, logger *slog.Logger, raw log.RawLogger) *Device {
	if raw == nil {
		raw = log.NewRaw(nil)
	}
	return &Device{sender: sender, logger: logger, raw: raw}
}

// SetLEDColor writes a 3-byte R, G, B color to the given LED zone and
// persists it on the device. Returns the number of color bytes consumed
// (always 3) on success. Any byte triple is forwarded verbatim.
func (d *Device) SetLEDColor(target report.LED, buf []byte) (int, error) {
	if len(buf) != 3 {
		return 0, ErrColorSize
	}

	rep := report.NewSetColor(target, report.Color{buf[0], buf[1], buf[2]})
	data := rep.Bytes()

	d.logger.Debug("sending control report", "led", target.String(), "size", len(data))
	d.raw.Log(data)

	if err := transport.Deliver(d.sender, data); err != nil {
		return 0, fmt.Errorf("set %s color: %w", target, err)
	}
	return len(buf), nil
}

// Close releases the underlying transport handle. The device keeps the
// last persisted colors; there is no driver-side teardown.
func (d *Device) Close() error {
	return d.sender.Close()
}
