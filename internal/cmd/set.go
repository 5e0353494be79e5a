package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/anpep/chromactl/driver"
	"github.com/anpep/chromactl/internal/log"
	"github.com/anpep/chromactl/report"
)

// Set writes a static color to one of the device's LED zones and
// persists it on the device.
type Set struct {
	LED   string `arg:"" help:"LED zone to set" enum:"logo,wheel"`
	Color string `arg:"" help:"Color as rrggbb hex, optional leading '#'"`

	Backend string        `help:"Transport backend" enum:"usb,hidraw" default:"usb" env:"CHROMACTL_BACKEND"`
	Timeout time.Duration `help:"Control transfer timeout" default:"5s" env:"CHROMACTL_TIMEOUT"`
}

// Run is called by Kong when the set command is executed.
func (s *Set) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	target, ok := report.LEDByName(s.LED)
	if !ok {
		return fmt.Errorf("unknown LED zone %q", s.LED)
	}
	color, err := report.ParseColor(s.Color)
	if err != nil {
		return err
	}

	dev, err := driver.Bind(driver.Config{
		Backend: driver.Backend(s.Backend),
		Timeout: s.Timeout,
	}, logger, rawLogger)
	if err != nil {
		return fmt.Errorf("bind device: %w", err)
	}
	defer func() { _ = dev.Close() }()

	if _, err := dev.SetLEDColor(target, color[:]); err != nil {
		return err
	}
	logger.Info("color set", "led", target.String(), "color", s.Color)
	return nil
}
