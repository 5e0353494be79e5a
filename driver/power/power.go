// Package power controls USB runtime power management for the bound
// device. The device drops control transfers without error when it has
// autosuspended, so the binding disables autosuspend once for its
// lifetime, the way the kernel driver does at probe time.
package power

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultRoot is where the host exposes USB device power attributes.
const DefaultRoot = "/sys/bus/usb/devices"

// ErrNoPortPath is returned for a device without a port chain (a root
// hub); nothing bindable lives there.
var ErrNoPortPath = errors.New("device has no port path")

// SysfsName renders the device-tree name for a device on the given bus
// reached through the given port chain, e.g. bus 3 ports [1 4] -> "3-1.4".
func SysfsName(bus int, ports []int) (string, error) {
	if len(ports) == 0 {
		return "", ErrNoPortPath
	}
	parts := make([]string, len(ports))
	for i, p := range ports {
		parts[i] = strconv.Itoa(p)
	}
	return fmt.Sprintf("%d-%s", bus, strings.Join(parts, ".")), nil
}

// DisableAutosuspend forces the device on bus/ports to stay powered by
// writing "on" to its power/control attribute under root. Pass
// DefaultRoot outside of tests.
func DisableAutosuspend(root string, bus int, ports []int) error {
	name, err := SysfsName(bus, ports)
	if err != nil {
		return err
	}
	ctl := filepath.Join(root, name, "power", "control")
	if err := os.WriteFile(ctl, []byte("on"), 0o644); err != nil {
		return fmt.Errorf("disable autosuspend for %s: %w", name, err)
	}
	return nil
}
