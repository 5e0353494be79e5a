// Package transport delivers serialized control reports to the device
// and classifies the outcome. Backends (libusb control transfers, hidraw
// feature reports) implement Sender; Deliver enforces the all-or-nothing
// acceptance discipline shared by both.
package transport

import (
	"fmt"
	"io"
	"time"
)

// DefaultTimeout bounds a single control transfer. Matches the platform
// default for control pipe set requests.
const DefaultTimeout = 5 * time.Second

// Sender transmits one buffer to the device and reports how many bytes
// the device accepted. Implementations perform exactly one synchronous
// transfer per call and never retry.
type Sender interface {
	// Send transmits data and returns the accepted byte count. A nil
	// error with a short count is possible; Deliver treats it as failure.
	Send(data []byte) (int, error)
	Close() error
}

// Error is a failed transfer. The device either rejected the transfer
// outright (Err holds the backend cause) or accepted fewer bytes than
// sent (Err is io.ErrShortWrite and Accepted holds the count).
type Error struct {
	Accepted int
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("control transfer failed after %d bytes: %v", e.Accepted, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Deliver sends data through s and succeeds only when the device accepts
// every byte. There is no partial success: a short count is as much a
// failure as a transfer error, since the device ignores truncated
// reports without signalling anything.
func Deliver(s Sender, data []byte) error {
	n, err := s.Send(data)
	if err != nil {
		return &Error{Accepted: n, Err: err}
	}
	if n != len(data) {
		return &Error{Accepted: n, Err: io.ErrShortWrite}
	}
	return nil
}
