// Package report builds the vendor control reports understood by the
// DeathAdder Chroma. The device speaks a fixed 89-byte feature report
// with a one-byte XOR checksum; every command is a single packet.
package report

import (
	"fmt"
	"math/rand"
	"strings"
)

// Size is the wire size of a control report in bytes.
const Size = 89

const argsSize = 80

// Opcode pair for "set persisted LED color". Vendor-specific; the wider
// meaning of the class/id values is not documented anywhere public.
const (
	cmdClassLED   = 0x03
	cmdIDSetColor = 0x01
)

// setColorArgsLen is the number of meaningful payload bytes for the
// set-color command: persist flag, LED id, R, G, B.
const setColorArgsLen = 5

// persistFlag makes the device keep the color across power cycles.
const persistFlag = 0x01

// LED identifies a light zone on the device. The set is closed; the
// values are the ids the firmware expects in the command payload.
type LED uint8

const (
	// Wheel is the scroll wheel LED.
	Wheel LED = 0x01
	// Logo is the logo LED on the palm rest.
	Logo LED = 0x04
)

func (l LED) String() string {
	switch l {
	case Wheel:
		return "wheel"
	case Logo:
		return "logo"
	default:
		return fmt.Sprintf("led(0x%02x)", uint8(l))
	}
}

// LEDByName maps a zone name to its LED id.
func LEDByName(name string) (LED, bool) {
	switch strings.ToLower(name) {
	case "wheel":
		return Wheel, true
	case "logo":
		return Logo, true
	default:
		return 0, false
	}
}

// Color is an RGB triple. Bytes are forwarded to the device verbatim.
type Color [3]byte

// ParseColor parses a color from "rrggbb" hex, with an optional leading '#'.
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("color must be 6 hex digits, got %q", s)
	}
	var c Color
	for i := 0; i < 3; i++ {
		hi, ok1 := hexVal(s[i*2])
		lo, ok2 := hexVal(s[i*2+1])
		if !ok1 || !ok2 {
			return Color{}, fmt.Errorf("color must be 6 hex digits, got %q", s)
		}
		c[i] = hi<<4 | lo
	}
	return c, nil
}

func hexVal(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}

// Report mirrors the wire layout of a control report. All fields are
// single bytes except Args; there is no padding between fields.
//
// Bytes:
//
//	 0: status (0 on send, filled by the device on a response)
//	 1: transaction id (random per-report correlation byte)
//	 2: remaining packets (0, single-packet command)
//	 3: protocol type (0)
//	 4: args length (meaningful bytes in Args)
//	 5: command class
//	 6: command id
//	 7-86: args
//	87: checksum (XOR over bytes [2, 87))
//	88: reserved (0)
type Report struct {
	Status           uint8
	TransactionID    uint8
	RemainingPackets uint8
	ProtocolType     uint8
	ArgsLen          uint8
	CmdClass         uint8
	CmdID            uint8
	Args             [argsSize]byte
	CRC              uint8
	Reserved         uint8
}

// NewSetColor builds a fully populated, checksummed set-color report for
// the given zone. The transaction id is a fresh random byte; nothing on
// the host side ever matches it against a response, so collisions between
// reports are fine.
func NewSetColor(target LED, c Color) *Report {
	r := &Report{
		TransactionID: uint8(rand.Intn(256)),
		ArgsLen:       setColorArgsLen,
		CmdClass:      cmdClassLED,
		CmdID:         cmdIDSetColor,
	}
	r.Args[0] = persistFlag
	r.Args[1] = uint8(target)
	r.Args[2] = c[0]
	r.Args[3] = c[1]
	r.Args[4] = c[2]
	r.CRC = Checksum(r.Bytes())
	return r
}

// Bytes serializes the report as-is into its 89-byte wire form. It does
// not recompute the checksum; NewSetColor seals the report, and callers
// mutating fields afterwards must refresh CRC themselves.
func (r *Report) Bytes() []byte {
	b := make([]byte, Size)
	b[0] = r.Status
	b[1] = r.TransactionID
	b[2] = r.RemainingPackets
	b[3] = r.ProtocolType
	b[4] = r.ArgsLen
	b[5] = r.CmdClass
	b[6] = r.CmdID
	copy(b[7:7+argsSize], r.Args[:])
	b[87] = r.CRC
	b[88] = r.Reserved
	return b
}

// Checksum XOR-folds the serialized report over bytes [2, len-2). The
// window excludes status and transaction id at the front and the checksum
// slot plus the reserved byte at the back; the device computes the same
// window and silently drops reports that do not match.
func Checksum(data []byte) uint8 {
	var crc uint8
	for i := 2; i < len(data)-2; i++ {
		crc ^= data[i]
	}
	return crc
}
