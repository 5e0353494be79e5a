package report_test

import (
	"testing"

	"github.com/anpep/chromactl/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetColorReportShape(t *testing.T) {
	r := report.NewSetColor(report.Logo, report.Color{0x10, 0x20, 0x30})
	b := r.Bytes()

	require.Len(t, b, report.Size)

	assert.Equal(t, uint8(0), r.Status)
	assert.Equal(t, uint8(0), r.RemainingPackets)
	assert.Equal(t, uint8(0), r.ProtocolType)
	assert.Equal(t, uint8(5), r.ArgsLen)
	assert.Equal(t, uint8(0x03), r.CmdClass)
	assert.Equal(t, uint8(0x01), r.CmdID)
	assert.Equal(t, uint8(0), r.Reserved)

	// Payload: persist flag, LED id, R, G, B; rest of args zeroed.
	assert.Equal(t, byte(0x01), b[7])
	assert.Equal(t, byte(0x04), b[8])
	assert.Equal(t, byte(0x10), b[9])
	assert.Equal(t, byte(0x20), b[10])
	assert.Equal(t, byte(0x30), b[11])
	for i := 12; i < 87; i++ {
		assert.Zerof(t, b[i], "args byte %d should be zero padding", i)
	}

	assert.Equal(t, report.Checksum(b), b[87])
}

func TestSetColorWheelTarget(t *testing.T) {
	r := report.NewSetColor(report.Wheel, report.Color{0xff, 0x00, 0x7f})
	b := r.Bytes()
	assert.Equal(t, byte(0x01), b[8])
}

func TestChecksumDeterministic(t *testing.T) {
	build := func() []byte {
		r := report.NewSetColor(report.Logo, report.Color{0xaa, 0xbb, 0xcc})
		r.TransactionID = 0x5a
		r.CRC = report.Checksum(r.Bytes())
		return r.Bytes()
	}
	assert.Equal(t, build(), build())
}

func TestChecksumWindow(t *testing.T) {
	r := report.NewSetColor(report.Logo, report.Color{1, 2, 3})
	base := report.Checksum(r.Bytes())

	type testCase struct {
		name     string
		index    int
		excluded bool
	}

	cases := []testCase{
		{name: "status", index: 0, excluded: true},
		{name: "transaction id", index: 1, excluded: true},
		{name: "remaining packets", index: 2, excluded: false},
		{name: "args len", index: 4, excluded: false},
		{name: "first args byte", index: 7, excluded: false},
		{name: "last windowed byte", index: 86, excluded: false},
		{name: "checksum slot", index: 87, excluded: true},
		{name: "reserved", index: 88, excluded: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := r.Bytes()
			b[tc.index] ^= 0xff
			got := report.Checksum(b)
			if tc.excluded {
				assert.Equal(t, base, got)
			} else {
				assert.NotEqual(t, base, got)
			}
		})
	}
}

func TestRepeatedBuildsDifferOnlyInTransactionID(t *testing.T) {
	// Same command twice: identical wire bytes except byte 1. The
	// transaction id lies outside the checksum window, so the checksums
	// match too and both reports are independently valid.
	a := report.NewSetColor(report.Wheel, report.Color{9, 8, 7}).Bytes()
	b := report.NewSetColor(report.Wheel, report.Color{9, 8, 7}).Bytes()

	for i := range a {
		if i == 1 {
			continue
		}
		assert.Equalf(t, a[i], b[i], "byte %d should not depend on the transaction id", i)
	}
	assert.Equal(t, report.Checksum(a), report.Checksum(b))
}

func TestParseColor(t *testing.T) {
	type testCase struct {
		name    string
		in      string
		want    report.Color
		wantErr bool
	}

	cases := []testCase{
		{name: "plain hex", in: "102030", want: report.Color{0x10, 0x20, 0x30}},
		{name: "leading hash", in: "#ff00aa", want: report.Color{0xff, 0x00, 0xaa}},
		{name: "uppercase", in: "ABCDEF", want: report.Color{0xab, 0xcd, 0xef}},
		{name: "too short", in: "fff", wantErr: true},
		{name: "too long", in: "ff00aa00", wantErr: true},
		{name: "not hex", in: "gg0000", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := report.ParseColor(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestLEDByName(t *testing.T) {
	logo, ok := report.LEDByName("logo")
	assert.True(t, ok)
	assert.Equal(t, report.Logo, logo)

	wheel, ok := report.LEDByName("WHEEL")
	assert.True(t, ok)
	assert.Equal(t, report.Wheel, wheel)

	_, ok = report.LEDByName("underglow")
	assert.False(t, ok)
}
