package driver_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/anpep/chromactl/driver"
	"github.com/anpep/chromactl/report"
	"github.com/anpep/chromactl/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSender records every buffer handed to it and replies with a
// configurable byte count or error.
type stubSender struct {
	n      int
	err    error
	calls  int
	closed bool
	sent   [][]byte
}

func (s *stubSender) Send(data []byte) (int, error) {
	s.calls++
	s.sent = append(s.sent, append([]byte(nil), data...))
	if s.n == 0 && s.err == nil {
		return len(data), nil
	}
	return s.n, s.err
}

func (s *stubSender) Close() error {
	s.closed = true
	return nil
}

func testDevice(s *stubSender) *driver.Device {
	return driver.New(s, slog.New(slog.DiscardHandler), nil)
}

func TestSetLEDColorRejectsBadSizes(t *testing.T) {
	type testCase struct {
		name string
		buf  []byte
	}

	cases := []testCase{
		{name: "nil", buf: nil},
		{name: "empty", buf: []byte{}},
		{name: "two bytes", buf: []byte{1, 2}},
		{name: "four bytes", buf: []byte{1, 2, 3, 4}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := &stubSender{}
			n, err := testDevice(s).SetLEDColor(report.Logo, tc.buf)
			assert.ErrorIs(t, err, driver.ErrColorSize)
			assert.Zero(t, n)
			assert.Zero(t, s.calls, "no transfer should be attempted on invalid input")
		})
	}
}

func TestSetLEDColorSuccess(t *testing.T) {
	s := &stubSender{}
	n, err := testDevice(s).SetLEDColor(report.Logo, []byte{0x10, 0x20, 0x30})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	require.Equal(t, 1, s.calls)

	b := s.sent[0]
	require.Len(t, b, report.Size)
	assert.Equal(t, byte(0x03), b[5])
	assert.Equal(t, byte(0x01), b[6])
	assert.Equal(t, byte(0x05), b[4])
	assert.Equal(t, []byte{0x01, 0x04, 0x10, 0x20, 0x30}, b[7:12])
	assert.Equal(t, report.Checksum(b), b[87])
}

func TestSetLEDColorShortWrite(t *testing.T) {
	s := &stubSender{n: report.Size - 1}
	n, err := testDevice(s).SetLEDColor(report.Wheel, []byte{1, 2, 3})
	assert.Zero(t, n)

	var terr *transport.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, report.Size-1, terr.Accepted)
	assert.ErrorIs(t, err, io.ErrShortWrite)
}

func TestSetLEDColorTransferError(t *testing.T) {
	cause := errors.New("device gone")
	s := &stubSender{n: -1, err: cause}
	_, err := testDevice(s).SetLEDColor(report.Wheel, []byte{1, 2, 3})

	var terr *transport.Error
	require.ErrorAs(t, err, &terr)
	assert.ErrorIs(t, err, cause)
}

func TestRepeatedWritesAreFreshReports(t *testing.T) {
	s := &stubSender{}
	dev := testDevice(s)

	_, err := dev.SetLEDColor(report.Logo, []byte{9, 8, 7})
	require.NoError(t, err)
	_, err = dev.SetLEDColor(report.Logo, []byte{9, 8, 7})
	require.NoError(t, err)

	require.Len(t, s.sent, 2)
	a, b := s.sent[0], s.sent[1]
	for i := range a {
		if i == 1 {
			continue // transaction id is random per report
		}
		assert.Equalf(t, a[i], b[i], "byte %d should match across identical writes", i)
	}
	assert.Equal(t, report.Checksum(a), a[87])
	assert.Equal(t, report.Checksum(b), b[87])
}

func TestCloseReleasesSender(t *testing.T) {
	s := &stubSender{}
	dev := testDevice(s)
	require.NoError(t, dev.Close())
	assert.True(t, s.closed)
}
