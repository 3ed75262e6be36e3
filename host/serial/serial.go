package serial

import (
	"io"
)

// Port is the byte stream the tick monitor reads report frames from.
// Implementations:
// - Native serial (using github.com/tarm/serial)
// - Any io.ReadWriteCloser in tests
type Port interface {
	io.ReadWriteCloser
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyUSB0", "COM3")
	Device string

	// Baud rate of the XMEGA USART carrying the reports
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration matching the firmware defaults
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}

// timeoutPort reports an expired read timeout as an empty read. tarm/serial
// returns (0, io.EOF) when ReadTimeout elapses with no data.
type timeoutPort struct {
	io.ReadWriteCloser
}

func (p timeoutPort) Read(b []byte) (int, error) {
	n, err := p.ReadWriteCloser.Read(b)
	if n == 0 && err == io.EOF {
		return 0, nil
	}
	return n, err
}

// WithReadTimeout wraps a port opened with a read timeout so an idle line
// reads as (0, nil) instead of end of stream.
func WithReadTimeout(rwc io.ReadWriteCloser) Port {
	return timeoutPort{rwc}
}
