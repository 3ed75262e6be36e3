package serial

import (
	"errors"
	"io"
	"testing"
)

type scriptedPort struct {
	reads []error
}

func (p *scriptedPort) Read(b []byte) (int, error) {
	err := p.reads[0]
	p.reads = p.reads[1:]
	if err == nil {
		b[0] = 0x7E
		return 1, nil
	}
	return 0, err
}

func (p *scriptedPort) Write(b []byte) (int, error) { return len(b), nil }
func (p *scriptedPort) Close() error                { return nil }

func TestWithReadTimeout(t *testing.T) {
	broken := errors.New("device unplugged")
	port := WithReadTimeout(&scriptedPort{reads: []error{io.EOF, nil, broken}})
	buf := make([]byte, 8)

	if n, err := port.Read(buf); n != 0 || err != nil {
		t.Errorf("Idle timeout: expected (0, nil), got (%d, %v)", n, err)
	}
	if n, err := port.Read(buf); n != 1 || err != nil {
		t.Errorf("Data read: expected (1, nil), got (%d, %v)", n, err)
	}
	if _, err := port.Read(buf); !errors.Is(err, broken) {
		t.Errorf("Expected read error to pass through, got %v", err)
	}
}
