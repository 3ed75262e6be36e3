package report

import (
	"errors"
	"testing"
)

func TestVLQ(t *testing.T) {
	values := []uint32{0, 1, 0x7F, 0x80, 0x3FFF, 0x4000, 32000, 0xFFFFFFFF}
	for _, v := range values {
		data := appendVLQ(nil, v)
		got, err := readVLQ(&data)
		if err != nil {
			t.Errorf("readVLQ(%d): %v", v, err)
			continue
		}
		if got != v || len(data) != 0 {
			t.Errorf("VLQ %d: got %d with %d bytes left", v, got, len(data))
		}
	}

	if n := len(appendVLQ(nil, 0x7F)); n != 1 {
		t.Errorf("Expected 1 byte for 0x7F, got %d", n)
	}
	if n := len(appendVLQ(nil, 0xFFFFFFFF)); n != 5 {
		t.Errorf("Expected 5 bytes for max uint32, got %d", n)
	}

	truncated := []byte{0x81}
	if _, err := readVLQ(&truncated); !errors.Is(err, ErrTruncatedVLQ) {
		t.Errorf("Expected ErrTruncatedVLQ, got %v", err)
	}
}

func TestCRC16(t *testing.T) {
	if got := CRC16(nil); got != 0xFFFF {
		t.Errorf("Expected 0xFFFF for empty input, got 0x%04X", got)
	}
	data := []byte{0x01, 0x02, 0x03}
	flipped := []byte{0x01, 0x02, 0x07}
	if CRC16(data) == CRC16(flipped) {
		t.Error("Single bit change not detected")
	}
}

func TestFrameDecode(t *testing.T) {
	want := Report{Seq: 7, Ticks: 123456, Switches: 42, Period: 32000, Vector: 14}
	frame := Append(nil, want)

	if int(frame[0]) != len(frame) {
		t.Errorf("Length byte %d does not match frame size %d", frame[0], len(frame))
	}
	if frame[len(frame)-1] != SyncByte {
		t.Error("Frame does not end with sync byte")
	}

	got, err := Decode(frame)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}
}

func TestFrameErrors(t *testing.T) {
	frame := Append(nil, Report{Seq: 1, Ticks: 10, Period: 2000, Vector: 83})

	corrupt := append([]byte(nil), frame...)
	corrupt[3] ^= 0x01
	if _, err := Decode(corrupt); !errors.Is(err, ErrFrameCRC) {
		t.Errorf("Expected ErrFrameCRC, got %v", err)
	}

	nosync := append([]byte(nil), frame...)
	nosync[len(nosync)-1] = 0
	if _, err := Decode(nosync); !errors.Is(err, ErrFrameSync) {
		t.Errorf("Expected ErrFrameSync, got %v", err)
	}

	if _, err := Decode(frame[:len(frame)-1]); !errors.Is(err, ErrFrameLength) {
		t.Errorf("Expected ErrFrameLength, got %v", err)
	}
}

func TestScannerSplitsStream(t *testing.T) {
	var stream []byte
	for i := uint32(0); i < 3; i++ {
		stream = Append(stream, Report{Seq: uint8(i), Ticks: 1000 * i, Period: 32000, Vector: 14})
	}

	var s Scanner
	var got []Report
	// Feed in awkward chunks
	for len(stream) > 0 {
		n := 4
		if n > len(stream) {
			n = len(stream)
		}
		got = append(got, s.Feed(stream[:n])...)
		stream = stream[n:]
	}

	if len(got) != 3 {
		t.Fatalf("Expected 3 reports, got %d", len(got))
	}
	for i, r := range got {
		if r.Seq != uint8(i) || r.Ticks != uint32(1000*i) {
			t.Errorf("Report %d: unexpected %+v", i, r)
		}
	}
	if s.Dropped != 0 || s.Errors != 0 {
		t.Errorf("Clean stream dropped %d bytes, %d errors", s.Dropped, s.Errors)
	}
}

func TestScannerResync(t *testing.T) {
	good := Append(nil, Report{Seq: 2, Ticks: 99, Period: 100, Vector: 20})
	bad := Append(nil, Report{Seq: 1, Ticks: 50, Period: 100, Vector: 20})
	bad[2] ^= 0xFF

	stream := append(bad, 0x00, 0x42, SyncByte)
	stream = append(stream, good...)

	var s Scanner
	got := s.Feed(stream)
	if len(got) != 1 || got[0].Seq != 2 {
		t.Fatalf("Expected only the good report, got %+v", got)
	}
	if s.Errors != 1 {
		t.Errorf("Expected 1 rejected frame, got %d", s.Errors)
	}
	if s.Dropped != len(bad)+3 {
		t.Errorf("Expected %d dropped bytes, got %d", len(bad)+3, s.Dropped)
	}
}
