// Package report frames the periodic tick status the firmware sends to
// the host monitor.
//
// A frame is: length, sequence, VLQ payload, CRC16 (big endian), sync.
// The length byte counts the whole frame including itself and the sync
// byte.
package report

import (
	"errors"
	"fmt"
)

const (
	frameHeaderSize  = 2
	frameTrailerSize = 3
	FrameMin         = frameHeaderSize + frameTrailerSize
	FrameMax         = 32
	SyncByte         = 0x7E

	// StopByte sent by the host disarms the tick and ends reporting.
	StopByte = 0x18
)

var (
	ErrFrameLength = errors.New("bad frame length")
	ErrFrameSync   = errors.New("missing sync byte")
	ErrFrameCRC    = errors.New("frame CRC mismatch")
)

// Report is one tick status sample.
type Report struct {
	Seq      uint8
	Ticks    uint32 // Scheduler tick count
	Switches uint32 // Task switches since boot
	Period   uint16 // PER value the timer was armed with
	Vector   uint8  // Overflow vector number
}

// Append encodes r as a frame appended to dst. It does not allocate when
// dst has FrameMax bytes of spare capacity.
func Append(dst []byte, r Report) []byte {
	start := len(dst)
	dst = append(dst, 0, r.Seq)
	dst = appendVLQ(dst, r.Ticks)
	dst = appendVLQ(dst, r.Switches)
	dst = appendVLQ(dst, uint32(r.Period))
	dst = appendVLQ(dst, uint32(r.Vector))
	dst[start] = byte(len(dst) - start + frameTrailerSize)

	crc := CRC16(dst[start:])
	return append(dst, byte(crc>>8), byte(crc), SyncByte)
}

// Decode parses exactly one frame.
func Decode(frame []byte) (Report, error) {
	if len(frame) < FrameMin || len(frame) > FrameMax || int(frame[0]) != len(frame) {
		return Report{}, ErrFrameLength
	}
	if frame[len(frame)-1] != SyncByte {
		return Report{}, ErrFrameSync
	}

	body := frame[:len(frame)-frameTrailerSize]
	want := uint16(frame[len(frame)-3])<<8 | uint16(frame[len(frame)-2])
	if got := CRC16(body); got != want {
		return Report{}, fmt.Errorf("%w: got 0x%04X want 0x%04X", ErrFrameCRC, got, want)
	}

	payload := body[frameHeaderSize:]
	var vals [4]uint32
	for i := range vals {
		v, err := readVLQ(&payload)
		if err != nil {
			return Report{}, err
		}
		vals[i] = v
	}
	r := Report{
		Seq:      body[1],
		Ticks:    vals[0],
		Switches: vals[1],
		Period:   uint16(vals[2]),
		Vector:   uint8(vals[3]),
	}
	return r, nil
}

// Scanner splits a byte stream into frames, dropping bytes up to the
// next sync byte whenever a frame fails to decode.
type Scanner struct {
	buf     []byte
	Dropped int // Bytes discarded while resynchronising
	Errors  int // Frames rejected
}

// Feed appends data and returns every complete report found.
func (s *Scanner) Feed(data []byte) []Report {
	s.buf = append(s.buf, data...)

	var out []Report
	for len(s.buf) > 0 {
		n := int(s.buf[0])
		if n < FrameMin || n > FrameMax {
			s.resync()
			continue
		}
		if len(s.buf) < n {
			break
		}
		r, err := Decode(s.buf[:n])
		if err != nil {
			s.Errors++
			s.resync()
			continue
		}
		out = append(out, r)
		s.buf = s.buf[n:]
	}
	return out
}

// resync drops bytes through the next sync byte.
func (s *Scanner) resync() {
	for i, b := range s.buf {
		if b == SyncByte {
			s.Dropped += i + 1
			s.buf = s.buf[i+1:]
			return
		}
	}
	s.Dropped += len(s.buf)
	s.buf = s.buf[:0]
}
