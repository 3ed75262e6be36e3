package report

import "io"

// Link is the device side of the report line.
type Link interface {
	io.Writer
	// Poll returns a received byte, or false when none is waiting.
	Poll() (byte, bool)
}

// Stream sends a report every interval ticks until the host sends
// StopByte. ticks reads the running tick count; status fills in the
// remaining fields of each report. It returns the number of reports sent.
func Stream(link Link, ticks func() uint32, interval uint32, status func() Report) int {
	var frame [FrameMax]byte
	var seq uint8
	sent := 0
	next := ticks() + interval
	for {
		if b, ok := link.Poll(); ok && b == StopByte {
			return sent
		}
		now := ticks()
		if int32(now-next) < 0 {
			continue
		}
		next += interval

		r := status()
		r.Seq = seq
		r.Ticks = now
		link.Write(Append(frame[:0], r))
		seq++
		sent++
	}
}
