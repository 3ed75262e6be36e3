// Package monitor measures the tick rate a device actually produces
// from the report frames it sends.
package monitor

import (
	"context"
	"io"
	"math"
	"time"

	"github.com/pkg/errors"

	"tickport/report"
)

// Sample is one decoded report with the rate observed since the previous
// one.
type Sample struct {
	Report report.Report
	At     time.Time

	// RateHz is 0 for the first sample.
	RateHz float64

	// Missed counts reports lost before this one, from sequence gaps.
	Missed int

	// Restarted is set when the tick count went backwards, i.e. the
	// device reset. The sample becomes the new baseline.
	Restarted bool
}

// Monitor reads report frames from a stream.
type Monitor struct {
	r    io.Reader
	scan report.Scanner
	now  func() time.Time
	last *Sample
}

// New creates a monitor reading from r.
func New(r io.Reader) *Monitor {
	return &Monitor{r: r, now: time.Now}
}

// Dropped returns the bytes discarded while resynchronising and the
// number of rejected frames.
func (m *Monitor) Dropped() (bytes, frames int) {
	return m.scan.Dropped, m.scan.Errors
}

// Run reads until ctx is done, the stream ends or fn fails, calling fn for
// every report. io.EOF ends the stream, so a live port must be wrapped with
// serial.WithReadTimeout; its idle reads return no data and Run keeps
// waiting.
func (m *Monitor) Run(ctx context.Context, fn func(Sample) error) error {
	buf := make([]byte, 256)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := m.r.Read(buf)
		if n > 0 {
			at := m.now()
			for _, r := range m.scan.Feed(buf[:n]) {
				if ferr := fn(m.observe(r, at)); ferr != nil {
					return ferr
				}
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read reports")
		}
	}
}

func (m *Monitor) observe(r report.Report, at time.Time) Sample {
	s := Sample{Report: r, At: at}
	if m.last != nil && r.Ticks < m.last.Report.Ticks {
		s.Restarted = true
	} else if m.last != nil {
		if dt := at.Sub(m.last.At).Seconds(); dt > 0 {
			s.RateHz = float64(r.Ticks-m.last.Report.Ticks) / dt
		}
		s.Missed = int(r.Seq-m.last.Report.Seq) - 1
	}
	m.last = &s
	return s
}

// WithinTolerance reports whether rate is within pct percent of expect.
func WithinTolerance(rate, expect, pct float64) bool {
	if expect <= 0 {
		return false
	}
	return math.Abs(rate-expect)/expect*100 <= pct
}
