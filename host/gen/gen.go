// Package gen emits the Go constants a firmware target is built with.
package gen

import (
	"bytes"
	"go/format"
	"strconv"
	"text/template"

	"github.com/pkg/errors"

	"tickport/config"
	"tickport/core"
)

var fileTemplate = template.Must(template.New("tickconfig").Parse(`// Code generated by tickgen. DO NOT EDIT.

//go:build {{.BuildTag}}

package {{.Package}}

import "tickport/core"

// {{.Timer}} on {{.Device}}: PER={{.Period}} {{.ClkSel}}, {{.VectorName}}
var tickConfig = core.Config{
	Device:      {{printf "%q" .Device}},
	Instance:    core.Instance{Port: '{{.Port}}', Index: {{.Index}}},
	ClockSelect: core.{{.ClkSelConst}},
	TickRateHz:  {{.TickRateHz}},
	CPUClockHz:  {{.CPUClockHz}},
	Preemptive:  {{.Preemptive}},
}

const (
	tickVector       = {{.Vector}}
	schedTasks       = {{.Tasks}}
	schedQuantum     = {{.Quantum}}
	reportIntervalMS = {{.ReportIntervalMS}}
	reportBaud       = {{.ReportBaud}}
)
`))

// ErrNoContextSwitch is returned for a preemptive configuration when the
// target has no context save/restore routines linked in.
var ErrNoContextSwitch = errors.New("target has no context switch support for preemption")

// Options controls the generated file header.
type Options struct {
	Package  string
	BuildTag string

	// AllowPreemption is set for targets that link port_save_context
	// and port_restore_context.
	AllowPreemption bool
}

// DefaultOptions matches the xmega target, which only runs the
// cooperative handler.
var DefaultOptions = Options{Package: "main", BuildTag: "avr && xmega"}

type templateData struct {
	Options
	Device           string
	Timer            string
	Port             string
	Index            uint8
	ClkSel           string
	ClkSelConst      string
	TickRateHz       uint32
	CPUClockHz       uint32
	Preemptive       bool
	Period           uint16
	Vector           uint8
	VectorName       string
	Tasks            uint8
	Quantum          uint32
	ReportIntervalMS uint32
	ReportBaud       uint32
}

// Generate resolves f and renders the target source. A configuration that
// does not resolve produces an error and no output.
func Generate(f *config.File, opts Options) ([]byte, error) {
	cfg, w, err := f.Resolve()
	if err != nil {
		return nil, err
	}
	if cfg.Preemptive && !opts.AllowPreemption {
		return nil, errors.Wrapf(ErrNoContextSwitch, "%s %s", cfg.Device, cfg.Instance)
	}

	data := templateData{
		Options:          opts,
		Device:           cfg.Device,
		Timer:            cfg.Instance.Name(),
		Port:             string(cfg.Instance.Port),
		Index:            cfg.Instance.Index,
		ClkSel:           cfg.ClockSelect.String(),
		ClkSelConst:      clockSelectConst(cfg.ClockSelect),
		TickRateHz:       cfg.TickRateHz,
		CPUClockHz:       cfg.CPUClockHz,
		Preemptive:       cfg.Preemptive,
		Period:           w.Period,
		Vector:           w.Vector,
		VectorName:       w.VectorName,
		Tasks:            f.Tasks,
		Quantum:          f.Quantum,
		ReportIntervalMS: f.Report.IntervalMS,
		ReportBaud:       f.Report.Baud,
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "render template")
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrap(err, "format generated source")
	}
	return src, nil
}

func clockSelectConst(c core.ClockSelect) string {
	return "ClkDiv" + strconv.FormatUint(uint64(c.Divider()), 10)
}
