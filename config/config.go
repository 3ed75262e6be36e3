// Package config loads the build-time tick source configuration.
package config

import (
	"math"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
	"periph.io/x/conn/v3/physic"

	"tickport/core"
)

// File is the YAML layout of a tick configuration, e.g.
//
//	device: atxmega128a1
//	timer: TCC0
//	clksel: div1
//	tick_rate: 1kHz
//	cpu_clock: 32MHz
//	preemption: true
type File struct {
	Device     string `yaml:"device"`
	Timer      string `yaml:"timer"`
	ClkSel     string `yaml:"clksel"`
	TickRate   string `yaml:"tick_rate"`
	CPUClock   string `yaml:"cpu_clock"`
	Preemption bool   `yaml:"preemption"`

	// Reference scheduler
	Tasks   uint8  `yaml:"tasks"`
	Quantum uint32 `yaml:"quantum"`

	Report ReportConfig `yaml:"report"`
}

// ReportConfig controls the tick status frames sent to the host.
type ReportConfig struct {
	IntervalMS uint32 `yaml:"interval_ms"`
	Baud       uint32 `yaml:"baud"`
}

// Load reads and parses a configuration file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return f, nil
}

// Parse decodes YAML data and applies defaults.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "parse yaml")
	}
	applyDefaults(&f)
	return &f, nil
}

// Default returns the configuration used when no file is given.
func Default() *File {
	var f File
	applyDefaults(&f)
	return &f
}

func applyDefaults(f *File) {
	if f.Device == "" {
		f.Device = "atxmega128a1"
	}
	if f.Timer == "" {
		f.Timer = "TCC0"
	}
	if f.ClkSel == "" {
		f.ClkSel = "div1"
	}
	if f.TickRate == "" {
		f.TickRate = "1kHz"
	}
	if f.CPUClock == "" {
		f.CPUClock = "32MHz"
	}
	if f.Tasks == 0 {
		f.Tasks = 2
	}
	if f.Quantum == 0 && f.Preemption {
		f.Quantum = 1
	}
	if f.Report.IntervalMS == 0 {
		f.Report.IntervalMS = 1000
	}
	if f.Report.Baud == 0 {
		f.Report.Baud = 115200
	}
}

// CoreConfig validates every field and converts the file to a resolver
// configuration. All field errors are reported together.
func (f *File) CoreConfig() (core.Config, error) {
	var errs error

	inst, err := core.ParseInstance(f.Timer)
	if err != nil {
		errs = multierr.Append(errs, errors.Wrapf(err, "timer %q", f.Timer))
	}
	clk, err := core.ParseClockSelect(f.ClkSel)
	if err != nil {
		errs = multierr.Append(errs, errors.Wrapf(err, "clksel %q", f.ClkSel))
	}
	tick, err := parseHz(f.TickRate)
	if err != nil {
		errs = multierr.Append(errs, errors.Wrap(err, "tick_rate"))
	}
	cpu, err := parseHz(f.CPUClock)
	if err != nil {
		errs = multierr.Append(errs, errors.Wrap(err, "cpu_clock"))
	}
	if f.Tasks > core.MaxTasks {
		errs = multierr.Append(errs, errors.Errorf("tasks: %d exceeds %d", f.Tasks, core.MaxTasks))
	}
	if errs != nil {
		return core.Config{}, errs
	}

	cfg := core.Config{
		Device:      f.Device,
		Instance:    inst,
		ClockSelect: clk,
		TickRateHz:  tick,
		CPUClockHz:  cpu,
		Preemptive:  f.Preemption,
	}
	return cfg, nil
}

// Resolve validates the file and derives the hardware wiring.
func (f *File) Resolve() (core.Config, core.Wiring, error) {
	cfg, err := f.CoreConfig()
	if err != nil {
		return core.Config{}, core.Wiring{}, err
	}
	w, err := core.Resolve(cfg)
	if err != nil {
		return core.Config{}, core.Wiring{}, errors.Wrap(err, "resolve")
	}
	return cfg, w, nil
}

// parseHz accepts values like "1kHz", "32MHz" or "1000Hz" and requires a
// whole number of hertz.
func parseHz(s string) (uint32, error) {
	var f physic.Frequency
	if err := f.Set(s); err != nil {
		return 0, errors.Wrapf(err, "%q", s)
	}
	if f <= 0 {
		return 0, errors.Wrapf(core.ErrZeroFrequency, "%q", s)
	}
	if f%physic.Hertz != 0 {
		return 0, errors.Errorf("%q is not a whole number of hertz", s)
	}
	hz := int64(f / physic.Hertz)
	if hz > math.MaxUint32 {
		return 0, errors.Errorf("%q is out of range", s)
	}
	return uint32(hz), nil
}
