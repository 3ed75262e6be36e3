package core

import (
	"errors"
	"fmt"
)

// Configuration errors. These are reported when a tick configuration is
// resolved, before any register is touched.
var (
	ErrUnknownDevice       = errors.New("unknown device")
	ErrUnsupportedInstance = errors.New("unsupported timer/counter instance")
	ErrUnsupportedClock    = errors.New("unsupported clock select")
	ErrZeroFrequency       = errors.New("frequency must be positive")
	ErrPeriodRange         = errors.New("period does not fit the counter")
)

// Config is the build-time description of the tick source.
type Config struct {
	Device      string
	Instance    Instance
	ClockSelect ClockSelect
	TickRateHz  uint32
	CPUClockHz  uint32
	Preemptive  bool
}

// Wiring holds every hardware fact derived from a Config: addresses, bit
// groups and the interrupt vector that will fire on each tick.
type Wiring struct {
	Instance Instance

	// PRAddr is the PRPx register gating this instance; PRMask covers the
	// instance bit and the shared HIRES bit.
	PRAddr uint16
	PRMask uint8

	Base        uint16
	CTRLAAddr   uint16
	CTRLBAddr   uint16
	INTCTRLAddr uint16
	PERAddr     uint16

	WGModeMask   uint8
	WGModeNormal uint8
	OVFLevelMask uint8
	OVFLevel     uint8
	ClkSelMask   uint8
	ClkSel       ClockSelect

	// Period is CPUClockHz / TickRateHz. The prescaler is applied by the
	// CLKSEL bits in hardware and is not folded into this value.
	Period uint16

	Vector     uint8
	VectorName string
}

// Resolve derives the hardware wiring for cfg. It performs no I/O.
func Resolve(cfg Config) (Wiring, error) {
	dev, ok := LookupDevice(cfg.Device)
	if !ok {
		return Wiring{}, fmt.Errorf("%w: %q", ErrUnknownDevice, cfg.Device)
	}
	if !dev.Has(cfg.Instance) {
		return Wiring{}, fmt.Errorf("%w: %s on %s", ErrUnsupportedInstance, cfg.Instance.Name(), dev.Name)
	}
	hw, ok := lookupHardware(cfg.Instance)
	if !ok {
		return Wiring{}, fmt.Errorf("%w: %s", ErrUnsupportedInstance, cfg.Instance.Name())
	}
	if !cfg.ClockSelect.Valid() {
		return Wiring{}, fmt.Errorf("%w: %s", ErrUnsupportedClock, cfg.ClockSelect)
	}
	if cfg.TickRateHz == 0 || cfg.CPUClockHz == 0 {
		return Wiring{}, ErrZeroFrequency
	}

	period := cfg.CPUClockHz / cfg.TickRateHz
	if period == 0 || period > CounterMax {
		return Wiring{}, fmt.Errorf("%w: %d/%d = %d", ErrPeriodRange, cfg.CPUClockHz, cfg.TickRateHz, period)
	}

	return Wiring{
		Instance:     cfg.Instance,
		PRAddr:       prGenAddr + prPortOffset(cfg.Instance.Port),
		PRMask:       prTCbm(cfg.Instance.Index) | prHIRESbm,
		Base:         hw.base,
		CTRLAAddr:    hw.base + tcCTRLA,
		CTRLBAddr:    hw.base + tcCTRLB,
		INTCTRLAddr:  hw.base + tcINTCTRLA,
		PERAddr:      hw.base + tcPER,
		WGModeMask:   tcWGMODEgm,
		WGModeNormal: tcWGMODENormalgc,
		OVFLevelMask: tcOVFINTLVLgm,
		OVFLevel:     1 << tcOVFINTLVLgp,
		ClkSelMask:   tcCLKSELgm,
		ClkSel:       cfg.ClockSelect,
		Period:       uint16(period),
		Vector:       hw.vector,
		VectorName:   cfg.Instance.Name() + "_OVF_vect",
	}, nil
}

// MustResolve is like Resolve but panics on a configuration error. Targets
// use it so a bad configuration halts at boot instead of arming the wrong
// peripheral.
func MustResolve(cfg Config) Wiring {
	w, err := Resolve(cfg)
	if err != nil {
		panic("tick config: " + err.Error())
	}
	return w
}
