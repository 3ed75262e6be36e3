//go:build avr && xmega

// Firmware for ATxmega boards: arms the scheduler tick on the timer/counter
// chosen in zz_tickconfig.go and reports the tick count over USARTC0 until
// the host sends report.StopByte.
//
// Regenerate the configuration and build with
//
//	tickgen generate -c tick.yaml -o targets/xmega/zz_tickconfig.go
//	tinygo build -target=targets/xmega/atxmega128a1.json -o tick.hex ./targets/xmega
//
// Only the cooperative handler runs here: this target links no
// port_save_context/port_restore_context, so tickgen refuses to generate a
// preemptive configuration for it.
package main

import (
	"runtime/interrupt"

	"tickport/core"
	"tickport/report"
)

// PMIC.CTRL and its low level enable bit
const (
	pmicCTRL      = 0x00A2
	pmicLOLVLENbm = 0x01
)

var (
	sched    *core.TickScheduler
	handler  core.TickHandler
	switches uint32
)

// countingScheduler counts task switches for the status reports.
type countingScheduler struct {
	*core.TickScheduler
}

func (c countingScheduler) SelectNextTask() {
	switches++
	c.TickScheduler.SelectNextTask()
}

func main() {
	core.SetRegisterBus(core.MMIO)
	bus := core.MustRegisterBus()

	// Halts here on a configuration the device cannot run
	wiring := core.MustResolve(tickConfig)

	uart := newReportUART(bus, tickConfig.CPUClockHz, reportBaud)
	core.SetDebugWriter(uart.WriteString)
	core.SetDebugEnabled(true)

	sched = core.NewTickScheduler(schedTasks, schedQuantum)
	// Halts on a preemptive config: no context switcher on this target
	handler = core.NewTickHandler(tickConfig, countingScheduler{sched}, nil)

	interrupt.New(tickVector, func(interrupt.Interrupt) {
		handler.HandleTick()
	})

	state := interrupt.Disable()
	timer := core.Configure(bus, wiring)
	bus.Set8(pmicCTRL, bus.Get8(pmicCTRL)|pmicLOLVLENbm)
	interrupt.Restore(state)

	interval := core.TicksFromMS(reportIntervalMS, tickConfig.TickRateHz)
	report.Stream(uart, core.GetTicks, interval, func() report.Report {
		return report.Report{
			Switches: switches,
			Period:   wiring.Period,
			Vector:   wiring.Vector,
		}
	})

	state = interrupt.Disable()
	timer.Disable()
	interrupt.Restore(state)

	core.DumpTimingRing()
}
