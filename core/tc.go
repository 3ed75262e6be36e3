package core

// TickTimer is the single owned handle to the timer/counter driving the
// scheduler tick. It is created once by Configure and never copied.
type TickTimer struct {
	bus    RegisterBus
	wiring Wiring
}

// Configure powers the instance, programs it for plain periodic counting
// at the resolved period, enables the overflow interrupt at low level and
// starts the prescaler. Every write is read-modify-write against the
// relevant bit group, so repeating the call with the same wiring leaves
// the same register state.
//
// Configure must run before global interrupts are enabled; it is not
// safe against a concurrently running tick handler.
func Configure(bus RegisterBus, w Wiring) *TickTimer {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	// Enable power
	bus.Set8(w.PRAddr, bus.Get8(w.PRAddr)&^w.PRMask)

	updateBits8(bus, w.CTRLBAddr, w.WGModeMask, w.WGModeNormal)

	bus.Set16(w.PERAddr, w.Period)

	// Level group is cleared before the new level is ORed in
	bus.Set8(w.INTCTRLAddr, bus.Get8(w.INTCTRLAddr)&^w.OVFLevelMask)
	bus.Set8(w.INTCTRLAddr, bus.Get8(w.INTCTRLAddr)|w.OVFLevel)

	// Starting the prescaler arms the counter
	updateBits8(bus, w.CTRLAAddr, w.ClkSelMask, uint8(w.ClkSel))

	RecordTiming(EvtConfigure, w.Vector, uint32(w.Period), uint32(w.ClkSel))
	DebugPrintln("[TICK] " + w.Instance.Name() + " armed at " + hex16(w.Base) + ", PER=" + utoa(uint32(w.Period)) +
		" clksel=" + w.ClkSel.String() + " vector=" + w.VectorName)

	return &TickTimer{bus: bus, wiring: w}
}

// Disable gates the instance clock through its power reduction bit. The
// control registers keep their values, so a later Configure re-arms the
// timer.
func Disable(bus RegisterBus, w Wiring) {
	bus.Set8(w.PRAddr, bus.Get8(w.PRAddr)|w.PRMask)
	RecordTiming(EvtDisable, w.Vector, 0, 0)
}

// Disable stops the tick source. Call with interrupts disabled.
func (t *TickTimer) Disable() {
	Disable(t.bus, t.wiring)
}

// Enabled reports whether the instance is clocked.
func (t *TickTimer) Enabled() bool {
	return t.bus.Get8(t.wiring.PRAddr)&prTCbm(t.wiring.Instance.Index) == 0
}

// Wiring returns the resolved wiring the timer was configured with.
func (t *TickTimer) Wiring() Wiring {
	return t.wiring
}

// Count returns the current counter value.
func (t *TickTimer) Count() uint16 {
	return t.bus.Get16(t.wiring.Base + tcCNT)
}

// OverflowPending reports whether the overflow flag is set. The flag is
// cleared by hardware when the overflow vector is entered.
func (t *TickTimer) OverflowPending() bool {
	return t.bus.Get8(t.wiring.Base+tcINTFLAGS)&tcOVFIFbm != 0
}
