package core

import "testing"

// seedUnrelated fills every register Configure touches with bits outside
// the relevant groups set, plus neighbours it must not touch.
func seedUnrelated(bus *SimBus, w Wiring) {
	bus.Set8(w.PRAddr, 0xFF)
	bus.Set8(w.CTRLAAddr, 0xF7)
	bus.Set8(w.CTRLBAddr, 0xF3)
	bus.Set8(w.INTCTRLAddr, 0xFE)
	bus.Set8(w.Base+0x02, 0xAA) // CTRLC
	bus.Set8(w.Base+0x07, 0x55) // INTCTRLB
	bus.Set8(w.PRAddr+1, 0x7F)  // next port's PR register
}

func TestConfigurePreservesUnrelatedBits(t *testing.T) {
	w := MustResolve(tccConfig())
	bus := NewSimBus()
	seedUnrelated(bus, w)

	Configure(bus, w)

	checks := []struct {
		name string
		addr uint16
		want uint8
	}{
		{"PRPC", w.PRAddr, 0xFA},
		{"CTRLA", w.CTRLAAddr, 0xF1},
		{"CTRLB", w.CTRLBAddr, 0xF0},
		{"INTCTRLA", w.INTCTRLAddr, 0xFD},
		{"CTRLC", w.Base + 0x02, 0xAA},
		{"INTCTRLB", w.Base + 0x07, 0x55},
		{"PRPD", w.PRAddr + 1, 0x7F},
	}
	for _, c := range checks {
		if got := bus.Get8(c.addr); got != c.want {
			t.Errorf("%s: expected 0x%02X, got 0x%02X", c.name, c.want, got)
		}
	}

	if got := bus.Get16(w.PERAddr); got != 32000 {
		t.Errorf("Expected PER 32000, got %d", got)
	}
}

func TestConfigureDiv2(t *testing.T) {
	cfg := tccConfig()
	cfg.Instance = Instance{Port: 'D', Index: 1}
	cfg.CPUClockHz = 2000000
	cfg.ClockSelect = ClkDiv2
	w := MustResolve(cfg)
	bus := NewSimBus()

	timer := Configure(bus, w)

	if got := bus.Get16(w.PERAddr); got != 2000 {
		t.Errorf("Expected PER 2000, got %d", got)
	}
	if got := bus.Get8(w.CTRLAAddr) & 0x0F; got != 0x02 {
		t.Errorf("Expected CLKSEL DIV2 (0x02), got 0x%02X", got)
	}
	if !timer.Enabled() {
		t.Error("Timer should be clocked after Configure")
	}
}

func TestConfigureIdempotent(t *testing.T) {
	w := MustResolve(tccConfig())
	bus := NewSimBus()
	seedUnrelated(bus, w)

	Configure(bus, w)
	first := *bus

	Configure(bus, w)
	if bus.mem != first.mem {
		t.Error("Second Configure changed register state")
	}
}

func TestConfigureWriteOrder(t *testing.T) {
	w := MustResolve(tccConfig())
	bus := NewSimBus()
	bus.Trace(true)

	Configure(bus, w)

	// PR, CTRLB, PERL, PERH, INTCTRLA (clear), INTCTRLA (set), CTRLA
	want := []uint16{w.PRAddr, w.CTRLBAddr, w.PERAddr, w.PERAddr + 1, w.INTCTRLAddr, w.INTCTRLAddr, w.CTRLAAddr}
	writes := bus.Writes()
	if len(writes) != len(want) {
		t.Fatalf("Expected %d writes, got %d: %v", len(want), len(writes), writes)
	}
	for i, addr := range want {
		if writes[i].Addr != addr {
			t.Errorf("Write %d: expected 0x%04X, got 0x%04X", i, addr, writes[i].Addr)
		}
	}
	if writes[len(writes)-1].Value&0x0F != uint8(ClkDiv1) {
		t.Error("Prescaler must be started by the last write")
	}
}

func TestDisableConfigureDisable(t *testing.T) {
	w := MustResolve(tccConfig())
	bus := NewSimBus()
	bus.Set8(w.PRAddr, 0x28) // USART1 and SPI reduced, TC bits clear
	bus.Set8(w.Base+0x02, 0xAA)

	Disable(bus, w)
	if got := bus.Get8(w.PRAddr); got != 0x2D {
		t.Fatalf("Expected PRPC 0x2D after Disable, got 0x%02X", got)
	}

	timer := Configure(bus, w)
	if got := bus.Get8(w.PRAddr); got != 0x28 {
		t.Errorf("Expected PRPC 0x28 after Configure, got 0x%02X", got)
	}
	configured := *bus

	timer.Disable()
	timer.Disable()

	if timer.Enabled() {
		t.Error("Timer should be disabled")
	}
	if got := bus.Get8(w.PRAddr); got != 0x2D {
		t.Errorf("Expected PRPC 0x2D after Disable, got 0x%02X", got)
	}

	// Only the PR register may differ from the configured state
	configured.mem[w.PRAddr] = bus.mem[w.PRAddr]
	if configured.mem != bus.mem {
		t.Error("Disable touched registers other than PR")
	}

	Configure(bus, w)
	if !timer.Enabled() {
		t.Error("Configure after Disable should re-arm the timer")
	}
}

func TestTickTimerAccessors(t *testing.T) {
	w := MustResolve(tccConfig())
	bus := NewSimBus()
	timer := Configure(bus, w)

	if timer.Wiring() != w {
		t.Error("Wiring mismatch")
	}

	bus.Set16(w.Base+0x20, 1234)
	if timer.Count() != 1234 {
		t.Errorf("Expected count 1234, got %d", timer.Count())
	}

	if timer.OverflowPending() {
		t.Error("No overflow expected")
	}
	bus.Set8(w.Base+0x0C, 0x01)
	if !timer.OverflowPending() {
		t.Error("Overflow flag not reported")
	}
}

func TestRegisterBusSingleton(t *testing.T) {
	defer SetRegisterBus(nil)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("Expected panic with no bus configured")
			}
		}()
		MustRegisterBus()
	}()

	bus := NewSimBus()
	SetRegisterBus(bus)
	if MustRegisterBus() != bus {
		t.Error("MustRegisterBus returned a different bus")
	}
}
