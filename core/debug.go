package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TimingEvent captures a tick source event for post-mortem analysis
type TimingEvent struct {
	EventType uint8
	Vector    uint8
	Tick      uint32 // Tick count when the event was recorded
	Value1    uint32
	Value2    uint32
}

// Event type codes
const (
	EvtConfigure   = 1 // Timer armed (Value1=period, Value2=clksel)
	EvtDisable     = 2 // Timer clock gated
	EvtTaskSwitch  = 3 // SelectNextTask (Value1=from, Value2=to)
	EvtSleeperWake = 4 // Delayed task became ready (Value1=task)
)

const TimingRingSize = 16

var (
	debugPrintln DebugWriter = func(s string) {}
	debugEnabled bool

	timingRing     [TimingRingSize]TimingEvent
	timingRingHead uint8
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// SetDebugEnabled enables or disables debug output
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// DebugPrintln writes a debug message using the platform-specific writer.
// Never call it from the tick interrupt.
func DebugPrintln(msg string) {
	if debugEnabled && debugPrintln != nil {
		debugPrintln(msg)
	}
}

// RecordTiming stores an event in the ring buffer. It does not allocate
// and is safe to call from the tick interrupt.
func RecordTiming(eventType, vector uint8, value1, value2 uint32) {
	idx := timingRingHead
	timingRing[idx] = TimingEvent{
		EventType: eventType,
		Vector:    vector,
		Tick:      GetTicks(),
		Value1:    value1,
		Value2:    value2,
	}
	timingRingHead = (idx + 1) % TimingRingSize
}

// TimingEvents returns the recorded events, oldest first.
func TimingEvents() []TimingEvent {
	out := make([]TimingEvent, 0, TimingRingSize)
	start := timingRingHead
	for i := uint8(0); i < TimingRingSize; i++ {
		evt := timingRing[(start+i)%TimingRingSize]
		if evt.EventType == 0 {
			continue
		}
		out = append(out, evt)
	}
	return out
}

// DumpTimingRing writes the ring buffer through the debug writer
func DumpTimingRing() {
	if debugPrintln == nil {
		return
	}
	debugPrintln("[TIMING] === Tick Ring Dump ===")
	for _, evt := range TimingEvents() {
		var name string
		switch evt.EventType {
		case EvtConfigure:
			name = "CONFIGURE"
		case EvtDisable:
			name = "DISABLE"
		case EvtTaskSwitch:
			name = "SWITCH"
		case EvtSleeperWake:
			name = "WAKE"
		default:
			name = "UNKNOWN"
		}
		debugPrintln("[TIMING] " + name +
			" vector=" + utoa(uint32(evt.Vector)) +
			" tick=" + utoa(evt.Tick) +
			" v1=" + utoa(evt.Value1) +
			" v2=" + utoa(evt.Value2))
	}
	debugPrintln("[TIMING] === End Dump ===")
}

// ClearTimingRing clears the timing buffer
func ClearTimingRing() {
	for i := range timingRing {
		timingRing[i] = TimingEvent{}
	}
	timingRingHead = 0
}
