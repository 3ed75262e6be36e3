package core

// GetTicks returns the scheduler tick count
func GetTicks() uint32 {
	return getSystemTicks()
}

// SetTicks sets the tick count (for testing and warm restarts)
func SetTicks(ticks uint32) {
	setSystemTicks(ticks)
}

// TicksFromMS converts milliseconds to ticks at the given tick rate,
// rounding up so a delay never ends early.
func TicksFromMS(ms, tickRateHz uint32) uint32 {
	return uint32((uint64(ms)*uint64(tickRateHz) + 999) / 1000)
}

// MSFromTicks converts ticks to milliseconds at the given tick rate
func MSFromTicks(ticks, tickRateHz uint32) uint32 {
	if tickRateHz == 0 {
		return 0
	}
	return uint32(uint64(ticks) * 1000 / uint64(tickRateHz))
}

// tickReached reports whether now is at or past wake, with wraparound.
func tickReached(now, wake uint32) bool {
	return int32(now-wake) >= 0
}
