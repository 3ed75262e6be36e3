//go:build !tinygo

package core

// State stands in for the saved interrupt flag on host builds.
type State uintptr

// Host builds have no interrupts; tests drive HandleTick directly.
func disableInterrupts() State {
	return 0
}

func restoreInterrupts(state State) {}
