//go:build tinygo

package core

import "runtime/interrupt"

// disableInterrupts clears the global interrupt flag and returns the
// previous SREG state.
func disableInterrupts() interrupt.State {
	return interrupt.Disable()
}

// restoreInterrupts puts back the state saved by disableInterrupts.
func restoreInterrupts(state interrupt.State) {
	interrupt.Restore(state)
}
