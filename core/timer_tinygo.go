//go:build tinygo

package core

import "sync/atomic"

// AVR has no 32-bit atomic load; TinyGo lowers these to short critical
// sections so task code never sees a torn tick count.
var systemTicksValue uint32

func getSystemTicks() uint32 {
	return atomic.LoadUint32(&systemTicksValue)
}

func setSystemTicks(ticks uint32) {
	atomic.StoreUint32(&systemTicksValue, ticks)
}

func incSystemTicks() uint32 {
	return atomic.AddUint32(&systemTicksValue, 1)
}
