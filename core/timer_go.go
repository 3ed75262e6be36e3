//go:build !tinygo

package core

var systemTicks uint32

func getSystemTicks() uint32 {
	return systemTicks
}

func setSystemTicks(ticks uint32) {
	systemTicks = ticks
}

func incSystemTicks() uint32 {
	systemTicks++
	return systemTicks
}
