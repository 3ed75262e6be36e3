//go:build tinygo && avr

package core

import (
	"runtime/volatile"
	"unsafe"
)

// mmioBus accesses peripheral registers directly through the data space.
type mmioBus struct{}

// MMIO is the memory mapped register bus of the running device.
var MMIO RegisterBus = mmioBus{}

func reg8(addr uint16) *volatile.Register8 {
	return (*volatile.Register8)(unsafe.Pointer(uintptr(addr)))
}

func (mmioBus) Get8(addr uint16) uint8 {
	return reg8(addr).Get()
}

func (mmioBus) Set8(addr uint16, value uint8) {
	reg8(addr).Set(value)
}

func (mmioBus) Get16(addr uint16) uint16 {
	// Low byte read latches the high byte into TEMP
	lo := reg8(addr).Get()
	hi := reg8(addr + 1).Get()
	return uint16(hi)<<8 | uint16(lo)
}

func (mmioBus) Set16(addr uint16, value uint16) {
	reg8(addr).Set(uint8(value))
	reg8(addr + 1).Set(uint8(value >> 8))
}
