package core

// RegisterBus gives byte and word access to the XMEGA I/O data space.
// Addresses are data space addresses as listed in the device datasheet
// (PR at 0x0070, TCC0 at 0x0800, ...).
type RegisterBus interface {
	Get8(addr uint16) uint8
	Set8(addr uint16, value uint8)

	// Get16 and Set16 access a 16-bit register pair. XMEGA latches the
	// high byte through the peripheral TEMP register, so implementations
	// must access the low byte first.
	Get16(addr uint16) uint16
	Set16(addr uint16, value uint16)
}

// Global singleton used by core code.
var registerBus RegisterBus

// SetRegisterBus is called by target-specific code to register its bus.
func SetRegisterBus(b RegisterBus) {
	registerBus = b
}

// MustRegisterBus returns the configured bus or panics if missing.
func MustRegisterBus() RegisterBus {
	if registerBus == nil {
		panic("register bus not configured")
	}
	return registerBus
}

// updateBits8 clears mask in the register at addr and ORs in bits.
// Bits outside mask are preserved.
func updateBits8(bus RegisterBus, addr uint16, mask, bits uint8) {
	bus.Set8(addr, (bus.Get8(addr)&^mask)|(bits&mask))
}
