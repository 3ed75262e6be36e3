//go:build !tinygo

package core

// ioSpaceSize covers the XMEGA I/O memory (0x0000-0x0FFF).
const ioSpaceSize = 0x1000

// RegisterWrite records one byte write made through a SimBus.
type RegisterWrite struct {
	Addr  uint16
	Value uint8
}

// SimBus is a simulated XMEGA I/O space for host builds and tests.
// Registers read back whatever was last written; no peripheral behaviour
// is modelled.
type SimBus struct {
	mem    [ioSpaceSize]uint8
	writes []RegisterWrite
	trace  bool
}

// NewSimBus returns a zeroed simulated I/O space.
func NewSimBus() *SimBus {
	return &SimBus{}
}

// Trace enables or disables recording of writes.
func (b *SimBus) Trace(enabled bool) {
	b.trace = enabled
	if !enabled {
		b.writes = nil
	}
}

// Writes returns the recorded writes in order.
func (b *SimBus) Writes() []RegisterWrite {
	return b.writes
}

func (b *SimBus) Get8(addr uint16) uint8 {
	return b.mem[addr%ioSpaceSize]
}

func (b *SimBus) Set8(addr uint16, value uint8) {
	b.mem[addr%ioSpaceSize] = value
	if b.trace {
		b.writes = append(b.writes, RegisterWrite{Addr: addr, Value: value})
	}
}

func (b *SimBus) Get16(addr uint16) uint16 {
	lo := b.Get8(addr)
	hi := b.Get8(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (b *SimBus) Set16(addr uint16, value uint16) {
	b.Set8(addr, uint8(value))
	b.Set8(addr+1, uint8(value>>8))
}
