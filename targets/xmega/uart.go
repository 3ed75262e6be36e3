//go:build avr && xmega

package main

import "tickport/core"

// USARTC0 register layout
const (
	usartC0Base = 0x08A0

	usartDATA      = 0x00
	usartSTATUS    = 0x01
	usartCTRLB     = 0x04
	usartCTRLC     = 0x05
	usartBAUDCTRLA = 0x06
	usartBAUDCTRLB = 0x07

	usartRXCIFbm = 0x80
	usartDREIFbm = 0x20
	usartRXENbm  = 0x10
	usartTXENbm  = 0x08
	usartCLK2Xbm = 0x04
	usartCHSIZE8 = 0x03 // async, no parity, 1 stop, 8 bit

	portCDIRSET = 0x0641
	pinTXC0bm   = 0x08 // PC3
)

// reportUART is a polled transceiver on USARTC0.
type reportUART struct {
	bus core.RegisterBus
}

func newReportUART(bus core.RegisterBus, cpuHz, baud uint32) *reportUART {
	// Double speed: BSEL = fPER / (8 * baud) - 1, rounded
	bsel := (cpuHz+4*baud)/(8*baud) - 1

	bus.Set8(portCDIRSET, pinTXC0bm)
	bus.Set8(usartC0Base+usartBAUDCTRLA, uint8(bsel))
	bus.Set8(usartC0Base+usartBAUDCTRLB, uint8(bsel>>8)&0x0F)
	bus.Set8(usartC0Base+usartCTRLC, usartCHSIZE8)
	bus.Set8(usartC0Base+usartCTRLB, usartRXENbm|usartTXENbm|usartCLK2Xbm)
	return &reportUART{bus: bus}
}

func (u *reportUART) WriteByte(b byte) error {
	for u.bus.Get8(usartC0Base+usartSTATUS)&usartDREIFbm == 0 {
	}
	u.bus.Set8(usartC0Base+usartDATA, b)
	return nil
}

// Poll returns a received byte without waiting.
func (u *reportUART) Poll() (byte, bool) {
	if u.bus.Get8(usartC0Base+usartSTATUS)&usartRXCIFbm == 0 {
		return 0, false
	}
	return u.bus.Get8(usartC0Base + usartDATA), true
}

func (u *reportUART) Write(data []byte) (int, error) {
	for _, b := range data {
		u.WriteByte(b)
	}
	return len(data), nil
}

// WriteString sends a debug line. The host monitor skips it while
// resynchronising on the next report frame.
func (u *reportUART) WriteString(s string) {
	for i := 0; i < len(s); i++ {
		u.WriteByte(s[i])
	}
	u.WriteByte('\n')
}
