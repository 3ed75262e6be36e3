package core

// Power reduction registers. PRGEN is followed by one PRPx register per
// port, PRPA at PRGEN+1 through PRPF at PRGEN+6.
const (
	prGenAddr = 0x0070

	prTC0bm   = 0x01 // PR_TC0_bm
	prTC1bm   = 0x02 // PR_TC1_bm
	prHIRESbm = 0x04 // PR_HIRES_bm
)

// Timer/counter register offsets from the instance base. TC0 and TC1
// share the layout up to PER; TC1 simply lacks CCC/CCD.
const (
	tcCTRLA    = 0x00
	tcCTRLB    = 0x01
	tcINTCTRLA = 0x06
	tcINTFLAGS = 0x0C
	tcCNT      = 0x20
	tcPER      = 0x26
)

// Bit groups touched by the tick configuration.
const (
	tcWGMODEgm       = 0x07 // TCn_WGMODE_gm
	tcWGMODENormalgc = 0x00 // TC_WGMODE_NORMAL_gc
	tcOVFINTLVLgm    = 0x03 // TCn_OVFINTLVL_gm
	tcOVFINTLVLgp    = 0    // TCn_OVFINTLVL_gp
	tcCLKSELgm       = 0x0F // TCn_CLKSEL_gm
	tcOVFIFbm        = 0x01 // TCn_OVFIF_bm
)

// CounterMax is the largest period the 16-bit counter can hold.
const CounterMax = 0xFFFF

// Instance names a timer/counter by port letter and index, e.g. TCC0 is
// Instance{Port: 'C', Index: 0}.
type Instance struct {
	Port  byte
	Index uint8
}

// Name returns the datasheet name of the instance.
func (i Instance) Name() string {
	return "TC" + string([]byte{i.Port, '0' + i.Index})
}

func (i Instance) String() string {
	return i.Name()
}

// ParseInstance parses names like "TCC0" or "tcd1".
func ParseInstance(s string) (Instance, error) {
	if len(s) != 4 {
		return Instance{}, ErrUnsupportedInstance
	}
	b := []byte(s)
	for i := 0; i < 3; i++ {
		if b[i] >= 'a' && b[i] <= 'z' {
			b[i] -= 'a' - 'A'
		}
	}
	if b[0] != 'T' || b[1] != 'C' || b[2] < 'A' || b[2] > 'F' || (b[3] != '0' && b[3] != '1') {
		return Instance{}, ErrUnsupportedInstance
	}
	return Instance{Port: b[2], Index: b[3] - '0'}, nil
}

// tcHardware is the fixed wiring of one timer/counter on the XMEGA A
// family. Vector numbers are the _OVF_vect_num values from the device
// headers; the A family keeps one numbering across parts.
type tcHardware struct {
	instance Instance
	base     uint16
	vector   uint8
}

var tcCatalog = []tcHardware{
	{Instance{'C', 0}, 0x0800, 14},
	{Instance{'C', 1}, 0x0840, 20},
	{Instance{'D', 0}, 0x0900, 77},
	{Instance{'D', 1}, 0x0940, 83},
	{Instance{'E', 0}, 0x0A00, 47},
	{Instance{'E', 1}, 0x0A40, 53},
	{Instance{'F', 0}, 0x0B00, 108},
	{Instance{'F', 1}, 0x0B40, 114},
}

func lookupHardware(inst Instance) (tcHardware, bool) {
	for _, hw := range tcCatalog {
		if hw.instance == inst {
			return hw, true
		}
	}
	return tcHardware{}, false
}

// Device lists the timer/counters physically present on one part.
type Device struct {
	Name   string
	Timers []Instance
}

// Has reports whether the device carries the instance.
func (d Device) Has(inst Instance) bool {
	for _, t := range d.Timers {
		if t == inst {
			return true
		}
	}
	return false
}

var devices = []Device{
	{
		Name: "atxmega128a1",
		Timers: []Instance{
			{'C', 0}, {'C', 1}, {'D', 0}, {'D', 1},
			{'E', 0}, {'E', 1}, {'F', 0}, {'F', 1},
		},
	},
	{
		Name: "atxmega32a4u",
		Timers: []Instance{
			{'C', 0}, {'C', 1}, {'D', 0}, {'D', 1}, {'E', 0},
		},
	},
}

// LookupDevice finds a supported device by name.
func LookupDevice(name string) (Device, bool) {
	for _, d := range devices {
		if d.Name == name {
			return d, true
		}
	}
	return Device{}, false
}

// Devices returns all supported devices.
func Devices() []Device {
	return devices
}

// prPortOffset maps a port letter to its PRPx offset from PRGEN.
func prPortOffset(port byte) uint16 {
	return uint16(port-'A') + 1
}

func prTCbm(index uint8) uint8 {
	if index == 0 {
		return prTC0bm
	}
	return prTC1bm
}
