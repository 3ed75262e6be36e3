package core

// ClockSelect is a timer/counter prescaler setting. Values are the
// TC_CLKSEL_*_gc patterns written to CTRLA.
type ClockSelect uint8

const (
	ClkDiv1    ClockSelect = 0x01
	ClkDiv2    ClockSelect = 0x02
	ClkDiv4    ClockSelect = 0x03
	ClkDiv8    ClockSelect = 0x04
	ClkDiv64   ClockSelect = 0x05
	ClkDiv256  ClockSelect = 0x06
	ClkDiv1024 ClockSelect = 0x07
)

var clockSelects = [...]struct {
	sel     ClockSelect
	name    string
	divider uint16
}{
	{ClkDiv1, "div1", 1},
	{ClkDiv2, "div2", 2},
	{ClkDiv4, "div4", 4},
	{ClkDiv8, "div8", 8},
	{ClkDiv64, "div64", 64},
	{ClkDiv256, "div256", 256},
	{ClkDiv1024, "div1024", 1024},
}

// Valid reports whether c is one of the supported prescalers.
func (c ClockSelect) Valid() bool {
	return c >= ClkDiv1 && c <= ClkDiv1024
}

// Divider returns the division factor, or 0 for an invalid selector.
func (c ClockSelect) Divider() uint16 {
	if !c.Valid() {
		return 0
	}
	return clockSelects[c-ClkDiv1].divider
}

func (c ClockSelect) String() string {
	if !c.Valid() {
		return "clksel(" + utoa(uint32(c)) + ")"
	}
	return clockSelects[c-ClkDiv1].name
}

// ParseClockSelect accepts "div1".."div1024" as well as the bare divider
// ("64").
func ParseClockSelect(s string) (ClockSelect, error) {
	for _, cs := range clockSelects {
		if s == cs.name || s == cs.name[3:] {
			return cs.sel, nil
		}
	}
	return 0, ErrUnsupportedClock
}
