package report

import "errors"

var ErrTruncatedVLQ = errors.New("truncated VLQ value")

// appendVLQ appends v in big-endian groups of 7 bits, setting the high
// bit on every byte except the last.
func appendVLQ(dst []byte, v uint32) []byte {
	var tmp [5]byte
	n := len(tmp) - 1
	tmp[n] = byte(v & 0x7F)
	for v >>= 7; v != 0; v >>= 7 {
		n--
		tmp[n] = byte(v&0x7F) | 0x80
	}
	return append(dst, tmp[n:]...)
}

// readVLQ decodes one value and advances data past it.
func readVLQ(data *[]byte) (uint32, error) {
	var v uint32
	for i, c := range *data {
		if i == 5 {
			break
		}
		v = v<<7 | uint32(c&0x7F)
		if c&0x80 == 0 {
			*data = (*data)[i+1:]
			return v, nil
		}
	}
	return 0, ErrTruncatedVLQ
}
