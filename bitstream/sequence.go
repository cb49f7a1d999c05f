package bitstream

import "strings"

// Sequence is an immutable, finite sequence of bits. Bits are packed
// big-endian within each byte, i.e. bit 0 is the most significant bit of the
// first byte.
type Sequence struct {
	buf    []byte
	bitLen uint
}

// DecodeHex expands every hex digit of input into its 4-bit binary form, most
// significant bit first, digits processed left to right. The resulting
// sequence is exactly 4*len(input) bits long.
func DecodeHex(input string) (*Sequence, error) {
	seq := &Sequence{
		buf:    make([]byte, (len(input)+1)/2),
		bitLen: uint(len(input)) * 4,
	}

	var n int
	for i, c := range input {
		nibble, ok := hexValue(c)
		if !ok {
			return nil, MalformedHexError{Char: c, Index: i}
		}
		if n%2 == 0 {
			seq.buf[n/2] = nibble << 4
		} else {
			seq.buf[n/2] |= nibble
		}
		n++
	}

	return seq, nil
}

func hexValue(c rune) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return byte(c - '0'), true
	case c >= 'a' && c <= 'f':
		return byte(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return byte(c-'A') + 10, true
	}
	return 0, false
}

// Len returns the number of bits in the sequence.
func (s *Sequence) Len() uint {
	return s.bitLen
}

// Bit returns the i-th bit. It panics if i is out of range.
func (s *Sequence) Bit(i uint) Bit {
	if i >= s.bitLen {
		panic("bitstream: bit index out of range")
	}
	return Bit(s.buf[i/8]&(0x80>>(i%8)) != 0)
}

// String renders the sequence as a string of '0' and '1' characters.
func (s *Sequence) String() string {
	var sb strings.Builder
	sb.Grow(int(s.bitLen))
	for i := uint(0); i < s.bitLen; i++ {
		if s.Bit(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
