// Package bitstream provides the bit-granularity view of a BITS message: the
// decoding of its hex transport form into an immutable bit sequence, and a
// sequential reader over that sequence, following the MSB pattern, where
// most-significant bits are read first.
package bitstream

import (
	"errors"
	"fmt"
)

type Bit bool

const (
	Zero Bit = false
	One  Bit = true
)

// MaxReadWidth is the widest single read a BitReader supports.
const MaxReadWidth = 64

var ErrInvalidWidth = fmt.Errorf("bitstream: read width must be within [0, %d]", MaxReadWidth)

var errNilSequence = errors.New("bitstream: nil sequence")

// MalformedHexError is returned for a character outside 0-9, A-F, a-f.
type MalformedHexError struct {
	Char  rune
	Index int
}

func (err MalformedHexError) Error() string {
	return fmt.Sprintf("bitstream: malformed hex; unexpected character %q at index %d", err.Char, err.Index)
}

// UnexpectedEOFError is returned when a fixed-width read requests more bits
// than remain. Position is the bit offset of the failed read.
type UnexpectedEOFError struct {
	Requested uint
	Remaining uint
	Position  uint
}

func (err UnexpectedEOFError) Error() string {
	return fmt.Sprintf("bitstream: unexpected eof at bit %d; requested: %d bits, remaining: %d",
		err.Position, err.Requested, err.Remaining)
}
