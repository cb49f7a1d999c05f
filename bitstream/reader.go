package bitstream

// BitReader reads bits sequentially from a Sequence.
//
// A BitReader is a single cursor: it must be owned by one call chain at a
// time and is not safe for concurrent use. The underlying Sequence is never
// modified.
type BitReader struct {
	seq *Sequence
	pos uint
}

// NewReader returns a new instance of BitReader positioned at the first bit.
func NewReader(seq *Sequence) *BitReader {
	if seq == nil {
		panic(errNilSequence)
	}
	return &BitReader{seq: seq}
}

// Position returns the index of the next unread bit. It can be recorded as a
// mark and later passed to ConsumedSince.
func (br *BitReader) Position() uint {
	return br.pos
}

// Remaining returns the number of unread bits.
func (br *BitReader) Remaining() uint {
	return br.seq.Len() - br.pos
}

// ConsumedSince returns how many bits have been read since mark.
func (br *BitReader) ConsumedSince(mark uint) uint {
	return br.pos - mark
}

// ReadBit reads the next single bit.
func (br *BitReader) ReadBit() (Bit, error) {
	if br.Remaining() == 0 {
		return Zero, UnexpectedEOFError{Requested: 1, Remaining: 0, Position: br.pos}
	}
	bit := br.seq.Bit(br.pos)
	br.pos++
	return bit, nil
}

// ReadUint64BE reads the next numBits as an unsigned integer in Big-Endian
// order. On failure the reader does not advance; a short stream is never
// padded with zeros.
func (br *BitReader) ReadUint64BE(numBits int) (uint64, error) {
	if numBits < 0 || numBits > MaxReadWidth {
		return 0, ErrInvalidWidth
	}
	if remaining := br.Remaining(); uint(numBits) > remaining {
		return 0, UnexpectedEOFError{Requested: uint(numBits), Remaining: remaining, Position: br.pos}
	}

	var val uint64
	for i := 0; i < numBits; i++ {
		val <<= 1
		if br.seq.Bit(br.pos) {
			val |= 1
		}
		br.pos++
	}
	return val, nil
}
