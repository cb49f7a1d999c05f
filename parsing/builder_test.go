package parsing

import (
	"strings"
)

// bitBuilder assembles test messages bit by bit, most significant bit first.
type bitBuilder struct {
	bits []byte
}

func (b *bitBuilder) write(val uint64, numBits int) *bitBuilder {
	for i := numBits - 1; i >= 0; i-- {
		b.bits = append(b.bits, byte(val>>uint(i))&1)
	}
	return b
}

func (b *bitBuilder) header(version, typeID uint64) *bitBuilder {
	return b.write(version, versionBits).write(typeID, typeIDBits)
}

// literal writes a literal packet with the given 4-bit groups.
func (b *bitBuilder) literal(version uint64, groups ...uint64) *bitBuilder {
	b.header(version, 4)
	for i, g := range groups {
		more := uint64(1)
		if i == len(groups)-1 {
			more = 0
		}
		b.write(more, groupFlagBits).write(g, groupPayloadBits)
	}
	return b
}

func (b *bitBuilder) countOperator(version, typeID, count uint64) *bitBuilder {
	return b.header(version, typeID).write(1, lengthTypeBits).write(count, subpacketCountBits)
}

func (b *bitBuilder) lengthOperator(version, typeID, total uint64) *bitBuilder {
	return b.header(version, typeID).write(0, lengthTypeBits).write(total, totalLengthBits)
}

func (b *bitBuilder) len() int {
	return len(b.bits)
}

// hex pads the message with zeros to a whole number of hex digits.
func (b *bitBuilder) hex() string {
	const digits = "0123456789ABCDEF"
	var sb strings.Builder
	for i := 0; i < len(b.bits); i += 4 {
		var nibble byte
		for j := i; j < i+4; j++ {
			nibble <<= 1
			if j < len(b.bits) {
				nibble |= b.bits[j]
			}
		}
		sb.WriteByte(digits[nibble])
	}
	return sb.String()
}
