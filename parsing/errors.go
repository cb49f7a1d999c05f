package parsing

import "fmt"

// OverconsumedSubpacketsError is returned when the subpackets of a
// length-prefixed operator occupy more bits than the operator declared.
// Offset is the bit position of the operator header.
type OverconsumedSubpacketsError struct {
	Expected uint
	Actual   uint
	Offset   uint
}

func (err OverconsumedSubpacketsError) Error() string {
	return fmt.Sprintf("parsing: overconsumed subpackets of operator at bit %d; expected: %d bits, consumed: %d",
		err.Offset, err.Expected, err.Actual)
}

// DepthExceededError is returned when packets nest deeper than the
// configured limit. Offset is the bit position of the rejected packet.
type DepthExceededError struct {
	Limit  int
	Offset uint
}

func (err DepthExceededError) Error() string {
	return fmt.Sprintf("parsing: packet at bit %d exceeds max nesting depth %d", err.Offset, err.Limit)
}
