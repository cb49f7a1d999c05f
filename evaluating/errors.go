package evaluating

import (
	"fmt"

	"github.com/spacemeshos/bits/packet"
)

// InvalidTypeIDError reports a packet whose type id disagrees with its body:
// an operator body under the literal type id, a literal body under an
// operator type id, or a type id outside the 3-bit range. Parsed trees never
// contain one.
type InvalidTypeIDError struct {
	TypeID packet.TypeID
	Offset uint
}

func (err InvalidTypeIDError) Error() string {
	return fmt.Sprintf("evaluating: invalid type id %d for packet at bit %d", uint8(err.TypeID), err.Offset)
}

// EmptySubpacketsError reports a product, minimum or maximum over zero
// subpackets.
type EmptySubpacketsError struct {
	TypeID packet.TypeID
	Offset uint
}

func (err EmptySubpacketsError) Error() string {
	return fmt.Sprintf("evaluating: %v operator at bit %d has no subpackets", err.TypeID, err.Offset)
}

// WrongArityError reports a comparison operator without exactly two
// subpackets.
type WrongArityError struct {
	TypeID packet.TypeID
	Count  int
	Offset uint
}

func (err WrongArityError) Error() string {
	return fmt.Sprintf("evaluating: %v operator at bit %d; expected: 2 subpackets, given: %d",
		err.TypeID, err.Offset, err.Count)
}
