// Package packet defines the decoded form of a BITS message: a tree of
// packets, each either a literal value or an operator over subpackets.
//
// A Packet is immutable once constructed by the parser. Trees own their
// children outright and are acyclic, so they may be read concurrently
// without synchronization.
package packet

import (
	"fmt"
	"math/big"
)

// TypeID is the 3-bit packet type. TypeLiteral marks a literal; every other
// value marks an operator.
type TypeID uint8

const (
	TypeSum         TypeID = 0
	TypeProduct     TypeID = 1
	TypeMinimum     TypeID = 2
	TypeMaximum     TypeID = 3
	TypeLiteral     TypeID = 4
	TypeGreaterThan TypeID = 5
	TypeLessThan    TypeID = 6
	TypeEqualTo     TypeID = 7
)

func (id TypeID) IsLiteral() bool {
	return id == TypeLiteral
}

func (id TypeID) String() string {
	switch id {
	case TypeSum:
		return "sum"
	case TypeProduct:
		return "product"
	case TypeMinimum:
		return "minimum"
	case TypeMaximum:
		return "maximum"
	case TypeLiteral:
		return "literal"
	case TypeGreaterThan:
		return "greater-than"
	case TypeLessThan:
		return "less-than"
	case TypeEqualTo:
		return "equal-to"
	default:
		return fmt.Sprintf("type(%d)", uint8(id))
	}
}

// LengthType is the operator length-type flag.
type LengthType uint8

const (
	// LengthTotalBits prefixes the subpackets with their total size in bits (15 bits).
	LengthTotalBits LengthType = 0
	// LengthSubpacketCount prefixes the subpackets with their count (11 bits).
	LengthSubpacketCount LengthType = 1
)

func (lt LengthType) String() string {
	switch lt {
	case LengthTotalBits:
		return "total-bits"
	case LengthSubpacketCount:
		return "count"
	default:
		return fmt.Sprintf("length-type(%d)", uint8(lt))
	}
}

// Body is the payload of a packet. It is implemented only by *Literal and
// *Operator.
type Body interface {
	isBody()
}

// Literal is the body of a literal packet.
type Literal struct {
	Value *big.Int
}

// Operator is the body of an operator packet.
type Operator struct {
	LengthType LengthType
	Subpackets []*Packet
}

func (*Literal) isBody()  {}
func (*Operator) isBody() {}

// Packet is a single decoded packet.
type Packet struct {
	Version uint8
	TypeID  TypeID
	Body    Body

	// Offset is the bit position of the packet header within the message.
	Offset uint
	// Size is the number of bits the packet occupied, subpackets included.
	Size uint
}

// NewLiteral returns a literal packet. It is meant for building expected
// trees; decoded trees are produced by the parsing package.
func NewLiteral(version uint8, value int64) *Packet {
	return &Packet{
		Version: version,
		TypeID:  TypeLiteral,
		Body:    &Literal{Value: big.NewInt(value)},
	}
}

// NewOperator returns an operator packet counting its subpackets.
func NewOperator(version uint8, typeID TypeID, subpackets ...*Packet) *Packet {
	return &Packet{
		Version: version,
		TypeID:  typeID,
		Body:    &Operator{LengthType: LengthSubpacketCount, Subpackets: subpackets},
	}
}

// Children returns the subpackets of an operator, or nil for a literal.
func (p *Packet) Children() []*Packet {
	if op, ok := p.Body.(*Operator); ok {
		return op.Subpackets
	}
	return nil
}

// Walk visits p and its descendants in pre-order. depth is 0 for p. If fn
// returns false the children of the visited packet are skipped.
func (p *Packet) Walk(fn func(p *Packet, depth int) bool) {
	type entry struct {
		p     *Packet
		depth int
	}
	stack := []entry{{p, 0}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(e.p, e.depth) {
			continue
		}
		children := e.p.Children()
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, entry{children[i], e.depth + 1})
		}
	}
}

// Count returns the number of packets in the tree rooted at p.
func (p *Packet) Count() int {
	var n int
	p.Walk(func(*Packet, int) bool {
		n++
		return true
	})
	return n
}

// Depth returns the nesting depth of the tree rooted at p; a lone literal
// has depth 1.
func (p *Packet) Depth() int {
	var max int
	p.Walk(func(_ *Packet, depth int) bool {
		if depth+1 > max {
			max = depth + 1
		}
		return true
	})
	return max
}

// Equal reports whether p and other have the same structure: versions, type
// ids, literal values and subpackets, recursively. Offsets, sizes and length
// types are ignored.
func (p *Packet) Equal(other *Packet) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.Version != other.Version || p.TypeID != other.TypeID {
		return false
	}
	switch body := p.Body.(type) {
	case *Literal:
		o, ok := other.Body.(*Literal)
		return ok && body.Value.Cmp(o.Value) == 0
	case *Operator:
		o, ok := other.Body.(*Operator)
		if !ok || len(body.Subpackets) != len(o.Subpackets) {
			return false
		}
		for i := range body.Subpackets {
			if !body.Subpackets[i].Equal(o.Subpackets[i]) {
				return false
			}
		}
		return true
	default:
		return other.Body == nil
	}
}

func (p *Packet) String() string {
	switch body := p.Body.(type) {
	case *Literal:
		return fmt.Sprintf("v%d %v %v @%d", p.Version, p.TypeID, body.Value, p.Offset)
	case *Operator:
		return fmt.Sprintf("v%d %v [%d subpackets, %v] @%d",
			p.Version, p.TypeID, len(body.Subpackets), body.LengthType, p.Offset)
	default:
		return fmt.Sprintf("v%d %v <no body> @%d", p.Version, p.TypeID, p.Offset)
	}
}
