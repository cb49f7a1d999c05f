// Package evaluating computes results over a parsed packet tree: the value
// of the expression it encodes, and the sum of its version fields.
//
// Both functions only read the tree and may run concurrently on the same
// tree.
package evaluating

import (
	"fmt"
	"math/big"

	"github.com/spacemeshos/bits/packet"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
)

// Evaluate returns the value of the expression rooted at p. The result is a
// fresh big.Int the caller may modify.
func Evaluate(p *packet.Packet) (*big.Int, error) {
	switch body := p.Body.(type) {
	case *packet.Literal:
		if !p.TypeID.IsLiteral() {
			return nil, InvalidTypeIDError{TypeID: p.TypeID, Offset: p.Offset}
		}
		return new(big.Int).Set(body.Value), nil
	case *packet.Operator:
		return evaluateOperator(p, body.Subpackets)
	default:
		return nil, InvalidTypeIDError{TypeID: p.TypeID, Offset: p.Offset}
	}
}

func evaluateOperator(p *packet.Packet, subpackets []*packet.Packet) (*big.Int, error) {
	switch p.TypeID {
	case packet.TypeSum:
	case packet.TypeProduct, packet.TypeMinimum, packet.TypeMaximum:
		if len(subpackets) == 0 {
			return nil, EmptySubpacketsError{TypeID: p.TypeID, Offset: p.Offset}
		}
	case packet.TypeGreaterThan, packet.TypeLessThan, packet.TypeEqualTo:
		if len(subpackets) != 2 {
			return nil, WrongArityError{TypeID: p.TypeID, Count: len(subpackets), Offset: p.Offset}
		}
	default:
		return nil, InvalidTypeIDError{TypeID: p.TypeID, Offset: p.Offset}
	}

	values := make([]*big.Int, len(subpackets))
	for i, sub := range subpackets {
		v, err := Evaluate(sub)
		if err != nil {
			return nil, fmt.Errorf("%v operator at bit %d, subpacket %d: %w", p.TypeID, p.Offset, i+1, err)
		}
		values[i] = v
	}

	switch p.TypeID {
	case packet.TypeSum:
		result := new(big.Int)
		for _, v := range values {
			result.Add(result, v)
		}
		return result, nil
	case packet.TypeProduct:
		result := new(big.Int).Set(one)
		for _, v := range values {
			result.Mul(result, v)
		}
		return result, nil
	case packet.TypeMinimum:
		result := values[0]
		for _, v := range values[1:] {
			if v.Cmp(result) < 0 {
				result = v
			}
		}
		return result, nil
	case packet.TypeMaximum:
		result := values[0]
		for _, v := range values[1:] {
			if v.Cmp(result) > 0 {
				result = v
			}
		}
		return result, nil
	default:
		return compare(p.TypeID, values[0], values[1]), nil
	}
}

func compare(typeID packet.TypeID, x, y *big.Int) *big.Int {
	c := x.Cmp(y)
	var holds bool
	switch typeID {
	case packet.TypeGreaterThan:
		holds = c > 0
	case packet.TypeLessThan:
		holds = c < 0
	case packet.TypeEqualTo:
		holds = c == 0
	}
	if holds {
		return new(big.Int).Set(one)
	}
	return new(big.Int).Set(zero)
}

// SumVersions returns the version of p plus the versions of all of its
// descendants.
func SumVersions(p *packet.Packet) uint64 {
	var sum uint64
	p.Walk(func(p *packet.Packet, _ int) bool {
		sum += uint64(p.Version)
		return true
	})
	return sum
}
