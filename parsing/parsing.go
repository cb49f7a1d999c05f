// Package parsing recovers the packet tree of a BITS message from its bit
// stream.
//
// Every packet starts with a 3-bit version and a 3-bit type id. A literal
// (type id 4) continues with 5-bit groups, a continuation flag followed by 4
// payload bits, most significant group first. An operator continues with a
// 1-bit length type: 0 announces a 15-bit total length, in bits, of its
// subpackets; 1 announces an 11-bit subpacket count. Parsing is a single
// forward pass; bits left after the root packet are padding and ignored.
package parsing

import (
	"fmt"
	"math/big"

	"github.com/spacemeshos/bits/bitstream"
	"github.com/spacemeshos/bits/config"
	"github.com/spacemeshos/bits/packet"
)

const (
	versionBits        = 3
	typeIDBits         = 3
	lengthTypeBits     = 1
	totalLengthBits    = 15
	subpacketCountBits = 11
	groupFlagBits      = 1
	groupPayloadBits   = 4
)

// Parse decodes the hex input and parses its root packet.
func Parse(input string, options ...OptionFunc) (*packet.Packet, error) {
	seq, err := bitstream.DecodeHex(input)
	if err != nil {
		return nil, err
	}
	return ParsePacket(bitstream.NewReader(seq), options...)
}

// ParsePacket parses a single packet, with all of its subpackets, from r.
// Bits following the packet are left unread.
func ParsePacket(r *bitstream.BitReader, options ...OptionFunc) (*packet.Packet, error) {
	opts, err := applyOpts(options...)
	if err != nil {
		return nil, err
	}

	p := &parser{r: r, opts: opts}
	var root *packet.Packet
	switch opts.strategy {
	case config.StrategyStack:
		root, err = p.parseStack()
	default:
		root, err = p.parsePacket(0)
	}
	if err != nil {
		return nil, err
	}

	opts.logger.Debug("parsed %d packets, %d trailing bits ignored", root.Count(), r.Remaining())
	return root, nil
}

type parser struct {
	r    *bitstream.BitReader
	opts *option
}

// frame is an operator whose subpackets are still being parsed.
type frame struct {
	pkt *packet.Packet
	op  *packet.Operator

	// LengthTotalBits: subpackets must occupy exactly total bits from mark.
	mark  uint
	total uint

	// LengthSubpacketCount: number of subpackets.
	count uint64
}

func (f *frame) complete(r *bitstream.BitReader) bool {
	if f.op.LengthType == packet.LengthTotalBits {
		return r.ConsumedSince(f.mark) >= f.total
	}
	return uint64(len(f.op.Subpackets)) == f.count
}

func (f *frame) attach(r *bitstream.BitReader, child *packet.Packet) error {
	f.op.Subpackets = append(f.op.Subpackets, child)
	if f.op.LengthType == packet.LengthTotalBits {
		if consumed := r.ConsumedSince(f.mark); consumed > f.total {
			return OverconsumedSubpacketsError{Expected: f.total, Actual: consumed, Offset: f.pkt.Offset}
		}
	}
	return nil
}

// wrap annotates an error raised while parsing the next subpacket of f.
func (f *frame) wrap(err error) error {
	index := len(f.op.Subpackets) + 1
	if f.op.LengthType == packet.LengthSubpacketCount {
		return fmt.Errorf("subpacket %d of %d: %w", index, f.count, err)
	}
	return fmt.Errorf("subpacket %d: %w", index, err)
}

func (f *frame) finish(r *bitstream.BitReader) *packet.Packet {
	f.pkt.Size = r.ConsumedSince(f.pkt.Offset)
	return f.pkt
}

// readHead reads a packet header followed by either the complete literal
// body, or the operator length prefix. For operators it returns the frame
// awaiting subpackets.
func (p *parser) readHead(depth int) (*packet.Packet, *frame, error) {
	offset := p.r.Position()
	if depth >= p.opts.maxDepth {
		return nil, nil, DepthExceededError{Limit: p.opts.maxDepth, Offset: offset}
	}

	version, err := p.r.ReadUint64BE(versionBits)
	if err != nil {
		return nil, nil, err
	}
	typeID, err := p.r.ReadUint64BE(typeIDBits)
	if err != nil {
		return nil, nil, err
	}

	pkt := &packet.Packet{
		Version: uint8(version),
		TypeID:  packet.TypeID(typeID),
		Offset:  offset,
	}
	p.opts.logger.Debug("packet at bit %d: version %d, %v, depth %d", offset, pkt.Version, pkt.TypeID, depth)

	if pkt.TypeID.IsLiteral() {
		value, err := readLiteral(p.r)
		if err != nil {
			return nil, nil, err
		}
		pkt.Body = &packet.Literal{Value: value}
		pkt.Size = p.r.ConsumedSince(offset)
		return pkt, nil, nil
	}

	lengthType, err := p.r.ReadUint64BE(lengthTypeBits)
	if err != nil {
		return nil, nil, err
	}
	op := &packet.Operator{LengthType: packet.LengthType(lengthType)}
	pkt.Body = op
	f := &frame{pkt: pkt, op: op}

	switch op.LengthType {
	case packet.LengthTotalBits:
		total, err := p.r.ReadUint64BE(totalLengthBits)
		if err != nil {
			return nil, nil, err
		}
		f.total = uint(total)
		f.mark = p.r.Position()
	default:
		count, err := p.r.ReadUint64BE(subpacketCountBits)
		if err != nil {
			return nil, nil, err
		}
		f.count = count
	}

	return pkt, f, nil
}

// readLiteral assembles the groups of a literal body. Groups are gathered in
// a uint64 and spilled into the big.Int every 16 groups.
func readLiteral(r *bitstream.BitReader) (*big.Int, error) {
	value := new(big.Int)
	var acc uint64
	var pending uint

	for {
		more, err := r.ReadUint64BE(groupFlagBits)
		if err != nil {
			return nil, err
		}
		group, err := r.ReadUint64BE(groupPayloadBits)
		if err != nil {
			return nil, err
		}

		acc = acc<<groupPayloadBits | group
		pending++
		if pending == 64/groupPayloadBits {
			value.Lsh(value, 64)
			value.Or(value, new(big.Int).SetUint64(acc))
			acc, pending = 0, 0
		}

		if more == 0 {
			break
		}
	}

	value.Lsh(value, pending*groupPayloadBits)
	value.Or(value, new(big.Int).SetUint64(acc))
	return value, nil
}
