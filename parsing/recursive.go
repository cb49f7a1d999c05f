package parsing

import "github.com/spacemeshos/bits/packet"

// parsePacket is the recursive descent parser. depth is 0 for the root.
func (p *parser) parsePacket(depth int) (*packet.Packet, error) {
	pkt, f, err := p.readHead(depth)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return pkt, nil
	}

	for !f.complete(p.r) {
		child, err := p.parsePacket(depth + 1)
		if err != nil {
			return nil, f.wrap(err)
		}
		if err := f.attach(p.r, child); err != nil {
			return nil, err
		}
	}

	return f.finish(p.r), nil
}
