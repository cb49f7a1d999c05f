package parsing

import "github.com/spacemeshos/bits/packet"

// parseStack parses the same grammar as parsePacket, keeping the operators
// under construction on an explicit stack instead of the call stack. The
// stack length is the nesting depth of the next packet to read.
func (p *parser) parseStack() (*packet.Packet, error) {
	var stack []*frame

	for {
		pkt, f, err := p.readHead(len(stack))
		if err != nil {
			return nil, wrapStack(stack, err)
		}

		var done *packet.Packet
		if f == nil {
			done = pkt
		} else {
			stack = append(stack, f)
		}

		// Attach finished packets to their parents, unwinding every operator
		// whose subpackets are complete.
		for {
			if done != nil {
				if len(stack) == 0 {
					return done, nil
				}
				top := stack[len(stack)-1]
				if err := top.attach(p.r, done); err != nil {
					return nil, wrapStack(stack[:len(stack)-1], err)
				}
				done = nil
			}

			top := stack[len(stack)-1]
			if !top.complete(p.r) {
				break
			}
			stack = stack[:len(stack)-1]
			done = top.finish(p.r)
		}
	}
}

// wrapStack annotates err with the subpacket position within every pending
// operator, innermost first, matching the recursive parser's errors.
func wrapStack(stack []*frame, err error) error {
	for i := len(stack) - 1; i >= 0; i-- {
		err = stack[i].wrap(err)
	}
	return err
}
