package packet

import (
	"fmt"
	"io"
	"strings"
)

// Format writes an indented dump of the tree rooted at p, one packet per
// line.
func (p *Packet) Format(w io.Writer) error {
	var err error
	p.Walk(func(p *Packet, depth int) bool {
		if err != nil {
			return false
		}
		_, err = fmt.Fprintf(w, "%s%v\n", strings.Repeat("  ", depth), p)
		return true
	})
	return err
}

// Tree returns the Format dump as a string.
func (p *Packet) Tree() string {
	var sb strings.Builder
	_ = p.Format(&sb)
	return sb.String()
}
