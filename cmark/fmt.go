package cmark

import (
	"fmt"
	"io"
)

// Format writes a textual representation of the receiver, for debug
// printing the sequencer's container stack, in the style of
// event.Event/Tag's Format methods.
func (s *containerStack) Format(f fmt.State, verb rune) {
	io.WriteString(f, "containerStack{")
	for i, ev := range s.events {
		if i > 0 {
			io.WriteString(f, ", ")
		}
		if i == len(s.events)-s.outgoing {
			io.WriteString(f, "|") // marks the start of the outgoing tail
		}
		ev.Format(f, verb)
	}
	if s.outgoing == len(s.events) && s.outgoing > 0 {
		io.WriteString(f, "|")
	}
	fmt.Fprintf(f, "}(outgoing=%d)", s.outgoing)
}
