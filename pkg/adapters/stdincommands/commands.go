// Package stdincommands turns keys typed on standard input into player
// commands. Input is line-buffered by the terminal, so a key takes effect
// once Enter is pressed.
package stdincommands

import (
	"bufio"
	"io"

	"github.com/user/maskplay/pkg/ports"
)

const backlog = 16

// Input implements ports.CommandInput over an io.Reader.
type Input struct {
	ch   chan ports.Command
	done chan struct{}
}

// New starts reading r in a goroutine. The goroutine ends at EOF or on a
// read error; commands already read stay available to Poll.
func New(r io.Reader) *Input {
	in := &Input{
		ch:   make(chan ports.Command, backlog),
		done: make(chan struct{}),
	}
	go in.read(bufio.NewReader(r))
	return in
}

func (in *Input) read(r *bufio.Reader) {
	defer close(in.done)
	for {
		key, _, err := r.ReadRune()
		if err != nil {
			return
		}
		cmd := ports.CommandForKey(key)
		if cmd == ports.CommandNone {
			continue
		}
		select {
		case in.ch <- cmd:
		default:
			// Drop keys while the player is not polling.
		}
	}
}

// Poll returns the next command without blocking.
func (in *Input) Poll() ports.Command {
	select {
	case cmd := <-in.ch:
		return cmd
	default:
		return ports.CommandNone
	}
}

// Done is closed when the reader reaches the end of input.
func (in *Input) Done() <-chan struct{} {
	return in.done
}

// Ensure Input implements ports.CommandInput
var _ ports.CommandInput = (*Input)(nil)
