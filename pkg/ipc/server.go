package ipc

import (
	"errors"
	"fmt"
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/user/maskplay/pkg/ports"
	"github.com/user/maskplay/pkg/shape"
)

// acceptBackoff is the pause after a failed Accept before retrying.
const acceptBackoff = 50 * time.Millisecond

// Sink receives fully decoded shape sets. Push must not block.
type Sink interface {
	Push(shapes []shape.NormalizedShape)
}

// State is the server's position in its accept cycle.
type State int32

const (
	StateListening State = iota
	StateAccepting
	StateReceiving
	StateDecoded
	StateClosed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateListening:
		return "listening"
	case StateAccepting:
		return "accepting"
	case StateReceiving:
		return "receiving"
	case StateDecoded:
		return "decoded"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Stats counts connection outcomes.
type Stats struct {
	Accepted  uint64
	Empty     uint64
	Rejected  uint64
	Delivered uint64
}

// Server accepts one connection at a time and pushes each decoded shape set
// to its Sink. It owns the listening socket.
type Server struct {
	listener net.Listener
	sink     Sink
	logger   ports.Logger

	state  atomic.Int32
	closed atomic.Bool

	accepted  atomic.Uint64
	empty     atomic.Uint64
	rejected  atomic.Uint64
	delivered atomic.Uint64
}

// Listen binds addr. A bound port is a startup failure and is returned as is.
func Listen(addr string, sink Sink, logger ports.Logger) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}

	s := &Server{
		listener: listener,
		sink:     sink,
		logger:   logger.WithComponent("ipc"),
	}
	s.logger.Info("Listening for shapes on %s", listener.Addr())
	return s, nil
}

// Addr returns the bound address.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// State returns the current accept-cycle state.
func (s *Server) State() State {
	return State(s.state.Load())
}

// Stats returns connection counters.
func (s *Server) Stats() Stats {
	return Stats{
		Accepted:  s.accepted.Load(),
		Empty:     s.empty.Load(),
		Rejected:  s.rejected.Load(),
		Delivered: s.delivered.Load(),
	}
}

// Serve runs the accept loop until Close. Each connection is received,
// decoded and delivered before the next one is accepted. Decode and read
// failures are logged and never end the loop.
func (s *Server) Serve() error {
	for {
		s.setState(StateListening)

		conn, err := s.listener.Accept()
		if err != nil {
			if s.closed.Load() || errors.Is(err, net.ErrClosed) {
				s.setState(StateClosed)
				return nil
			}
			s.logger.Warn("Accept failed: %v", err)
			time.Sleep(acceptBackoff)
			continue
		}

		s.setState(StateAccepting)
		s.accepted.Add(1)
		s.handle(conn)
	}
}

// Close stops the accept loop and releases the socket.
func (s *Server) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.listener.Close()
}

// handle reads one message to end of stream and delivers it.
func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	id := uuid.NewString()
	s.logger.Debug("Connection %s from %s", id, conn.RemoteAddr())

	s.setState(StateReceiving)
	data, err := io.ReadAll(conn)
	if err != nil {
		s.rejected.Add(1)
		s.logger.Warn("Connection %s: read failed: %v", id, err)
		return
	}

	if len(data) == 0 {
		s.empty.Add(1)
		s.logger.Debug("Connection %s: empty message ignored", id)
		return
	}

	shapes, err := shape.Decode(data)
	if err != nil {
		s.rejected.Add(1)
		s.logger.Warn("Connection %s: rejected %d bytes: %v", id, len(data), err)
		return
	}

	s.setState(StateDecoded)
	s.sink.Push(shapes)
	s.delivered.Add(1)
	s.logger.Info("Received %d shapes (message %s)", len(shapes), id)
}

func (s *Server) setState(st State) {
	s.state.Store(int32(st))
}
