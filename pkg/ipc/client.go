package ipc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/user/maskplay/pkg/ports"
	"github.com/user/maskplay/pkg/shape"
)

// ErrConnection is returned when the player cannot be reached or the
// connection breaks during the write. Send never retries.
var ErrConnection = errors.New("ipc: connection failed")

// DefaultDialTimeout bounds the connect phase of Send.
const DefaultDialTimeout = 3 * time.Second

// Client sends shape sets to a player, one connection per send.
type Client struct {
	addr        string
	dialTimeout time.Duration
	logger      ports.Logger
}

// NewClient creates a Client for addr.
func NewClient(addr string, logger ports.Logger) *Client {
	return &Client{
		addr:        addr,
		dialTimeout: DefaultDialTimeout,
		logger:      logger.WithComponent("ipc"),
	}
}

// Send encodes the closed shapes and delivers them in one exchange.
// Serialization failures wrap shape.ErrSerialization, transport failures
// wrap ErrConnection.
func (c *Client) Send(ctx context.Context, shapes []shape.NormalizedShape) error {
	data, err := shape.Encode(shapes)
	if err != nil {
		return err
	}
	return c.SendPayload(ctx, data)
}

// SendPayload delivers raw bytes as one message.
func (c *Client) SendPayload(ctx context.Context, payload []byte) error {
	dialer := net.Dialer{Timeout: c.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer conn.Close()

	if _, err := conn.Write(payload); err != nil {
		return fmt.Errorf("%w: write: %v", ErrConnection, err)
	}

	// Half-close marks the end of the message for the receiver.
	if tcp, ok := conn.(*net.TCPConn); ok {
		if err := tcp.CloseWrite(); err != nil {
			return fmt.Errorf("%w: close write: %v", ErrConnection, err)
		}
	}

	c.logger.Debug("Sent %d bytes to %s", len(payload), c.addr)
	return nil
}
