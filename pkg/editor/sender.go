package editor

import (
	"context"
	"errors"

	"github.com/user/maskplay/pkg/ports"
	"github.com/user/maskplay/pkg/shape"
)

// ErrNothingToSend is returned when the canvas has no closed shapes.
var ErrNothingToSend = errors.New("no closed shapes to send")

// Transport delivers one shape set to the player.
type Transport interface {
	Send(ctx context.Context, shapes []shape.NormalizedShape) error
}

// Sender pushes the closed shapes of a canvas to the player.
type Sender struct {
	canvas    *Canvas
	transport Transport
	logger    ports.Logger
}

// NewSender creates a Sender.
func NewSender(canvas *Canvas, transport Transport, logger ports.Logger) *Sender {
	return &Sender{
		canvas:    canvas,
		transport: transport,
		logger:    logger.WithComponent("editor"),
	}
}

// SendAndClear sends the closed shapes and clears the canvas once they are
// delivered. A zero-size canvas counts as having no shapes. On any failure the canvas is kept so the operator can retry.
func (s *Sender) SendAndClear(ctx context.Context) (int, error) {
	shapes, err := s.canvas.Normalized()
	if err != nil && !errors.Is(err, shape.ErrZeroCanvas) {
		return 0, err
	}
	if len(shapes) == 0 {
		s.logger.Warn("No closed shapes to send")
		return 0, ErrNothingToSend
	}

	if err := s.transport.Send(ctx, shapes); err != nil {
		return 0, err
	}

	s.logger.Info("Masks sent successfully")
	s.canvas.Clear()
	return len(shapes), nil
}
