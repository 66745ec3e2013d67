package notifier

import (
	"context"
	"errors"

	"github.com/bassamadnan/triage/inquiry"
	"github.com/bassamadnan/triage/logger"
)

// ErrSkipped is returned by a channel that is not configured or has been disabled.
var ErrSkipped = errors.New("channel unavailable")

// Channel delivers a Message somewhere.
type Channel interface {
	Name() string
	Send(ctx context.Context, msg Message) error
}

// Dispatcher fans a message out to every channel. Channel failures are logged and never
// returned, so one channel can't block another or the ledger update.
type Dispatcher struct {
	channels []Channel
	log      logger.Logger
}

func NewDispatcher(log logger.Logger, channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels, log: log}
}

// Notify renders the row and sends it on every channel.
func (d *Dispatcher) Notify(ctx context.Context, row inquiry.Row, sum inquiry.Summary) {
	who := orDefault(row.Name, "(no name)")
	msg, err := NewMessage(row, sum)
	if err != nil {
		d.log.Warn("Could not build notification", "row", row.Index, "err", err)
		return
	}
	for _, ch := range d.channels {
		err := ch.Send(ctx, msg)
		switch {
		case err == nil:
			d.log.Info("Sent notification", "channel", ch.Name(), "name", who)
		case errors.Is(err, ErrSkipped):
			d.log.Info("Skipping notification", "channel", ch.Name(), "name", who, "reason", err)
		default:
			d.log.Warn("Notification failed", "channel", ch.Name(), "name", who, "row", row.Index, "err", err)
		}
	}
}
