package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/aq2208/oms-api/internal/usecase"
)

// Publisher is the broker side of the relay.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
}

// OutboxRelay drains pending outbox rows to the broker on a fixed interval.
// Rows are only marked sent after a successful publish, so a broker outage
// leaves them pending for the next tick (at-least-once delivery).
type OutboxRelay struct {
	outbox   usecase.OutboxRepo
	pub      Publisher
	log      *slog.Logger
	interval time.Duration
	batch    int
}

func NewOutboxRelay(outbox usecase.OutboxRepo, pub Publisher, log *slog.Logger, interval time.Duration, batch int) *OutboxRelay {
	if batch <= 0 {
		batch = 100
	}
	return &OutboxRelay{
		outbox:   outbox,
		pub:      pub,
		log:      log,
		interval: interval,
		batch:    batch,
	}
}

// Run blocks until ctx is cancelled.
func (w *OutboxRelay) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if err := w.drain(ctx); err != nil {
				w.log.Error("outbox drain failed", "err", err)
			}
		}
	}
}

func (w *OutboxRelay) drain(ctx context.Context) error {
	recs, err := w.outbox.FetchPending(ctx, w.batch)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		return nil
	}

	sent := make([]int64, 0, len(recs))
	for _, rec := range recs {
		if err := w.pub.Publish(ctx, rec.RoutingKey, rec.Payload); err != nil {
			// keep the unsent tail pending; publish order is preserved
			w.log.Error("publish failed", "outbox_id", rec.ID, "rk", rec.RoutingKey, "err", err)
			break
		}
		sent = append(sent, rec.ID)
	}

	if len(sent) > 0 {
		if err := w.outbox.MarkSent(ctx, sent); err != nil {
			return err
		}
		w.log.Info("outbox drained", "sent", len(sent))
	}
	return nil
}
