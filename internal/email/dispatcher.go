package email

import (
	"context"
	"log"
	"time"

	outboxdomain "coursemarket-app/internal/domain/outbox"
)

// Store is the outbox slice the dispatcher drains.
type Store interface {
	PendingEmails(ctx context.Context, limit int) ([]outboxdomain.EmailMessage, error)
	MarkSent(ctx context.Context, id uint, at time.Time) error
	MarkFailed(ctx context.Context, id uint) error
	MarkCredentialSent(ctx context.Context, credentialID uint, at time.Time) error
}

const drainBatchSize = 50

// Dispatcher drains pending email rows at least once each interval, or
// sooner when nudged via Notify after a commit. Each row is delivered
// individually so one bad address never blocks the rest of a batch.
type Dispatcher struct {
	store    Store
	sender   Sender
	interval time.Duration
	wake     chan struct{}
}

func NewDispatcher(store Store, sender Sender, interval time.Duration) *Dispatcher {
	return &Dispatcher{
		store:    store,
		sender:   sender,
		interval: interval,
		wake:     make(chan struct{}, 1),
	}
}

// Notify wakes the dispatcher without waiting for the next tick. Safe to
// call from any goroutine; a pending wake is coalesced.
func (d *Dispatcher) Notify() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-d.wake:
		}
		d.Drain(ctx)
	}
}

// Drain performs one delivery pass over the pending rows.
func (d *Dispatcher) Drain(ctx context.Context) {
	msgs, err := d.store.PendingEmails(ctx, drainBatchSize)
	if err != nil {
		log.Println("outbox: failed to load pending emails:", err)
		return
	}

	for _, msg := range msgs {
		if err := d.sender.Send(msg.Subject, msg.Recipient, msg.Body); err != nil {
			log.Printf("outbox: delivery of message %d to %s failed: %v", msg.ID, msg.Recipient, err)
			if err := d.store.MarkFailed(ctx, msg.ID); err != nil {
				log.Printf("outbox: failed to mark message %d: %v", msg.ID, err)
			}
			continue
		}

		now := time.Now()
		if err := d.store.MarkSent(ctx, msg.ID, now); err != nil {
			log.Printf("outbox: failed to mark message %d sent: %v", msg.ID, err)
			continue
		}
		if msg.CredentialID != nil {
			if err := d.store.MarkCredentialSent(ctx, *msg.CredentialID, now); err != nil {
				log.Printf("outbox: failed to flag credential %d sent: %v", *msg.CredentialID, err)
			}
		}
	}
}
