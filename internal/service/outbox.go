package service

import (
	"context"
	"log"
	"time"

	"inkwell/internal/model"
	"inkwell/internal/repository/mysql"

	"gorm.io/gorm"
)

// Sender delivers one outbox row downstream.
type Sender func(ctx context.Context, ob *model.SocialOutbox) error

// OutboxRelayer drains pending follow/unfollow events to the sender in
// batches. Rows that fail delivery are marked for retry.
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err := r.sender(ctx, &ob); err != nil {
			_ = r.repo.MarkFailed(ctx, ob.ID)
			continue
		}
		_ = r.repo.MarkSent(ctx, ob.ID)
	}
}

// LogSender is the fallback when no broker is configured.
func LogSender(ctx context.Context, ob *model.SocialOutbox) error {
	log.Printf("OUTBOX SEND type=%s user=%d author=%d payload=%s", ob.EventType, ob.UserID, ob.AuthorID, ob.Payload)
	return nil
}
