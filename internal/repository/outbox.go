package repository

import (
	"context"
	"time"

	fulfillmentdomain "coursemarket-app/internal/domain/fulfillment"
	outboxdomain "coursemarket-app/internal/domain/outbox"

	"gorm.io/gorm"
)

// maxEmailAttempts is the point where a row stops being retried and is
// parked as FAILED for manual inspection.
const maxEmailAttempts = 5

type OutboxRepository struct {
	db *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

func (r *OutboxRepository) PendingEmails(ctx context.Context, limit int) ([]outboxdomain.EmailMessage, error) {
	var msgs []outboxdomain.EmailMessage
	err := r.db.WithContext(ctx).
		Where("status = ?", outboxdomain.StatusPending).
		Order("id").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&outboxdomain.EmailMessage{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  outboxdomain.StatusSent,
			"sent_at": at,
		}).Error
}

// MarkFailed bumps the attempt counter; the row stays PENDING (and will be
// retried on the next drain) until the attempt budget runs out.
func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&outboxdomain.EmailMessage{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"attempts": gorm.Expr("attempts + 1"),
			"status": gorm.Expr(
				"CASE WHEN attempts + 1 >= ? THEN ? ELSE status END",
				maxEmailAttempts, outboxdomain.StatusFailed,
			),
		}).Error
}

func (r *OutboxRepository) MarkCredentialSent(ctx context.Context, credentialID uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&fulfillmentdomain.EmployeeCredential{}).
		Where("id = ?", credentialID).
		Updates(map[string]interface{}{
			"is_sent": true,
			"sent_at": at,
		}).Error
}
