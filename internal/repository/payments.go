package repository

import (
	"context"

	billingapi "coursemarket-app/internal/api/billing"
	billingdomain "coursemarket-app/internal/domain/billing"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// UpsertByCheckoutID converges webhook redeliveries onto one row per
// checkout instead of duplicating payments.
func (r *PaymentRepository) UpsertByCheckoutID(ctx context.Context, p *billingdomain.Payment) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "checkout_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"stripe_session_id", "stripe_payment_intent_id", "amount", "status", "updated_at",
		}),
	}).Create(p).Error
}

func (r *PaymentRepository) FindByIntentID(ctx context.Context, intentID string) (*billingdomain.Payment, error) {
	var p billingdomain.Payment
	err := r.db.WithContext(ctx).Where("stripe_payment_intent_id = ?", intentID).First(&p).Error
	if err != nil {
		if isNotFound(err) {
			return nil, billingapi.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// UpdateStatusByIntentID is a no-op for unknown intents; intent lifecycle
// events can arrive before the session is recorded.
func (r *PaymentRepository) UpdateStatusByIntentID(ctx context.Context, intentID, status string) error {
	return r.db.WithContext(ctx).Model(&billingdomain.Payment{}).
		Where("stripe_payment_intent_id = ?", intentID).
		Update("status", status).Error
}

func (r *PaymentRepository) Save(ctx context.Context, p *billingdomain.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID uint) ([]billingdomain.Payment, error) {
	var payments []billingdomain.Payment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}
