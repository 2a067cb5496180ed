package repository

import (
	"context"

	"gorm.io/gorm"

	"hotspotbill-backend/models"
)

// PaymentAttemptRepository implements session.AttemptStore; rows are only ever
// appended.
type PaymentAttemptRepository struct {
	db *gorm.DB
}

func NewPaymentAttemptRepository(db *gorm.DB) *PaymentAttemptRepository {
	return &PaymentAttemptRepository{db: db}
}

func (r *PaymentAttemptRepository) Record(ctx context.Context, a *models.PaymentAttempt) error {
	return r.db.WithContext(ctx).Create(a).Error
}
