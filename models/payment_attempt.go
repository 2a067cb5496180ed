package models

import (
	"time"

	"gorm.io/datatypes"
)

// PaymentAttempt is an append-only audit record of gateway callbacks and
// initiated pushes. Rows are never mutated after write.
type PaymentAttempt struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Reference      string         `gorm:"index" json:"reference"`
	PhoneReference string         `gorm:"index" json:"phone_reference"`
	Amount         float64        `json:"amount"`
	Status         string         `json:"status"`
	Payload        datatypes.JSON `json:"payload,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (PaymentAttempt) TableName() string {
	return "payment_attempts"
}
