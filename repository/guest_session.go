package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotspotbill-backend/models"
)

// GuestSessionRepository implements session.Store on PostgreSQL. State
// transitions are conditional updates keyed on the prior state; a transition
// that lost a concurrent race reports false via RowsAffected instead of
// overwriting the winner.
type GuestSessionRepository struct {
	db *gorm.DB
}

func NewGuestSessionRepository(db *gorm.DB) *GuestSessionRepository {
	return &GuestSessionRepository{db: db}
}

// UpsertPending replaces any existing record for the device MAC with a fresh
// awaiting-payment one; credentials and expiry from a prior life are cleared.
func (r *GuestSessionRepository) UpsertPending(ctx context.Context, s *models.GuestSession) error {
	s.State = models.StateAwaitingPayment
	s.CredentialUsername = ""
	s.CredentialSecret = ""
	s.CredentialDelivered = false
	s.ExpiresAt = nil

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "device_mac"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"device_ip":            s.DeviceIP,
			"phone_reference":      s.PhoneReference,
			"access_profile":       s.AccessProfile,
			"credential_username":  "",
			"credential_secret":    "",
			"credential_delivered": false,
			"state":                models.StateAwaitingPayment,
			"expires_at":           nil,
			"created_at":           time.Now(),
			"updated_at":           time.Now(),
		}),
	}).Create(s).Error
}

func (r *GuestSessionRepository) LatestPendingByPhone(ctx context.Context, phone string) (*models.GuestSession, error) {
	var rec models.GuestSession
	err := r.db.WithContext(ctx).
		Where("phone_reference = ? AND state = ?", phone, models.StateAwaitingPayment).
		Order("created_at DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GuestSessionRepository) LatestActiveByPhone(ctx context.Context, phone string, now time.Time) (*models.GuestSession, error) {
	var rec models.GuestSession
	err := r.db.WithContext(ctx).
		Where("phone_reference = ? AND state = ? AND expires_at > ?", phone, models.StateActive, now).
		Order("created_at DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GuestSessionRepository) ByMAC(ctx context.Context, mac string) (*models.GuestSession, error) {
	var rec models.GuestSession
	err := r.db.WithContext(ctx).Where("device_mac = ?", mac).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *GuestSessionRepository) Activate(ctx context.Context, mac string, from models.SessionState, username, secret string, expiresAt time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.GuestSession{}).
		Where("device_mac = ? AND state = ?", mac, from).
		Updates(map[string]interface{}{
			"state":                models.StateActive,
			"credential_username":  username,
			"credential_secret":    secret,
			"credential_delivered": false,
			"expires_at":           expiresAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GuestSessionRepository) MarkExpired(ctx context.Context, mac string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.GuestSession{}).
		Where("device_mac = ? AND state = ?", mac, models.StateActive).
		Update("state", models.StateExpired)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GuestSessionRepository) MarkRevoked(ctx context.Context, mac string, from models.SessionState) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.GuestSession{}).
		Where("device_mac = ? AND state = ?", mac, from).
		Update("state", models.StateRevoked)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ClaimCredentials flips the delivered flag exactly once; the row is returned
// only to the first caller.
func (r *GuestSessionRepository) ClaimCredentials(ctx context.Context, mac string) (*models.GuestSession, error) {
	res := r.db.WithContext(ctx).Model(&models.GuestSession{}).
		Where("device_mac = ? AND state = ? AND credential_delivered = ?", mac, models.StateActive, false).
		Update("credential_delivered", true)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.ByMAC(ctx, mac)
}

func (r *GuestSessionRepository) ExpiredActive(ctx context.Context, now time.Time) ([]models.GuestSession, error) {
	var recs []models.GuestSession
	err := r.db.WithContext(ctx).
		Where("state = ? AND expires_at <= ?", models.StateActive, now).
		Find(&recs).Error
	return recs, err
}

func (r *GuestSessionRepository) StalePending(ctx context.Context, olderThan time.Time) ([]models.GuestSession, error) {
	var recs []models.GuestSession
	err := r.db.WithContext(ctx).
		Where("state = ? AND created_at <= ?", models.StateAwaitingPayment, olderThan).
		Find(&recs).Error
	return recs, err
}

func (r *GuestSessionRepository) All(ctx context.Context) ([]models.GuestSession, error) {
	var recs []models.GuestSession
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&recs).Error
	return recs, err
}
