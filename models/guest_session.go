package models

import (
	"time"
)

type SessionState string

const (
	StateAwaitingPayment SessionState = "awaiting_payment"
	StateActive          SessionState = "active"
	StateExpired         SessionState = "expired"
	StateRevoked         SessionState = "revoked"
)

// GuestSession tracks one device's path from portal login to granted or
// expired hotspot access. At most one row exists per device MAC.
type GuestSession struct {
	ID                  uint         `gorm:"primaryKey" json:"id"`
	DeviceMAC           string       `gorm:"column:device_mac;uniqueIndex;not null" json:"device_mac"`
	DeviceIP            string       `gorm:"column:device_ip" json:"device_ip"`
	PhoneReference      string       `gorm:"index;not null" json:"phone_reference"`
	AccessProfile       string       `gorm:"not null" json:"access_profile"`
	CredentialUsername  string       `json:"credential_username,omitempty"`
	CredentialSecret    string       `json:"-"`
	CredentialDelivered bool         `gorm:"default:false" json:"credential_delivered"`
	State               SessionState `gorm:"index;not null" json:"state"`
	CreatedAt           time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
	ExpiresAt           *time.Time   `json:"expires_at,omitempty"`
}

func (GuestSession) TableName() string {
	return "guest_sessions"
}
