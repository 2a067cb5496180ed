package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotspotbill-backend/models"
)

// Outcome classifies the result of processing one payment callback.
type Outcome string

const (
	OutcomeActivated          Outcome = "activated"
	OutcomePaymentFailed      Outcome = "payment_failed"
	OutcomeNoMatchingSession  Outcome = "no_matching_session"
	OutcomeProvisioningFailed Outcome = "provisioning_failed"
)

// Activation is handed back to whatever surfaces credentials to the guest.
// The secret is exposed here once; afterwards it can only be claimed through
// the one-time credential endpoint.
type Activation struct {
	Outcome   Outcome
	DeviceMAC string
	Username  string
	Secret    string
}

// ErrMalformedCallback marks a callback body missing required fields. The
// webhook handler still acknowledges these with 2xx per the provider contract;
// the session stays unresolved.
var ErrMalformedCallback = errors.New("malformed payment callback")

// ErrStaleState is returned by conditional store writes when a concurrent
// transition already moved the record out of the expected state.
var ErrStaleState = errors.New("session state changed concurrently")

// ValidationError covers user-correctable input problems, surfaced as 4xx.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Store is the durable guest-session table. Activate and MarkExpired are
// conditional writes keyed on the record's prior state: they report false
// without error when the transition lost a race, so the caller can abort.
type Store interface {
	UpsertPending(ctx context.Context, s *models.GuestSession) error
	LatestPendingByPhone(ctx context.Context, phone string) (*models.GuestSession, error)
	LatestActiveByPhone(ctx context.Context, phone string, now time.Time) (*models.GuestSession, error)
	ByMAC(ctx context.Context, mac string) (*models.GuestSession, error)
	Activate(ctx context.Context, mac string, from models.SessionState, username, secret string, expiresAt time.Time) (bool, error)
	MarkExpired(ctx context.Context, mac string) (bool, error)
	MarkRevoked(ctx context.Context, mac string, from models.SessionState) (bool, error)
	ClaimCredentials(ctx context.Context, mac string) (*models.GuestSession, error)
	ExpiredActive(ctx context.Context, now time.Time) ([]models.GuestSession, error)
	StalePending(ctx context.Context, olderThan time.Time) ([]models.GuestSession, error)
	All(ctx context.Context) ([]models.GuestSession, error)
}

// AttemptStore records payment attempts for audit; append-only.
type AttemptStore interface {
	Record(ctx context.Context, a *models.PaymentAttempt) error
}

// AccessController is the router's user/session API. ForceLogout and
// DeleteCredential succeed as no-ops when the target is already absent.
type AccessController interface {
	CreateCredential(ctx context.Context, username, secret, profile string) error
	ForceLogin(ctx context.Context, username, secret, deviceIP string) error
	ForceLogout(ctx context.Context, username string) error
	DeleteCredential(ctx context.Context, username string) error
}

// PaymentGateway initiates a push payment and returns the gateway reference.
type PaymentGateway interface {
	InitiatePush(ctx context.Context, phone string, amount float64) (string, error)
}

// CredentialSource generates hotspot credential pairs.
type CredentialSource interface {
	Generate() (username, secret string, err error)
}
