package session

import (
	"context"
	"encoding/json"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"hotspotbill-backend/models"
)

const paymentStatusSuccess = "Success"

type callbackEnvelope struct {
	Response struct {
		Phone             string  `json:"Phone"`
		Status            string  `json:"Status"`
		Amount            float64 `json:"Amount"`
		ExternalReference string  `json:"ExternalReference"`
	} `json:"response"`
}

// Controller is the session lifecycle state machine. It reconciles the portal
// form, the payment gateway callback and the router into one consistent
// GuestSession per device.
type Controller struct {
	store    Store
	attempts AttemptStore
	access   AccessController
	payments PaymentGateway
	creds    CredentialSource
	profiles *ProfileDurations
	log      *logrus.Logger
}

func NewController(store Store, attempts AttemptStore, access AccessController, payments PaymentGateway, creds CredentialSource, profiles *ProfileDurations, log *logrus.Logger) *Controller {
	return &Controller{
		store:    store,
		attempts: attempts,
		access:   access,
		payments: payments,
		creds:    creds,
		profiles: profiles,
		log:      log,
	}
}

// RegisterPendingSession upserts an awaiting-payment record for the device,
// replacing any prior record for the same MAC. If the replaced record still
// holds a live router credential it is revoked first; a failed revoke fails
// the registration so the guest can retry once the router recovers.
func (c *Controller) RegisterPendingSession(ctx context.Context, deviceMAC, deviceIP, phone, profile string) error {
	mac, err := normalizeMAC(deviceMAC)
	if err != nil {
		return &ValidationError{Field: "mac", Reason: "missing or unresolvable MAC address"}
	}
	if phone == "" {
		return &ValidationError{Field: "phone", Reason: "phone number is required"}
	}

	prior, err := c.store.ByMAC(ctx, mac)
	if err != nil {
		return err
	}
	if prior != nil && prior.State == models.StateActive && prior.CredentialUsername != "" {
		// The replaced row is about to lose its credential reference; if the
		// router revoke fails the registration must fail too, otherwise the
		// old credential stays live with nothing left pointing at it.
		if err := c.revokeCredential(ctx, prior.CredentialUsername); err != nil {
			c.log.WithError(err).WithFields(logrus.Fields{
				"mac":      mac,
				"username": prior.CredentialUsername,
			}).Error("Failed to revoke credential of replaced session")
			return err
		}
	}

	pending := &models.GuestSession{
		DeviceMAC:      mac,
		DeviceIP:       deviceIP,
		PhoneReference: phone,
		AccessProfile:  profile,
		State:          models.StateAwaitingPayment,
	}
	if err := c.store.UpsertPending(ctx, pending); err != nil {
		return err
	}

	c.log.WithFields(logrus.Fields{
		"mac":     mac,
		"ip":      deviceIP,
		"phone":   phone,
		"profile": profile,
	}).Info("Registered pending guest session")
	return nil
}

// InitiatePayment triggers a push payment at the gateway. Session state is not
// touched; activation waits for the asynchronous callback.
func (c *Controller) InitiatePayment(ctx context.Context, phone string, amount float64) (string, error) {
	if phone == "" {
		return "", &ValidationError{Field: "phone", Reason: "phone number is required"}
	}
	if amount <= 0 {
		return "", &ValidationError{Field: "packageAmount", Reason: "amount must be positive"}
	}

	reference, err := c.payments.InitiatePush(ctx, phone, amount)
	if err != nil {
		return "", err
	}

	if recErr := c.attempts.Record(ctx, &models.PaymentAttempt{
		Reference:      reference,
		PhoneReference: phone,
		Amount:         amount,
		Status:         "initiated",
	}); recErr != nil {
		c.log.WithError(recErr).Warn("Failed to record initiated payment attempt")
	}
	return reference, nil
}

// HandlePaymentCallback processes one gateway callback. The webhook handler
// must acknowledge the provider with 2xx regardless of the outcome here; only
// a committed Activate call mutates session state, so a failed or duplicate
// callback can be retried safely.
func (c *Controller) HandlePaymentCallback(ctx context.Context, raw []byte) (*Activation, error) {
	var env callbackEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, ErrMalformedCallback
	}
	phone := env.Response.Phone
	status := env.Response.Status
	if phone == "" || status == "" {
		return nil, ErrMalformedCallback
	}

	if recErr := c.attempts.Record(ctx, &models.PaymentAttempt{
		Reference:      env.Response.ExternalReference,
		PhoneReference: phone,
		Amount:         env.Response.Amount,
		Status:         status,
		Payload:        raw,
	}); recErr != nil {
		c.log.WithError(recErr).Warn("Failed to record payment attempt")
	}

	if status != paymentStatusSuccess {
		c.log.WithFields(logrus.Fields{"phone": phone, "status": status}).Info("Payment failed, no session mutation")
		return &Activation{Outcome: OutcomePaymentFailed}, nil
	}

	// Correlation is exact-match on phone; when several pending sessions share
	// a phone reference the most recently created one wins.
	target, err := c.store.LatestPendingByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if target == nil {
		// Duplicate delivery: the session may already be active. Revoke the
		// old credential and reissue so at most one stays live per device.
		target, err = c.store.LatestActiveByPhone(ctx, phone, time.Now())
		if err != nil {
			return nil, err
		}
		if target == nil {
			c.log.WithField("phone", phone).Warn("Payment success with no matching session")
			return &Activation{Outcome: OutcomeNoMatchingSession}, nil
		}
		if target.CredentialUsername != "" {
			if err := c.revokeCredential(ctx, target.CredentialUsername); err != nil {
				c.log.WithError(err).WithField("mac", target.DeviceMAC).Error("Failed to revoke superseded credential")
				return &Activation{Outcome: OutcomeProvisioningFailed, DeviceMAC: target.DeviceMAC}, nil
			}
		}
	}

	username, secret, err := c.creds.Generate()
	if err != nil {
		return nil, err
	}

	if err := c.access.CreateCredential(ctx, username, secret, target.AccessProfile); err != nil {
		c.log.WithError(err).WithField("mac", target.DeviceMAC).Error("Credential creation failed, session stays pending")
		return &Activation{Outcome: OutcomeProvisioningFailed, DeviceMAC: target.DeviceMAC}, nil
	}
	if err := c.access.ForceLogin(ctx, username, secret, target.DeviceIP); err != nil {
		c.log.WithError(err).WithField("mac", target.DeviceMAC).Error("Force login failed, rolling back credential")
		if delErr := c.access.DeleteCredential(ctx, username); delErr != nil {
			c.log.WithError(delErr).WithField("username", username).Error("Rollback delete failed, credential may be orphaned")
		}
		return &Activation{Outcome: OutcomeProvisioningFailed, DeviceMAC: target.DeviceMAC}, nil
	}

	expiresAt := time.Now().Add(c.profiles.Duration(target.AccessProfile))
	committed, err := c.store.Activate(ctx, target.DeviceMAC, target.State, username, secret, expiresAt)
	if err != nil {
		return nil, err
	}
	if !committed {
		// Lost the race against a concurrent transition. Router operations
		// are idempotent, so tearing the fresh credential down is safe.
		c.revokeCredential(ctx, username)
		return nil, ErrStaleState
	}

	c.log.WithFields(logrus.Fields{
		"mac":      target.DeviceMAC,
		"username": username,
		"profile":  target.AccessProfile,
		"expires":  expiresAt,
	}).Info("Guest session activated")

	return &Activation{
		Outcome:   OutcomeActivated,
		DeviceMAC: target.DeviceMAC,
		Username:  username,
		Secret:    secret,
	}, nil
}

// ClaimCredentials hands out an activated session's credentials exactly once.
// Returns nil when the session is not active or the credentials were already
// claimed.
func (c *Controller) ClaimCredentials(ctx context.Context, deviceMAC string) (*models.GuestSession, error) {
	mac, err := normalizeMAC(deviceMAC)
	if err != nil {
		return nil, &ValidationError{Field: "mac", Reason: "missing or unresolvable MAC address"}
	}
	return c.store.ClaimCredentials(ctx, mac)
}

// Sessions lists every guest session for the admin surface.
func (c *Controller) Sessions(ctx context.Context) ([]models.GuestSession, error) {
	return c.store.All(ctx)
}

func (c *Controller) revokeCredential(ctx context.Context, username string) error {
	if err := c.access.ForceLogout(ctx, username); err != nil {
		return err
	}
	return c.access.DeleteCredential(ctx, username)
}

func normalizeMAC(mac string) (string, error) {
	hw, err := net.ParseMAC(mac)
	if err != nil {
		return "", err
	}
	return hw.String(), nil
}
