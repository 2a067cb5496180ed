package session

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"hotspotbill-backend/models"
)

// Sweeper periodically revokes expired grants on the router and ages out
// pending sessions that never received a payment callback. A record that
// fails to revoke stays active and is retried on the next cycle.
type Sweeper struct {
	store      Store
	access     AccessController
	interval   time.Duration
	pendingTTL time.Duration
	log        *logrus.Logger
}

func NewSweeper(store Store, access AccessController, interval, pendingTTL time.Duration, log *logrus.Logger) *Sweeper {
	return &Sweeper{
		store:      store,
		access:     access,
		interval:   interval,
		pendingTTL: pendingTTL,
		log:        log,
	}
}

// Run sweeps once immediately, then on every tick until the context is
// cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	s.Sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("Expiry sweeper stopped")
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep runs one pass over the store.
func (s *Sweeper) Sweep(ctx context.Context) {
	now := time.Now()

	expired, err := s.store.ExpiredActive(ctx, now)
	if err != nil {
		s.log.WithError(err).Error("Failed to scan for expired sessions")
	} else {
		for i := range expired {
			s.revoke(ctx, &expired[i])
		}
	}

	stale, err := s.store.StalePending(ctx, now.Add(-s.pendingTTL))
	if err != nil {
		s.log.WithError(err).Error("Failed to scan for stale pending sessions")
		return
	}
	for i := range stale {
		rec := &stale[i]
		committed, err := s.store.MarkRevoked(ctx, rec.DeviceMAC, models.StateAwaitingPayment)
		if err != nil {
			s.log.WithError(err).WithField("mac", rec.DeviceMAC).Error("Failed to revoke stale pending session")
			continue
		}
		if committed {
			s.log.WithField("mac", rec.DeviceMAC).Info("Revoked stale pending session")
		}
	}
}

func (s *Sweeper) revoke(ctx context.Context, rec *models.GuestSession) {
	// Logout before delete: removing a credential that is still logged in can
	// leave the router's active-session table inconsistent with its user table.
	if rec.CredentialUsername != "" {
		if err := s.access.ForceLogout(ctx, rec.CredentialUsername); err != nil {
			s.log.WithError(err).WithField("mac", rec.DeviceMAC).Error("Logout failed, will retry next sweep")
			return
		}
		if err := s.access.DeleteCredential(ctx, rec.CredentialUsername); err != nil {
			s.log.WithError(err).WithField("mac", rec.DeviceMAC).Error("Credential delete failed, will retry next sweep")
			return
		}
	}

	committed, err := s.store.MarkExpired(ctx, rec.DeviceMAC)
	if err != nil {
		s.log.WithError(err).WithField("mac", rec.DeviceMAC).Error("Failed to mark session expired")
		return
	}
	if committed {
		s.log.WithFields(logrus.Fields{
			"mac":      rec.DeviceMAC,
			"username": rec.CredentialUsername,
		}).Info("Revoked expired guest session")
	}
}
