package router

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/go-routeros/routeros/v3"

	"hotspotbill-backend/logger"
)

const (
	dialTimeout    = 10 * time.Second
	commandTimeout = 10 * time.Second
)

// AccessControllerError wraps any failure talking to the router so callers see
// a single opaque failure mode.
type AccessControllerError struct {
	Op  string
	Err error
}

func (e *AccessControllerError) Error() string {
	return fmt.Sprintf("access controller %s: %v", e.Op, e.Err)
}

func (e *AccessControllerError) Unwrap() error {
	return e.Err
}

// Client drives the MikroTik hotspot user/session API. Every operation dials
// its own connection and tears it down on all exit paths; the router enforces
// a small API connection limit and held connections leak against it.
type Client struct {
	address  string
	username string
	password string
}

func NewClient(host, port, username, password string) *Client {
	return &Client{
		address:  net.JoinHostPort(host, port),
		username: username,
		password: password,
	}
}

func (c *Client) CreateCredential(ctx context.Context, username, secret, profile string) error {
	err := c.withConn(ctx, func(conn *routeros.Client) error {
		_, err := conn.Run("/ip/hotspot/user/add",
			"=name="+username,
			"=password="+secret,
			"=profile="+profile,
		)
		return err
	})
	if err != nil {
		return &AccessControllerError{Op: "create credential", Err: err}
	}
	logger.Logger.WithField("username", username).Info("Hotspot credential created on router")
	return nil
}

func (c *Client) ForceLogin(ctx context.Context, username, secret, deviceIP string) error {
	err := c.withConn(ctx, func(conn *routeros.Client) error {
		_, err := conn.Run("/ip/hotspot/active/login",
			"=user="+username,
			"=password="+secret,
			"=ip="+deviceIP,
		)
		return err
	})
	if err != nil {
		return &AccessControllerError{Op: "force login", Err: err}
	}
	logger.Logger.WithField("username", username).Info("Hotspot user force-logged in")
	return nil
}

// ForceLogout removes the user's active session. No active session is a no-op
// success, not an error.
func (c *Client) ForceLogout(ctx context.Context, username string) error {
	err := c.withConn(ctx, func(conn *routeros.Client) error {
		reply, err := conn.Run("/ip/hotspot/active/print", "?user="+username)
		if err != nil {
			return err
		}
		if len(reply.Re) == 0 {
			logger.Logger.WithField("username", username).Info("No active hotspot session to log out")
			return nil
		}
		_, err = conn.Run("/ip/hotspot/active/remove", "=.id="+reply.Re[0].Map[".id"])
		return err
	})
	if err != nil {
		return &AccessControllerError{Op: "force logout", Err: err}
	}
	logger.Logger.WithField("username", username).Info("Hotspot user logged out")
	return nil
}

// DeleteCredential removes the hotspot user. An already-absent credential is a
// no-op success.
func (c *Client) DeleteCredential(ctx context.Context, username string) error {
	err := c.withConn(ctx, func(conn *routeros.Client) error {
		reply, err := conn.Run("/ip/hotspot/user/print", "?name="+username)
		if err != nil {
			return err
		}
		if len(reply.Re) == 0 {
			logger.Logger.WithField("username", username).Info("No hotspot credential to delete")
			return nil
		}
		_, err = conn.Run("/ip/hotspot/user/remove", "=.id="+reply.Re[0].Map[".id"])
		return err
	})
	if err != nil {
		return &AccessControllerError{Op: "delete credential", Err: err}
	}
	logger.Logger.WithField("username", username).Info("Hotspot credential deleted")
	return nil
}

// withConn runs one operation on a freshly dialed connection, bounded by the
// caller's context and the command timeout. The RouterOS protocol has no
// per-command deadline, so on expiry the connection is closed out from under
// the pending Run to unblock it; the connection is torn down on every path.
func (c *Client) withConn(ctx context.Context, fn func(*routeros.Client) error) error {
	conn, err := routeros.DialTimeout(c.address, c.username, c.password, dialTimeout)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- fn(conn)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		conn.Close()
		<-done
		return ctx.Err()
	}
}
