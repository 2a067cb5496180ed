package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"hotspotbill-backend/config"
	"hotspotbill-backend/logger"
)

const requestTimeout = 15 * time.Second

// ErrRejected means the gateway answered with a non-success status.
var ErrRejected = errors.New("payment rejected by provider")

// ErrUnreachable means the gateway could not be reached at all.
var ErrUnreachable = errors.New("payment provider unreachable")

type pushRequest struct {
	Amount            float64 `json:"amount"`
	PhoneNumber       string  `json:"phone_number"`
	ChannelID         int     `json:"channel_id"`
	Provider          string  `json:"provider"`
	ExternalReference string  `json:"external_reference"`
	CallbackURL       string  `json:"callback_url"`
}

type pushResponse struct {
	Success   bool   `json:"success"`
	Reference string `json:"reference"`
}

// Client sends STK push requests to the PayHero gateway. The payment result
// arrives later on the callback webhook, never on this call.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	username    string
	password    string
	channelID   int
	callbackURL string
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: requestTimeout},
		baseURL:     cfg.PayHeroBaseURL,
		username:    cfg.PayHeroAPIUsername,
		password:    cfg.PayHeroAPIPassword,
		channelID:   cfg.PayHeroChannelID,
		callbackURL: cfg.PayHeroCallbackURL,
	}
}

// InitiatePush asks the gateway to prompt the phone for payment and returns
// the reference used to correlate the eventual callback.
func (c *Client) InitiatePush(ctx context.Context, phone string, amount float64) (string, error) {
	reference := uuid.NewString()
	body, err := json.Marshal(pushRequest{
		Amount:            amount,
		PhoneNumber:       phone,
		ChannelID:         c.channelID,
		Provider:          "m-pesa",
		ExternalReference: reference,
		CallbackURL:       c.callbackURL,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v2/payments", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Logger.WithError(err).Error("STK push request failed")
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		payload, _ := io.ReadAll(resp.Body)
		logger.Logger.WithField("status", resp.StatusCode).Errorf("STK push rejected: %s", payload)
		return "", fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	var parsed pushResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRejected, err)
	}
	if !parsed.Success {
		return "", fmt.Errorf("%w: gateway reported failure", ErrRejected)
	}
	if parsed.Reference != "" {
		reference = parsed.Reference
	}

	logger.Logger.WithField("phone", phone).Info("STK push sent")
	return reference, nil
}
