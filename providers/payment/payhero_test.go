package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotspotbill-backend/config"
	"hotspotbill-backend/logger"
)

func newTestClient(baseURL string) *Client {
	if logger.Logger == nil {
		logger.Logger = logrus.New()
	}
	logger.Logger.SetLevel(logrus.PanicLevel)

	return NewClient(&config.Config{
		PayHeroBaseURL:     baseURL,
		PayHeroAPIUsername: "api-user",
		PayHeroAPIPassword: "api-pass",
		PayHeroChannelID:   852,
		PayHeroCallbackURL: "https://portal.example.com/payment-callback",
	})
}

func TestInitiatePushSuccess(t *testing.T) {
	var got pushRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "api-user", user)
		assert.Equal(t, "api-pass", pass)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "reference": "gw-42"})
	}))
	defer srv.Close()

	ref, err := newTestClient(srv.URL).InitiatePush(context.Background(), "254700111222", 20)
	require.NoError(t, err)
	assert.Equal(t, "gw-42", ref)
	assert.Equal(t, "254700111222", got.PhoneNumber)
	assert.Equal(t, float64(20), got.Amount)
	assert.Equal(t, "m-pesa", got.Provider)
	assert.NotEmpty(t, got.ExternalReference)
	assert.Equal(t, "https://portal.example.com/payment-callback", got.CallbackURL)
}

func TestInitiatePushRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).InitiatePush(context.Background(), "254700111222", 20)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestInitiatePushGatewayReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"success": false})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).InitiatePush(context.Background(), "254700111222", 20)
	assert.ErrorIs(t, err, ErrRejected)
}

func TestInitiatePushUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := newTestClient(srv.URL).InitiatePush(context.Background(), "254700111222", 20)
	assert.ErrorIs(t, err, ErrUnreachable)
}
