package controllers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"hotspotbill-backend/http/requests"
	"hotspotbill-backend/http/responses"
	"hotspotbill-backend/logger"
	"hotspotbill-backend/providers/payment"
	"hotspotbill-backend/session"
)

type payResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Pay triggers an STK push on the guest's phone. The actual payment outcome
// arrives later on the callback webhook.
func Pay(c *fiber.Ctx) error {
	var req requests.PayRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse pay request")
		return c.Status(http.StatusBadRequest).JSON(payResponse{
			Success: false,
			Message: "Phone number and package amount are required",
		})
	}

	if err := req.Validate(); err != nil {
		return c.Status(http.StatusBadRequest).JSON(payResponse{
			Success: false,
			Message: "Phone number and package amount are required",
		})
	}

	if _, err := Lifecycle.InitiatePayment(c.Context(), req.Phone, req.PackageAmount); err != nil {
		var ve *session.ValidationError
		if errors.As(err, &ve) {
			return c.Status(http.StatusBadRequest).JSON(payResponse{
				Success: false,
				Message: ve.Error(),
			})
		}
		logger.Logger.WithError(err).Error("Payment initiation failed")
		if errors.Is(err, payment.ErrUnreachable) {
			return c.Status(http.StatusBadGateway).JSON(payResponse{
				Success: false,
				Message: "Payment provider unreachable",
			})
		}
		return c.Status(http.StatusInternalServerError).JSON(payResponse{
			Success: false,
			Message: "Payment processing failed.",
		})
	}

	return c.JSON(payResponse{
		Success: true,
		Message: "STK push sent! Enter your M-Pesa PIN.",
	})
}

// PaymentCallback ingests the asynchronous gateway result. The provider
// retries aggressively on non-2xx, so malformed and unmatched events are
// acknowledged with 200 and only logged; a provisioning failure answers 5xx
// on purpose, because the session is still pending and the redelivered
// callback can complete the activation.
func PaymentCallback(c *fiber.Ctx) error {
	logger.Logger.Infof("Payment callback received: %s", c.Body())

	activation, err := Lifecycle.HandlePaymentCallback(c.Context(), c.Body())
	if err != nil {
		if errors.Is(err, session.ErrMalformedCallback) {
			logger.Logger.Warn("Malformed payment callback acknowledged")
			return c.JSON(responses.SuccessResponse{
				Error:   false,
				Message: "Callback acknowledged",
			})
		}
		if errors.Is(err, session.ErrStaleState) {
			logger.Logger.Warn("Callback lost activation race, acknowledged")
			return c.JSON(responses.SuccessResponse{
				Error:   false,
				Message: "Callback acknowledged",
			})
		}
		logger.Logger.WithError(err).Error("Payment callback processing failed")
		return c.JSON(responses.SuccessResponse{
			Error:   false,
			Message: "Callback acknowledged",
		})
	}

	switch activation.Outcome {
	case session.OutcomeActivated:
		return c.JSON(responses.SuccessResponse{
			Error:   false,
			Message: "Guest session activated",
			Data: fiber.Map{
				"mac":      activation.DeviceMAC,
				"username": activation.Username,
			},
		})
	case session.OutcomeProvisioningFailed:
		// Paid but not provisioned: distinct from payment failure, needs
		// manual reconciliation since there is no automatic refund path.
		// The 5xx makes the provider redeliver; the session is still pending
		// so the retry can complete the activation.
		logger.Logger.WithField("mac", activation.DeviceMAC).Error("Payment succeeded but provisioning failed")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Provisioning failed, callback will be retried",
		})
	default:
		return c.JSON(responses.SuccessResponse{
			Error:   false,
			Message: "Callback acknowledged",
		})
	}
}
