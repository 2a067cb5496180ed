package controllers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"hotspotbill-backend/http/requests"
	"hotspotbill-backend/http/responses"
	"hotspotbill-backend/logger"
	"hotspotbill-backend/session"
)

// ShowLogin echoes back the identity the captive-portal redirect attached as
// query parameters; the portal page feeds them into the POST as hidden fields.
func ShowLogin(c *fiber.Ctx) error {
	mac := c.Query("mac")
	ip := c.Query("ip")

	logger.Logger.WithFields(map[string]interface{}{"mac": mac, "ip": ip}).Info("Received portal login request")

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Portal login",
		Data: fiber.Map{
			"mac": mac,
			"ip":  ip,
		},
	})
}

func SubmitLogin(c *fiber.Ctx) error {
	var req requests.PortalLoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Logger.WithError(err).Error("Failed to parse portal login request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Invalid input",
		})
	}

	if err := req.Validate(); err != nil {
		logger.Logger.WithError(err).Error("Validation failed for portal login request")
		return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Validation failed",
		})
	}

	if err := Lifecycle.RegisterPendingSession(c.Context(), req.MAC, req.IP, req.Phone, req.Profile); err != nil {
		var ve *session.ValidationError
		if errors.As(err, &ve) {
			return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
				Error:   true,
				Message: ve.Error(),
			})
		}
		logger.Logger.WithError(err).Error("Failed to register pending session")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not register session",
		})
	}

	return c.Status(http.StatusCreated).JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Session registered, awaiting payment",
	})
}

// ClaimCredentials returns an activated session's credentials exactly once.
func ClaimCredentials(c *fiber.Ctx) error {
	mac := c.Params("mac")

	rec, err := Lifecycle.ClaimCredentials(c.Context(), mac)
	if err != nil {
		var ve *session.ValidationError
		if errors.As(err, &ve) {
			return c.Status(http.StatusBadRequest).JSON(responses.ErrorResponse{
				Error:   true,
				Message: ve.Error(),
			})
		}
		logger.Logger.WithError(err).Error("Failed to claim credentials")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Unexpected error occurred",
		})
	}
	if rec == nil {
		return c.Status(http.StatusNotFound).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "No unclaimed credentials for this device",
		})
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Credentials issued",
		Data: fiber.Map{
			"username":   rec.CredentialUsername,
			"password":   rec.CredentialSecret,
			"mac":        rec.DeviceMAC,
			"ip":         rec.DeviceIP,
			"expires_at": rec.ExpiresAt,
		},
	})
}
