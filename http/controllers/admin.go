package controllers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"hotspotbill-backend/http/responses"
	"hotspotbill-backend/logger"
	"hotspotbill-backend/providers/snmp"
)

// ListSessions renders what the record store holds, newest first.
func ListSessions(c *fiber.Ctx) error {
	sessions, err := Lifecycle.Sessions(c.Context())
	if err != nil {
		logger.Logger.WithError(err).Error("Failed to fetch guest session list")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Could not retrieve session list",
		})
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Guest session list retrieved successfully",
		Data:    sessions,
	})
}

func GetRouterHealth(c *fiber.Ctx) error {
	health, err := snmp.GetRouterHealth(routerHealthCfg)
	if err != nil {
		logger.Logger.WithError(err).Error("Failed to read router health over SNMP")
		return c.Status(http.StatusInternalServerError).JSON(responses.ErrorResponse{
			Error:   true,
			Message: "Router health unavailable",
		})
	}

	return c.JSON(responses.SuccessResponse{
		Error:   false,
		Message: "Router health retrieved successfully",
		Data:    health,
	})
}
