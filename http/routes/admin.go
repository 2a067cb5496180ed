package routes

import (
	"github.com/gofiber/fiber/v2"

	"hotspotbill-backend/http/controllers"
	"hotspotbill-backend/http/middleware"
)

func AdminRoutes(app *fiber.App) {
	admin := app.Group("admin", middleware.JWTMiddleware())

	admin.Get("/sessions", controllers.ListSessions)
	admin.Get("/router/health", controllers.GetRouterHealth)
}
