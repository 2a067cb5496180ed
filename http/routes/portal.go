package routes

import (
	"github.com/gofiber/fiber/v2"

	"hotspotbill-backend/http/controllers"
)

func PortalRoutes(app *fiber.App) {
	app.Get("/login", controllers.ShowLogin)
	app.Post("/login", controllers.SubmitLogin)
	app.Get("/credentials/:mac", controllers.ClaimCredentials)
}
