package routes

import (
	"github.com/gofiber/fiber/v2"

	"hotspotbill-backend/http/controllers"
)

func PaymentRoutes(app *fiber.App) {
	app.Post("/pay", controllers.Pay)
	app.Post("/payment-callback", controllers.PaymentCallback)
}
