package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawprintlabs/petcare-portal/controllers"
	"github.com/pawprintlabs/petcare-portal/middleware"
)

// SetupPaymentRoutes configures checkout and payment verification
func SetupPaymentRoutes(app *fiber.App, payments *controllers.PaymentController) {
	group := app.Group("/payments")
	group.Post("/checkout", middleware.Protected(), payments.Checkout)
	// Verify is reachable without auth: the payment provider webhook posts
	// here, and the signature is the proof of authenticity.
	group.Post("/verify", payments.Verify)
}
