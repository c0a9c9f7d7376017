package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawprintlabs/petcare-portal/controllers"
)

// SetupAuthRoutes configures registration and login
func SetupAuthRoutes(app *fiber.App, auth *controllers.AuthController) {
	group := app.Group("/auth")
	group.Post("/register", auth.Register)
	group.Post("/login", auth.Login)
}
