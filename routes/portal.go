package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawprintlabs/petcare-portal/controllers"
	"github.com/pawprintlabs/petcare-portal/middleware"
)

// SetupPortalRoutes configures the vet directory and pet registry routes
func SetupPortalRoutes(app *fiber.App, pets *controllers.PetController, vets *controllers.VetController) {
	vetGroup := app.Group("/vets")
	vetGroup.Get("/", vets.List)
	vetGroup.Get("/:id/slots", vets.Slots)

	petGroup := app.Group("/pets", middleware.Protected())
	petGroup.Post("/", pets.Create)
	petGroup.Get("/", pets.List)
}
