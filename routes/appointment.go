package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawprintlabs/petcare-portal/controllers"
	"github.com/pawprintlabs/petcare-portal/middleware"
	"github.com/pawprintlabs/petcare-portal/models"
)

// SetupAppointmentRoutes configures all appointment related routes
func SetupAppointmentRoutes(app *fiber.App, appt *controllers.AppointmentController, vet *controllers.VetController) {
	group := app.Group("/appointments", middleware.Protected())
	group.Post("/", appt.Book)
	group.Get("/", appt.ListMine)
	group.Get("/:id", appt.Get)
	group.Patch("/:id/reschedule", appt.Reschedule)
	group.Post("/:id/cancel", appt.Cancel)
	group.Post("/:id/confirm", middleware.RequireRole(models.RoleVet), appt.Confirm)

	vetGroup := app.Group("/vet", middleware.Protected(), middleware.RequireRole(models.RoleVet, models.RoleAdmin))
	vetGroup.Get("/appointments/upcoming", vet.Upcoming)
	vetGroup.Get("/dashboard", vet.Dashboard)
}
