package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawprintlabs/petcare-portal/booking"
	"github.com/pawprintlabs/petcare-portal/middleware"
	"github.com/pawprintlabs/petcare-portal/utils"
)

type VetController struct {
	svc *booking.Service
}

func NewVetController(svc *booking.Service) *VetController {
	return &VetController{svc: svc}
}

// List returns the directory of vets accepting bookings.
func (ct *VetController) List(c *fiber.Ctx) error {
	vets, err := ct.svc.ListVets(c.UserContext())
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(vets)
}

// Slots returns the free slot instants for a vet on a given date.
func (ct *VetController) Slots(c *fiber.Ctx) error {
	vetID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: "Invalid vet ID"})
	}
	date := c.Query("date")

	slots, err := ct.svc.ListAvailableSlots(c.UserContext(), uint(vetID), date)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"date":  date,
		"slots": slots,
		"count": len(slots),
	})
}

// Upcoming returns the logged-in vet's pending and confirmed appointments.
func (ct *VetController) Upcoming(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{Message: "User not found in context"})
	}

	filter := c.Query("filter", "month")
	limit := c.QueryInt("limit", 10)

	appts, err := ct.svc.ListVetUpcoming(c.UserContext(), actor, filter, limit)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"appointments": appts,
		"count":        len(appts),
		"filter":       filter,
	})
}

// Dashboard returns the logged-in vet's appointment counts by status.
func (ct *VetController) Dashboard(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{Message: "User not found in context"})
	}

	counts, err := ct.svc.VetDashboard(c.UserContext(), actor)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"counts": counts,
	})
}
