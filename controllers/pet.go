package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawprintlabs/petcare-portal/booking"
	"github.com/pawprintlabs/petcare-portal/middleware"
	"github.com/pawprintlabs/petcare-portal/models"
	"github.com/pawprintlabs/petcare-portal/utils"
)

type PetController struct {
	svc *booking.Service
}

func NewPetController(svc *booking.Service) *PetController {
	return &PetController{svc: svc}
}

// Create registers a pet for the caller.
func (ct *PetController) Create(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{Message: "User not found in context"})
	}

	pet := new(models.Pet)
	if err := c.BodyParser(pet); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	if err := ct.svc.AddPet(c.UserContext(), actor, pet); err != nil {
		return utils.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pet)
}

// List returns the caller's pets.
func (ct *PetController) List(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{Message: "User not found in context"})
	}

	pets, err := ct.svc.ListPets(c.UserContext(), actor)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(pets)
}
