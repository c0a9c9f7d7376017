package controllers

import (
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/pawprintlabs/petcare-portal/booking"
	"github.com/pawprintlabs/petcare-portal/middleware"
	"github.com/pawprintlabs/petcare-portal/utils"
)

type AppointmentController struct {
	svc *booking.Service
}

func NewAppointmentController(svc *booking.Service) *AppointmentController {
	return &AppointmentController{svc: svc}
}

type bookInput struct {
	PetID           uint   `json:"pet_id"`
	VetID           uint   `json:"vet_id"`
	AppointmentTime string `json:"appointment_time"`
	Notes           string `json:"notes"`
}

// Book creates an appointment for one of the caller's pets.
func (ct *AppointmentController) Book(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{Message: "User not found in context"})
	}

	input := new(bookInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	at, err := time.Parse(time.RFC3339, input.AppointmentTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment time format. Please use RFC3339 format.",
		})
	}

	appt, err := ct.svc.Book(c.UserContext(), actor, booking.BookRequest{
		PetID: input.PetID,
		VetID: input.VetID,
		At:    at,
		Notes: input.Notes,
	})
	if err != nil {
		return utils.RespondError(c, err)
	}

	ct.notify(c, actor, appt.ID, "Appointment Requested", "Your appointment request has been received and is awaiting confirmation.")
	return c.Status(fiber.StatusCreated).JSON(appt)
}

// ListMine returns the caller's appointments.
func (ct *AppointmentController) ListMine(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{Message: "User not found in context"})
	}

	appts, err := ct.svc.ListOwnerAppointments(c.UserContext(), actor)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"appointments": appts,
		"count":        len(appts),
	})
}

// Get returns a single appointment visible to its owner or vet.
func (ct *AppointmentController) Get(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{Message: "User not found in context"})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: "Invalid appointment ID"})
	}

	appt, err := ct.svc.GetAppointment(c.UserContext(), actor, uint(id))
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(appt)
}

type rescheduleInput struct {
	AppointmentTime string  `json:"appointment_time"`
	Notes           *string `json:"notes"`
}

// Reschedule moves an appointment to a new slot. The appointment returns to
// pending and must be re-confirmed by the vet.
func (ct *AppointmentController) Reschedule(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{Message: "User not found in context"})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: "Invalid appointment ID"})
	}

	input := new(rescheduleInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	at, err := time.Parse(time.RFC3339, input.AppointmentTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid appointment time format. Please use RFC3339 format.",
		})
	}

	appt, err := ct.svc.Reschedule(c.UserContext(), actor, uint(id), at, input.Notes)
	if err != nil {
		return utils.RespondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message":     "Appointment rescheduled successfully",
		"appointment": appt,
	})
}

// Cancel cancels a pending or confirmed appointment.
func (ct *AppointmentController) Cancel(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{Message: "User not found in context"})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: "Invalid appointment ID"})
	}

	appt, err := ct.svc.Cancel(c.UserContext(), actor, uint(id))
	if err != nil {
		return utils.RespondError(c, err)
	}

	ct.notify(c, actor, appt.ID, "Appointment Cancelled", "Your appointment has been cancelled.")
	return c.JSON(fiber.Map{
		"message":     "Appointment cancelled successfully",
		"appointment": appt,
	})
}

// Confirm confirms a pending appointment; vet only.
func (ct *AppointmentController) Confirm(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{Message: "User not found in context"})
	}

	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{Message: "Invalid appointment ID"})
	}

	appt, err := ct.svc.Confirm(c.UserContext(), actor, uint(id))
	if err != nil {
		return utils.RespondError(c, err)
	}

	ct.notify(c, actor, appt.ID, "Appointment Confirmed", "Your appointment has been confirmed.")
	return c.JSON(fiber.Map{
		"message":     "Appointment confirmed successfully",
		"appointment": appt,
	})
}

// notify emails the pet owner after a successful write. Best effort: a mail
// failure never fails the request.
func (ct *AppointmentController) notify(c *fiber.Ctx, actor booking.ActingUser, apptID uint, subject, lead string) {
	appt, err := ct.svc.GetAppointment(c.UserContext(), actor, apptID)
	if err != nil || appt.Pet.Owner.Email == "" {
		return
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>%s</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Pet:</strong> %s</li>
			<li><strong>Vet:</strong> %s</li>
			<li><strong>Time:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>Your Pet Care Team</p>
	`, appt.Pet.Owner.Name, lead, appt.Pet.Name, appt.Vet.Name,
		appt.AppointmentTime.Format("2006-01-02 15:04:05"), appt.Status)

	go func(email string) {
		if err := sendMail(email, subject, body); err != nil {
			log.Printf("failed to send %q email for appointment %d: %v", subject, apptID, err)
		}
	}(appt.Pet.Owner.Email)
}

var sendMail = utils.SendEmail
