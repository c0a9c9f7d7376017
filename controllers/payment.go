package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/pawprintlabs/petcare-portal/booking"
	"github.com/pawprintlabs/petcare-portal/middleware"
	"github.com/pawprintlabs/petcare-portal/utils"
)

type PaymentController struct {
	svc        *booking.Service
	reconciler *booking.Reconciler
}

func NewPaymentController(svc *booking.Service, reconciler *booking.Reconciler) *PaymentController {
	return &PaymentController{svc: svc, reconciler: reconciler}
}

type checkoutInput struct {
	EntityKind booking.EntityKind `json:"entity_kind"`
	EntityID   uint               `json:"entity_id"`
}

// Checkout stamps a provider order reference on an unpaid appointment or
// order and returns the amount to charge.
func (ct *PaymentController) Checkout(c *fiber.Ctx) error {
	actor, ok := middleware.Actor(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(utils.ErrorResponse{Message: "User not found in context"})
	}

	input := new(checkoutInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	checkout, err := ct.svc.BeginPayment(c.UserContext(), actor, input.EntityKind, input.EntityID)
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(checkout)
}

type verifyInput struct {
	OrderID    string             `json:"order_id"`
	PaymentID  string             `json:"payment_id"`
	Signature  string             `json:"signature"`
	EntityID   uint               `json:"entity_id"`
	EntityKind booking.EntityKind `json:"entity_kind"`
}

// Verify accepts a payment proof and, if the signature checks out, marks the
// target entity paid. Replays report the already-processed conflict.
func (ct *PaymentController) Verify(c *fiber.Ctx) error {
	input := new(verifyInput)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	err := ct.reconciler.VerifyPayment(c.UserContext(), booking.PaymentProof{
		OrderID:   input.OrderID,
		PaymentID: input.PaymentID,
		Signature: input.Signature,
		EntityID:  input.EntityID,
		Kind:      input.EntityKind,
	})
	if err != nil {
		return utils.RespondError(c, err)
	}
	return c.JSON(fiber.Map{
		"verified": true,
	})
}
