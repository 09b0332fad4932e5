package handlers

import (
	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/internal/api/presenters"
	"github.com/Denyusha/Food-Donation-updated/pkg/volunteer"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	VolunteerHandler interface {
		ClaimDonation(c *fiber.Ctx) error
		GetMyAssignments(c *fiber.Ctx) error
		UpdateLocation(c *fiber.Ctx) error
	}

	volunteerHandler struct {
		volunteerService volunteer.VolunteerService
		validator        *validator.Validate
	}
)

func NewVolunteerHandler(volunteerService volunteer.VolunteerService, validator *validator.Validate) VolunteerHandler {
	return &volunteerHandler{
		volunteerService: volunteerService,
		validator:        validator,
	}
}

func (h *volunteerHandler) ClaimDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	result, err := h.volunteerService.ClaimDonation(c.Context(), donationID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, donationErrorStatus(err), domain.MessageFailedAcceptDonation, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessAcceptDonation)
}

func (h *volunteerHandler) GetMyAssignments(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	donations, err := h.volunteerService.GetMyAssignments(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetVolunteerDonations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donations": donations,
	}, fiber.StatusOK, domain.MessageSuccessGetVolunteerDonations)
}

func (h *volunteerHandler) UpdateLocation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	req := new(domain.VolunteerLocationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDonation, err)
	}

	if err := h.volunteerService.UpdateLocation(c.Context(), donationID, userID, *req); err != nil {
		return presenters.ErrorResponse(c, donationErrorStatus(err), domain.MessageFailedUpdateDonation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateDonation)
}
