package handlers

import (
	"errors"
	"strconv"

	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/internal/api/presenters"
	"github.com/Denyusha/Food-Donation-updated/pkg/donation"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	DonationHandler interface {
		CreateDonation(c *fiber.Ctx) error
		UploadDonationImage(c *fiber.Ctx) error
		ListDonations(c *fiber.Ctx) error
		GetDonationByID(c *fiber.Ctx) error
		GetMyDonations(c *fiber.Ctx) error
		UpdateDonation(c *fiber.Ctx) error
		AcceptDonation(c *fiber.Ctx) error
		CompleteDonation(c *fiber.Ctx) error
		CancelDonation(c *fiber.Ctx) error
		SubmitFeedback(c *fiber.Ctx) error
		GetTracking(c *fiber.Ctx) error
		GetDonationStatistics(c *fiber.Ctx) error
	}

	donationHandler struct {
		donationService donation.DonationService
		validator       *validator.Validate
	}
)

func NewDonationHandler(donationService donation.DonationService, validator *validator.Validate) DonationHandler {
	return &donationHandler{
		donationService: donationService,
		validator:       validator,
	}
}

// donationErrorStatus maps the service error taxonomy onto HTTP statuses:
// missing resources are 404, authorization failures 403, lifecycle
// conflicts 409, everything else 400.
func donationErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrDonationNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrDonationNotAuthorized):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrInvalidDonationState):
		return fiber.StatusConflict
	}
	return fiber.StatusBadRequest
}

func (h *donationHandler) CreateDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.CreateDonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDonation, err)
	}

	result, err := h.donationService.CreateDonation(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateDonation, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessCreateDonation)
}

func (h *donationHandler) UploadDonationImage(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	donationID := c.Params("id")

	image, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	url, err := h.donationService.AddDonationImage(c.Context(), donationID, userID, role, image)
	if err != nil {
		return presenters.ErrorResponse(c, donationErrorStatus(err), domain.MessageFailedUpdateDonation, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"url": url,
	}, fiber.StatusCreated, domain.MessageSuccessUpdateDonation)
}

func (h *donationHandler) ListDonations(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}
	minQuantity, _ := strconv.Atoi(c.Query("min_quantity", "0"))
	isEmergency := c.Query("is_emergency") == "true"

	req := domain.ListDonationsRequest{
		Status:      c.Query("status"),
		FoodType:    c.Query("food_type"),
		MinQuantity: minQuantity,
		IsEmergency: isEmergency,
		Page:        page,
		Limit:       limit,
	}

	if c.Query("latitude") != "" || c.Query("longitude") != "" {
		lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.ErrInvalidCoordinates)
		}
		lng, err := strconv.ParseFloat(c.Query("longitude"), 64)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.ErrInvalidCoordinates)
		}
		req.Latitude = &lat
		req.Longitude = &lng
		if maxDistance, err := strconv.ParseFloat(c.Query("max_distance"), 64); err == nil && maxDistance > 0 {
			req.MaxDistance = maxDistance
		}
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDonations, err)
	}

	donations, count, err := h.donationService.ListDonations(c.Context(), req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donations": donations,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetDonationByID(c *fiber.Ctx) error {
	donationID := c.Params("id")
	if donationID == "" {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDonations, domain.ErrDonationNotFound)
	}

	result, err := h.donationService.GetDonationByID(c.Context(), donationID)
	if err != nil {
		return presenters.ErrorResponse(c, donationErrorStatus(err), domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) GetMyDonations(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	donations, count, err := h.donationService.GetMyDonations(c.Context(), userID, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"donations": donations,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetDonations)
}

func (h *donationHandler) UpdateDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	donationID := c.Params("id")

	req := new(domain.UpdateDonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDonation, err)
	}

	result, err := h.donationService.UpdateDonation(c.Context(), donationID, *req, userID, role)
	if err != nil {
		return presenters.ErrorResponse(c, donationErrorStatus(err), domain.MessageFailedUpdateDonation, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessUpdateDonation)
}

func (h *donationHandler) AcceptDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	donationID := c.Params("id")

	result, err := h.donationService.AcceptDonation(c.Context(), donationID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, donationErrorStatus(err), domain.MessageFailedAcceptDonation, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessAcceptDonation)
}

func (h *donationHandler) CompleteDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	donationID := c.Params("id")

	result, err := h.donationService.CompleteDonation(c.Context(), donationID, userID, role)
	if err != nil {
		return presenters.ErrorResponse(c, donationErrorStatus(err), domain.MessageFailedCompleteDonation, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessCompleteDonation)
}

func (h *donationHandler) CancelDonation(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	donationID := c.Params("id")

	req := new(domain.CancelDonationRequest)
	if err := c.BodyParser(req); err != nil && len(c.Body()) > 0 {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.donationService.CancelDonation(c.Context(), donationID, userID, role, req.Reason); err != nil {
		return presenters.ErrorResponse(c, donationErrorStatus(err), domain.MessageFailedCancelDonation, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessCancelDonation)
}

func (h *donationHandler) SubmitFeedback(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	donationID := c.Params("id")

	req := new(domain.FeedbackRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSubmitFeedback, err)
	}

	result, err := h.donationService.SubmitFeedback(c.Context(), donationID, userID, role, *req)
	if err != nil {
		return presenters.ErrorResponse(c, donationErrorStatus(err), domain.MessageFailedSubmitFeedback, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusCreated, domain.MessageSuccessSubmitFeedback)
}

func (h *donationHandler) GetTracking(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	role := c.Locals("role").(string)
	donationID := c.Params("id")

	result, err := h.donationService.GetTracking(c.Context(), donationID, userID, role)
	if err != nil {
		return presenters.ErrorResponse(c, donationErrorStatus(err), domain.MessageFailedGetTracking, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessGetTracking)
}

func (h *donationHandler) GetDonationStatistics(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	stats, err := h.donationService.GetDonorStatistics(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetDonations, err)
	}

	return presenters.SuccessResponse(c, stats, fiber.StatusOK, domain.MessageSuccessGetDonations)
}
