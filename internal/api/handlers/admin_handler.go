package handlers

import (
	"strconv"

	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/internal/api/presenters"
	"github.com/Denyusha/Food-Donation-updated/pkg/donation"
	"github.com/Denyusha/Food-Donation-updated/pkg/notification"
	"github.com/Denyusha/Food-Donation-updated/pkg/user"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	AdminHandler interface {
		PatchDonation(c *fiber.Ctx) error
		ListUsers(c *fiber.Ctx) error
		SetUserActive(c *fiber.Ctx) error
		VerifyUser(c *fiber.Ctx) error
	}

	adminHandler struct {
		donationService     donation.DonationService
		userService         user.UserService
		notificationService notification.NotificationService
		validator           *validator.Validate
	}
)

func NewAdminHandler(
	donationService donation.DonationService,
	userService user.UserService,
	notificationService notification.NotificationService,
	validator *validator.Validate,
) AdminHandler {
	return &adminHandler{
		donationService:     donationService,
		userService:         userService,
		notificationService: notificationService,
		validator:           validator,
	}
}

func (h *adminHandler) PatchDonation(c *fiber.Ctx) error {
	donationID := c.Params("id")

	req := new(domain.AdminPatchDonationRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateDonation, err)
	}

	result, err := h.donationService.AdminPatchDonation(c.Context(), donationID, *req)
	if err != nil {
		return presenters.ErrorResponse(c, donationErrorStatus(err), domain.MessageFailedUpdateDonation, err)
	}

	return presenters.SuccessResponse(c, result, fiber.StatusOK, domain.MessageSuccessUpdateDonation)
}

func (h *adminHandler) ListUsers(c *fiber.Ctx) error {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	var isActive *bool
	if v := c.Query("is_active"); v != "" {
		active := v == "true"
		isActive = &active
	}

	users, count, err := h.userService.ListUsers(c.Context(), c.Query("role"), isActive, page, limit)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMe, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"users": users,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetMe)
}

func (h *adminHandler) SetUserActive(c *fiber.Ctx) error {
	userID := c.Params("id")

	req := new(struct {
		IsActive *bool `json:"is_active" validate:"required"`
	})
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if req.IsActive == nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateUser, domain.ErrUserNotAllowed)
	}

	if err := h.userService.SetUserActive(c.Context(), userID, *req.IsActive); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateUser, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateUser)
}

func (h *adminHandler) VerifyUser(c *fiber.Ctx) error {
	userID := c.Params("id")

	if err := h.userService.AdminVerifyUser(c.Context(), userID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedVerifyEmail, err)
	}

	_ = h.notificationService.Notify(c.Context(), userID,
		domain.NotificationAdminVerification,
		"Account Verified",
		"Your account has been verified by an administrator.",
		nil,
	)

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessVerifyEmail)
}
