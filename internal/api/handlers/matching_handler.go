package handlers

import (
	"strconv"

	"github.com/Denyusha/Food-Donation-updated/domain"
	"github.com/Denyusha/Food-Donation-updated/internal/api/presenters"
	"github.com/Denyusha/Food-Donation-updated/pkg/matching"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MatchingHandler interface {
		GetMatches(c *fiber.Ctx) error
		GetAvailablePickups(c *fiber.Ctx) error
	}

	matchingHandler struct {
		matchingService matching.MatchingService
		validator       *validator.Validate
	}
)

func NewMatchingHandler(matchingService matching.MatchingService, validator *validator.Validate) MatchingHandler {
	return &matchingHandler{
		matchingService: matchingService,
		validator:       validator,
	}
}

func (h *matchingHandler) GetMatches(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.ErrInvalidCoordinates)
	}
	lng, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.ErrInvalidCoordinates)
	}

	req := domain.GetMatchesRequest{
		Latitude:  lat,
		Longitude: lng,
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMatches, err)
	}

	matches, err := h.matchingService.GetMatches(c.Context(), req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetMatches, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"matches": matches,
	}, fiber.StatusOK, domain.MessageSuccessGetMatches)
}

func (h *matchingHandler) GetAvailablePickups(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.ErrInvalidCoordinates)
	}
	lng, err := strconv.ParseFloat(c.Query("longitude"), 64)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, domain.ErrInvalidCoordinates)
	}
	maxDistance, err := strconv.ParseFloat(c.Query("max_distance", "10"), 64)
	if err != nil || maxDistance <= 0 {
		maxDistance = 10
	}

	req := domain.GetAvailablePickupsRequest{
		Latitude:    lat,
		Longitude:   lng,
		MaxDistance: maxDistance,
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetAvailablePickups, err)
	}

	pickups, err := h.matchingService.GetAvailablePickups(c.Context(), req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetAvailablePickups, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"pickups": pickups,
	}, fiber.StatusOK, domain.MessageSuccessGetAvailablePickups)
}
