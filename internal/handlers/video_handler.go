package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rajput-vishal01/videovault/internal/middleware"
	"github.com/rajput-vishal01/videovault/internal/services"
	"github.com/rajput-vishal01/videovault/internal/utils"
)

type VideoHandler struct {
	svc    *services.VideoService
	logger *zap.SugaredLogger
}

func NewVideoHandler(svc *services.VideoService, logger *zap.SugaredLogger) *VideoHandler {
	return &VideoHandler{svc: svc, logger: logger}
}

// GET /api/videos
func (h *VideoHandler) List(c *fiber.Ctx) error {
	items, err := h.svc.Feed(c.Context())
	if err != nil {
		return utils.JSONError(c, fiber.StatusInternalServerError, "Failed to fetch videos")
	}
	return utils.JSON(c, fiber.StatusOK, items)
}

// POST /api/videos
func (h *VideoHandler) Create(c *fiber.Ctx) error {
	userID := middleware.UserID(c)
	if userID == "" {
		return utils.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	var req services.CreateVideoRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}

	v, err := h.svc.Create(c.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrValidation):
			return utils.JSONError(c, fiber.StatusBadRequest, "Missing required fields")
		case errors.Is(err, utils.ErrUnauthorized):
			return utils.JSONError(c, fiber.StatusUnauthorized, "Unauthorized")
		default:
			return utils.JSONError(c, fiber.StatusInternalServerError, "Failed to create video")
		}
	}
	return utils.JSON(c, fiber.StatusCreated, v)
}

// GET /api/videos/:id
func (h *VideoHandler) Get(c *fiber.Ctx) error {
	v, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return utils.JSONError(c, fiber.StatusNotFound, "Video not found")
		}
		return utils.JSONError(c, fiber.StatusInternalServerError, "Failed to fetch video")
	}
	return utils.JSON(c, fiber.StatusOK, v)
}
