package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rajput-vishal01/videovault/internal/imagekit"
	"github.com/rajput-vishal01/videovault/internal/middleware"
	"github.com/rajput-vishal01/videovault/internal/services"
	"github.com/rajput-vishal01/videovault/internal/utils"
)

type AuthHandler struct {
	svc      *services.AuthService
	cdn      *imagekit.Client
	tokenTTL time.Duration
	logger   *zap.SugaredLogger
}

func NewAuthHandler(svc *services.AuthService, cdn *imagekit.Client, tokenTTL time.Duration, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{svc: svc, cdn: cdn, tokenTTL: tokenTTL, logger: logger}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	u, err := h.svc.Register(c.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrValidation):
			return utils.JSONError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, utils.ErrEmailTaken):
			return utils.JSONError(c, fiber.StatusConflict, err.Error())
		default:
			return utils.JSONError(c, fiber.StatusInternalServerError, "Failed to register")
		}
	}
	return utils.JSON(c, fiber.StatusCreated, u)
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.JSONError(c, fiber.StatusBadRequest, "invalid request body")
	}
	token, u, err := h.svc.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, utils.ErrUnauthorized) {
			return utils.JSONError(c, fiber.StatusUnauthorized, "invalid email or password")
		}
		return utils.JSONError(c, fiber.StatusInternalServerError, "Failed to log in")
	}
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Expires:  time.Now().Add(h.tokenTTL),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return utils.JSON(c, fiber.StatusOK, fiber.Map{"token": token, "user": u})
}

// GET /api/auth/imagekit-auth issues short-lived signed-upload credentials
// for a direct browser-to-CDN transfer.
func (h *AuthHandler) ImageKitAuth(c *fiber.Ctx) error {
	params := h.cdn.NewAuthParams()
	return utils.JSON(c, fiber.StatusOK, fiber.Map{
		"authenticationParameters": params,
		"publicKey":                h.cdn.PublicKey(),
	})
}
