package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"walletcore/internal/services/auth"
	"walletcore/internal/utils/response"
)

type AuthHandler struct {
	svc auth.Service
}

func NewAuthHandler(svc auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	token, user, err := h.svc.Login(in.Email, in.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			return response.Error(c, fiber.StatusUnauthorized, err.Error())
		}
		return response.ServerError(c, MsgInternalError)
	}
	return c.JSON(fiber.Map{"token": token, "user": user})
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in auth.RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	user, err := h.svc.Register(in)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailTaken):
			return response.Error(c, fiber.StatusConflict, err.Error())
		case errors.Is(err, auth.ErrInvalidCredentials):
			return response.BadRequest(c, "email and password are required")
		default:
			return response.ServerError(c, MsgInternalError)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}
