package handlers

import (
	"github.com/gofiber/fiber/v2"

	"walletcore/internal/middleware"
	"walletcore/internal/models"
	"walletcore/internal/repositories"
	"walletcore/internal/utils/response"
)

type AccountHandler struct {
	repo repositories.LedgerRepository
}

func NewAccountHandler(repo repositories.LedgerRepository) *AccountHandler {
	return &AccountHandler{repo: repo}
}

// List returns the caller's accounts.
func (h *AccountHandler) List(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	accounts, err := h.repo.GetAccountsByUserID(p.UserID)
	if err != nil {
		return response.ServerError(c, MsgInternalError)
	}
	return c.JSON(fiber.Map{"accounts": accounts})
}

// Create opens a new empty account for the caller.
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	account := &models.Account{UserID: p.UserID}
	if err := h.repo.CreateAccount(account); err != nil {
		return response.ServerError(c, MsgInternalError)
	}
	return c.Status(fiber.StatusCreated).JSON(account)
}
