package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"walletcore/internal/middleware"
	"walletcore/internal/repositories"
	"walletcore/internal/services/authz"
	"walletcore/internal/services/exchange"
	"walletcore/internal/utils/pagination"
	"walletcore/internal/utils/response"
)

const (
	MsgUserNotFound = "user not found"
	MsgPageNotFound = "page not found"
)

type UserHandler struct {
	repo     repositories.LedgerRepository
	exchange exchange.Service
}

func NewUserHandler(repo repositories.LedgerRepository, exchangeSvc exchange.Service) *UserHandler {
	return &UserHandler{repo: repo, exchange: exchangeSvc}
}

// List returns one page of users. Requesting a page past the last one
// is a 404 here, unlike the transaction listing.
func (h *UserHandler) List(c *fiber.Ctx) error {
	page := pagination.Page(c)
	pageSize := pagination.DefaultPageSize

	users, total, err := h.repo.GetUsers(pageSize, pagination.Offset(page, pageSize))
	if err != nil {
		return response.ServerError(c, MsgInternalError)
	}

	totalPages := pagination.TotalPages(int(total), pageSize)
	if page > totalPages {
		return response.NotFound(c, MsgPageNotFound)
	}

	c.Set("X-Total-Pages", strconv.Itoa(totalPages))
	return c.JSON(fiber.Map{"users": users, "page": page, "total_pages": totalPages})
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid user id")
	}

	if authz.Authorize(p, authz.OpRead, id) == authz.Deny {
		return response.Forbidden(c, MsgAccessDenied)
	}

	user, err := h.repo.GetUserByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return response.NotFound(c, MsgUserNotFound)
		}
		return response.ServerError(c, MsgInternalError)
	}
	return c.JSON(user)
}

// ExchangePoints redeems the caller's points for the product in the
// URL. The result message is the stable user-facing text.
func (h *UserHandler) ExchangePoints(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	productID, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid product id")
	}

	result, err := h.exchange.Exchange(c.Context(), p.UserID, productID)
	if err != nil {
		switch {
		case errors.Is(err, exchange.ErrUserNotFound),
			errors.Is(err, exchange.ErrProductNotFound),
			errors.Is(err, exchange.ErrNoAccount):
			return response.NotFound(c, result.Message)
		case errors.Is(err, exchange.ErrInsufficientPoints):
			return response.BadRequest(c, result.Message)
		default:
			return response.ServerError(c, MsgInternalError)
		}
	}
	return c.JSON(result)
}
