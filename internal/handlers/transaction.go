package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"walletcore/internal/middleware"
	"walletcore/internal/services/authz"
	"walletcore/internal/services/transaction"
	"walletcore/internal/utils/pagination"
	"walletcore/internal/utils/response"
)

// Stable user-facing messages. Integration tests match on these.
const (
	MsgTransactionCreated = "transaction created successfully"
	MsgTransactionUpdated = "transaction updated successfully"
	MsgTransactionDeleted = "transaction deleted successfully"
	MsgAccessDenied       = "access denied"
	MsgInternalError      = "internal error"
)

type TransactionHandler struct {
	svc transaction.Service
}

func NewTransactionHandler(svc transaction.Service) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

// List returns the caller's transactions; administrators get the full
// paged ledger with the page count in the X-Total-Pages header.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if p.IsAdmin() {
		page := pagination.Page(c)
		txs, totalPages, err := h.svc.ListAll(c.Context(), page)
		if err != nil {
			return response.ServerError(c, MsgInternalError)
		}
		c.Set("X-Total-Pages", strconv.Itoa(totalPages))
		return c.JSON(fiber.Map{"transactions": txs, "page": page, "total_pages": totalPages})
	}

	if authz.Authorize(p, authz.OpRead, p.UserID) == authz.Deny {
		return response.Forbidden(c, MsgAccessDenied)
	}
	txs, err := h.svc.ListForUser(c.Context(), p.UserID)
	if err != nil {
		return response.ServerError(c, MsgInternalError)
	}
	return c.JSON(fiber.Map{"transactions": txs})
}

func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid transaction id")
	}

	tx, err := h.svc.GetByID(c.Context(), id, p)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(tx)
}

func (h *TransactionHandler) Create(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var in transaction.CreateInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "invalid request body")
	}
	if in.UserID == 0 {
		in.UserID = p.UserID
	}

	if authz.Authorize(p, authz.OpCreate, in.UserID) == authz.Deny {
		return response.Forbidden(c, MsgAccessDenied)
	}

	tx, err := h.svc.Create(c.Context(), in)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": MsgTransactionCreated,
		"id":      tx.ID,
	})
}

func (h *TransactionHandler) Update(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if authz.Authorize(p, authz.OpUpdate, p.UserID) == authz.Deny {
		return response.Forbidden(c, MsgAccessDenied)
	}
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid transaction id")
	}

	var in transaction.UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if _, err := h.svc.Update(c.Context(), id, in); err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, MsgTransactionUpdated, nil)
}

func (h *TransactionHandler) Delete(c *fiber.Ctx) error {
	p, ok := middleware.Principal(c)
	if !ok {
		return response.Error(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if authz.Authorize(p, authz.OpDelete, p.UserID) == authz.Deny {
		return response.Forbidden(c, MsgAccessDenied)
	}
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "invalid transaction id")
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return h.mapError(c, err)
	}
	return response.Success(c, MsgTransactionDeleted, nil)
}

func (h *TransactionHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, transaction.ErrTransactionNotFound),
		errors.Is(err, transaction.ErrUserNotFound),
		errors.Is(err, transaction.ErrAccountNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, transaction.ErrInvalidAmount),
		errors.Is(err, transaction.ErrEmptyConcept),
		errors.Is(err, transaction.ErrInvalidType),
		errors.Is(err, transaction.ErrAccountOwnership),
		errors.Is(err, transaction.ErrInsufficientFunds):
		return response.BadRequest(c, err.Error())
	default:
		return response.ServerError(c, MsgInternalError)
	}
}

func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id")
	}
	return uint(id), nil
}
