package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"walletcore/internal/repositories"
	"walletcore/internal/utils/pagination"
	"walletcore/internal/utils/response"
)

type ProductHandler struct {
	repo repositories.LedgerRepository
}

func NewProductHandler(repo repositories.LedgerRepository) *ProductHandler {
	return &ProductHandler{repo: repo}
}

// List returns one page of the redeemable product catalog.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.repo.GetProducts()
	if err != nil {
		return response.ServerError(c, MsgInternalError)
	}

	page := pagination.Page(c)
	pageItems, totalPages := pagination.Paginate(products, page, pagination.DefaultPageSize)

	c.Set("X-Total-Pages", strconv.Itoa(totalPages))
	return c.JSON(fiber.Map{"products": pageItems, "page": page, "total_pages": totalPages})
}
