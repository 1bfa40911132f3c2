// Package pagination provides deterministic page slicing shared by
// every listing endpoint.
package pagination

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// DefaultPageSize is the page size used by listing endpoints.
const DefaultPageSize = 10

// Paginate returns the requested page of items and the total number of
// pages. A page below 1 is clamped to 1; a page past the end yields an
// empty slice, leaving it to the caller whether that is a NotFound.
func Paginate[T any](items []T, page, pageSize int) ([]T, int) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}

	totalPages := TotalPages(len(items), pageSize)
	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}, totalPages
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}

// TotalPages computes ceil(count / pageSize).
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	totalPages := count / pageSize
	if count%pageSize > 0 {
		totalPages++
	}
	return totalPages
}

// Page reads the page query parameter from a request, clamped to >= 1.
func Page(c *fiber.Ctx) int {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Offset converts a page number to a storage offset.
func Offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
