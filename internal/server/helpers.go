package server

import (
	"strconv"

	"murmur/internal/models"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultPaginationLimit = 20
	maxPaginationLimit     = 100
)

// parsePagination reads limit/offset query params with sane bounds.
func parsePagination(c *fiber.Ctx) (limit, offset int) {
	limit = c.QueryInt("limit", defaultPaginationLimit)
	if limit < 1 {
		limit = defaultPaginationLimit
	}
	if limit > maxPaginationLimit {
		limit = maxPaginationLimit
	}
	offset = c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// parseID parses a numeric path parameter, rejecting zero and non-numeric
// values. Callers surface the error through RespondWithError.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, models.NewValidationError("invalid " + name + " parameter")
	}
	return uint(id), nil
}

// currentUserID returns the authenticated caller's ID. Routes behind
// AuthRequired always have it set.
func currentUserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}
