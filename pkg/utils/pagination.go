package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// ParsePagination reads page and limit from the query string. A defaultLimit of 0 means
// "no limit unless asked for".
func ParsePagination(c *fiber.Ctx, defaultLimit int) Pagination {
	page := positiveInt(c.Query("page"), 1)
	limit := positiveInt(c.Query("limit"), defaultLimit)
	if limit > MaxLimit {
		limit = MaxLimit
	}

	p := Pagination{Page: page, Limit: limit}
	if limit > 0 {
		p.Offset = (page - 1) * limit
	}
	return p
}

func positiveInt(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
