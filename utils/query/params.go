// Package query reads route parameters and query strings into typed values.
package query

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/services"
)

// DateLayout is the layout of date-only query values
const DateLayout = "2006-01-02"

// ID parses the named route parameter as a positive id
func ID(c *fiber.Ctx, name string) (uint, error) {
	return parseID(name, c.Params(name))
}

// OptionalID parses a query value as an id; an absent value yields 0
func OptionalID(c *fiber.Ctx, key string) (uint, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	return parseID(key, raw)
}

func parseID(name, raw string) (uint, error) {
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return uint(n), nil
}

// List reads page and limit. Out of range values are clamped by the service.
func List(c *fiber.Ctx) services.ListParams {
	return services.ListParams{
		Page:  c.QueryInt("page", 1),
		Limit: c.QueryInt("limit", services.DefaultPageSize),
	}
}

// Bool parses an optional boolean query value
func Bool(c *fiber.Ctx, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be true or false", key)
	}
	return &v, nil
}

// Date parses an optional YYYY-MM-DD query value
func Date(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("%s must be a date (YYYY-MM-DD)", key)
	}
	return &t, nil
}

// Search returns the trimmed search term
func Search(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Query("search"))
}

// Enum parses an optional enumeration query value, rejecting unknown literals
func Enum[E interface {
	~string
	Valid() bool
}](c *fiber.Ctx, key string) (E, error) {
	v := E(strings.TrimSpace(c.Query(key)))
	if v == "" || v.Valid() {
		return v, nil
	}
	return "", fmt.Errorf("%s has an unknown value %q", key, string(v))
}
