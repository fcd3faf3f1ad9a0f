package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/utils/response"
)

// GetSchema returns the table mapping of every model: columns, unique indexes,
// foreign keys with their delete policy and checks. ?table= narrows it to one table.
// GET /admin/schema
func GetSchema(c *fiber.Ctx, _ database.Storage) error {
	mappings, err := database.BuildMappings(database.Models...)
	if err != nil {
		return err
	}

	if table := c.Query("table"); table != "" {
		m, ok := database.FindMapping(mappings, table)
		if !ok {
			return response.NotFound(c, "Table not found")
		}
		return response.Success(c, m)
	}

	return response.Success(c, mappings)
}
