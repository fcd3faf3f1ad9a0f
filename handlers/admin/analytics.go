package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/utils/response"
	"gorm.io/gorm"
)

// TableCount is the number of rows stored in one table
type TableCount struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// Overview summarises the contents of the database
type Overview struct {
	Tables              []TableCount `json:"tables"`
	ActiveUsers         int64        `json:"active_users"`
	UngradedSubmissions int64        `json:"ungraded_submissions"`
}

// GetOverview retrieves row counts of every table
// GET /admin/overview
func GetOverview(c *fiber.Ctx, store database.Storage) error {
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		return response.InternalServerError(c, "Database connection error")
	}
	db = db.WithContext(c.UserContext())

	mappings, err := database.BuildMappings(database.Models...)
	if err != nil {
		return err
	}

	var overview Overview
	for _, m := range mappings {
		tc := TableCount{Table: m.Table}
		if err := db.Table(m.Table).Count(&tc.Rows).Error; err != nil {
			return err
		}
		overview.Tables = append(overview.Tables, tc)
	}

	if err := db.Model(&model.User{}).Where("activo = ?", true).Count(&overview.ActiveUsers).Error; err != nil {
		return err
	}
	if err := db.Model(&model.Submission{}).
		Where("NOT EXISTS (SELECT 1 FROM calificaciones WHERE calificaciones.entrega_id = entregas.id)").
		Count(&overview.UngradedSubmissions).Error; err != nil {
		return err
	}

	return response.SuccessWithMessage(c, "Overview retrieved successfully", overview)
}
