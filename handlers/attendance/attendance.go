package attendance

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/query"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
	"gorm.io/datatypes"
)

// AttendanceHandler handles single attendance records. Whole rosters are
// recorded through the group routes.
type AttendanceHandler struct {
	service   *services.AttendanceService
	validator *validation.Validator
}

// NewAttendanceHandler creates a new attendance handler
func NewAttendanceHandler(service *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateAttendanceRequest represents the request body for one attendance record.
// The group is taken from the enrollment.
type CreateAttendanceRequest struct {
	EnrollmentID uint                   `json:"inscripcion_id" validate:"required"`
	Date         string                 `json:"fecha" validate:"required,datetime=2006-01-02"`
	Status       model.EstadoAsistencia `json:"estado" validate:"required,enum"`
	Notes        *string                `json:"observaciones" validate:"omitempty,max=1000"`
}

// UpdateAttendanceRequest represents the request body for updating a record
type UpdateAttendanceRequest struct {
	Date   *string                `json:"fecha" validate:"omitempty,datetime=2006-01-02"`
	Status model.EstadoAsistencia `json:"estado" validate:"omitempty,enum"`
	Notes  *string                `json:"observaciones" validate:"omitempty,max=1000"`
}

func date(s string) datatypes.Date {
	t, _ := time.Parse(query.DateLayout, s)
	return datatypes.Date(t)
}

// ListAttendance handles GET /api/v1/attendance
func (h *AttendanceHandler) ListAttendance(c *fiber.Ctx) error {
	var filter services.AttendanceFilter
	var err error
	if filter.GroupID, err = query.OptionalID(c, "grupo_id"); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if filter.EnrollmentID, err = query.OptionalID(c, "inscripcion_id"); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if filter.Status, err = query.Enum[model.EstadoAsistencia](c, "estado"); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if filter.From, err = query.Date(c, "desde"); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if filter.To, err = query.Date(c, "hasta"); err != nil {
		return response.BadRequest(c, err.Error())
	}

	page, err := h.service.List(c.UserContext(), filter, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// GetAttendance handles GET /api/v1/attendance/:id
func (h *AttendanceHandler) GetAttendance(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid attendance ID")
	}

	record, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, record)
}

// CreateAttendance handles POST /api/v1/attendance
func (h *AttendanceHandler) CreateAttendance(c *fiber.Ctx) error {
	var req CreateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	record := model.Attendance{
		EnrollmentID: req.EnrollmentID,
		Date:         date(req.Date),
		Status:       req.Status,
		Notes:        validation.SanitizeOptional(req.Notes),
	}
	if err := h.service.Create(c.UserContext(), &record); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, record)
}

// UpdateAttendance handles PUT /api/v1/attendance/:id
func (h *AttendanceHandler) UpdateAttendance(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid attendance ID")
	}

	var req UpdateAttendanceRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	record, err := h.service.Update(c.UserContext(), id, func(a *model.Attendance) error {
		if req.Date != nil {
			a.Date = date(*req.Date)
		}
		if req.Status != "" {
			a.Status = req.Status
		}
		if req.Notes != nil {
			a.Notes = validation.SanitizeOptional(req.Notes)
		}
		return nil
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Attendance updated successfully", record)
}

// DeleteAttendance handles DELETE /api/v1/attendance/:id
func (h *AttendanceHandler) DeleteAttendance(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid attendance ID")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Attendance deleted successfully", nil)
}
