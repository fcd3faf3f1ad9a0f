package group

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/database"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/utils/query"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
	"gorm.io/datatypes"
)

// ScheduleRequest is the body for creating a schedule
type ScheduleRequest struct {
	DayOfWeek string  `json:"dia_semana" validate:"required,min=1,max=15"`
	StartTime string  `json:"hora_inicio" validate:"required,clock"`
	EndTime   string  `json:"hora_fin" validate:"required,clock"`
	Room      *string `json:"aula" validate:"omitempty,max=50"`
}

// UpdateScheduleRequest is the body for updating a schedule
type UpdateScheduleRequest struct {
	DayOfWeek *string `json:"dia_semana" validate:"omitempty,min=1,max=15"`
	StartTime *string `json:"hora_inicio" validate:"omitempty,clock"`
	EndTime   *string `json:"hora_fin" validate:"omitempty,clock"`
	Room      *string `json:"aula" validate:"omitempty,max=50"`
}

func clock(s string) datatypes.Time {
	d, _ := validation.ParseClock(s)
	return datatypes.Time(d)
}

// ListSchedules handles GET /api/v1/groups/:id/schedules
func (h *GroupHandler) ListSchedules(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid group ID")
	}

	schedules, err := h.groups.Schedules(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, schedules)
}

// CreateSchedule handles POST /api/v1/groups/:id/schedules
func (h *GroupHandler) CreateSchedule(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid group ID")
	}

	var req ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	schedule := model.Schedule{
		GroupID:   id,
		DayOfWeek: validation.SanitizeString(req.DayOfWeek),
		StartTime: clock(req.StartTime),
		EndTime:   clock(req.EndTime),
		Room:      validation.SanitizeOptional(req.Room),
	}
	if err := h.schedules.Create(c.UserContext(), &schedule); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, schedule)
}

// UpdateSchedule handles PUT /api/v1/groups/:id/schedules/:scheduleId
func (h *GroupHandler) UpdateSchedule(c *fiber.Ctx) error {
	groupID, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid group ID")
	}
	scheduleID, err := query.ID(c, "scheduleId")
	if err != nil {
		return response.BadRequest(c, "Invalid schedule ID")
	}

	var req UpdateScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	schedule, err := h.schedules.Update(c.UserContext(), scheduleID, func(sc *model.Schedule) error {
		if sc.GroupID != groupID {
			return database.NotFound("schedule", scheduleID)
		}
		if req.DayOfWeek != nil {
			sc.DayOfWeek = validation.SanitizeString(*req.DayOfWeek)
		}
		if req.StartTime != nil {
			sc.StartTime = clock(*req.StartTime)
		}
		if req.EndTime != nil {
			sc.EndTime = clock(*req.EndTime)
		}
		if req.Room != nil {
			sc.Room = validation.SanitizeOptional(req.Room)
		}
		return nil
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Schedule updated successfully", schedule)
}

// DeleteSchedule handles DELETE /api/v1/groups/:id/schedules/:scheduleId
func (h *GroupHandler) DeleteSchedule(c *fiber.Ctx) error {
	groupID, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid group ID")
	}
	scheduleID, err := query.ID(c, "scheduleId")
	if err != nil {
		return response.BadRequest(c, "Invalid schedule ID")
	}

	schedule, err := h.schedules.Get(c.UserContext(), scheduleID)
	if err != nil {
		return response.FromError(c, err)
	}
	if schedule.GroupID != groupID {
		return response.NotFound(c, "Schedule not found")
	}

	if err := h.schedules.Delete(c.UserContext(), scheduleID); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Schedule deleted successfully", nil)
}
