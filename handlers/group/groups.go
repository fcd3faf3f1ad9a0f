package group

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/query"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
)

// GroupHandler handles group requests, including the group's schedules and
// attendance roster
type GroupHandler struct {
	groups     *services.GroupService
	schedules  *services.ScheduleService
	attendance *services.AttendanceService
	validator  *validation.Validator
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(groups *services.GroupService, schedules *services.ScheduleService, attendance *services.AttendanceService) *GroupHandler {
	return &GroupHandler{
		groups:     groups,
		schedules:  schedules,
		attendance: attendance,
		validator:  validation.NewValidator(),
	}
}

// CreateGroupRequest represents the request body for creating a group
type CreateGroupRequest struct {
	CourseID    uint   `json:"curso_id" validate:"required"`
	ProfessorID uint   `json:"profesor_id" validate:"required"`
	Code        string `json:"codigo" validate:"required,min=1,max=20"`
	Term        string `json:"periodo" validate:"required,min=1,max=20"`
	Capacity    int    `json:"cupo" validate:"omitempty,gt=0,lte=1000"`
}

// UpdateGroupRequest represents the request body for updating a group
type UpdateGroupRequest struct {
	CourseID    *uint   `json:"curso_id" validate:"omitempty,gt=0"`
	ProfessorID *uint   `json:"profesor_id" validate:"omitempty,gt=0"`
	Code        *string `json:"codigo" validate:"omitempty,min=1,max=20"`
	Term        *string `json:"periodo" validate:"omitempty,min=1,max=20"`
	Capacity    *int    `json:"cupo" validate:"omitempty,gt=0,lte=1000"`
}

// RosterRequest records the attendance of a group on one date
type RosterRequest struct {
	Date    string             `json:"fecha" validate:"required,datetime=2006-01-02"`
	Entries []RosterEntryInput `json:"registros" validate:"required,min=1,unique=EnrollmentID,dive"`
}

// RosterEntryInput is one student line of a roster
type RosterEntryInput struct {
	EnrollmentID uint                   `json:"inscripcion_id" validate:"required"`
	Status       model.EstadoAsistencia `json:"estado" validate:"required,enum"`
	Notes        *string                `json:"observaciones" validate:"omitempty,max=1000"`
}

// ListGroups handles GET /api/v1/groups
func (h *GroupHandler) ListGroups(c *fiber.Ctx) error {
	courseID, err := query.OptionalID(c, "curso_id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	professorID, err := query.OptionalID(c, "profesor_id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	filter := services.GroupFilter{CourseID: courseID, ProfessorID: professorID, Term: c.Query("periodo")}
	page, err := h.groups.List(c.UserContext(), filter, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// GetGroup handles GET /api/v1/groups/:id
func (h *GroupHandler) GetGroup(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid group ID")
	}

	group, err := h.groups.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, group)
}

// CreateGroup handles POST /api/v1/groups
func (h *GroupHandler) CreateGroup(c *fiber.Ctx) error {
	var req CreateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	group := model.Group{
		CourseID:    req.CourseID,
		ProfessorID: req.ProfessorID,
		Code:        validation.SanitizeString(req.Code),
		Term:        validation.SanitizeString(req.Term),
		Capacity:    req.Capacity,
	}
	if group.Capacity == 0 {
		group.Capacity = 30
	}
	if err := h.groups.Create(c.UserContext(), &group); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, group)
}

// UpdateGroup handles PUT /api/v1/groups/:id
func (h *GroupHandler) UpdateGroup(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid group ID")
	}

	var req UpdateGroupRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	group, err := h.groups.Update(c.UserContext(), id, func(g *model.Group) error {
		if req.CourseID != nil {
			g.CourseID = *req.CourseID
		}
		if req.ProfessorID != nil {
			g.ProfessorID = *req.ProfessorID
		}
		if req.Code != nil {
			g.Code = validation.SanitizeString(*req.Code)
		}
		if req.Term != nil {
			g.Term = validation.SanitizeString(*req.Term)
		}
		if req.Capacity != nil {
			g.Capacity = *req.Capacity
		}
		return nil
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Group updated successfully", group)
}

// DeleteGroup handles DELETE /api/v1/groups/:id
// Cascades to schedules, enrollments, attendance and activities.
func (h *GroupHandler) DeleteGroup(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid group ID")
	}

	if err := h.groups.Delete(c.UserContext(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Group deleted successfully", nil)
}

// ListEnrollments handles GET /api/v1/groups/:id/enrollments
func (h *GroupHandler) ListEnrollments(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid group ID")
	}

	page, err := h.groups.Enrollments(c.UserContext(), id, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// ListActivities handles GET /api/v1/groups/:id/activities
func (h *GroupHandler) ListActivities(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid group ID")
	}

	page, err := h.groups.Activities(c.UserContext(), id, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// GetRoster handles GET /api/v1/groups/:id/attendance?fecha=YYYY-MM-DD
// The date defaults to today.
func (h *GroupHandler) GetRoster(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid group ID")
	}

	date, err := query.Date(c, "fecha")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	if date == nil {
		today := time.Now()
		date = &today
	}

	roster, err := h.groups.Roster(c.UserContext(), id, *date)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, roster)
}

// RecordRoster handles POST /api/v1/groups/:id/attendance
// Overwrites existing records of the same date.
func (h *GroupHandler) RecordRoster(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid group ID")
	}

	var req RosterRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	date, _ := time.Parse(query.DateLayout, req.Date)
	entries := make([]services.RosterEntry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = services.RosterEntry{
			EnrollmentID: e.EnrollmentID,
			Status:       e.Status,
			Notes:        validation.SanitizeOptional(e.Notes),
		}
	}

	rows, err := h.attendance.RecordRoster(c.UserContext(), id, date, entries)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Attendance recorded successfully", rows)
}
