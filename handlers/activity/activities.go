package activity

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/query"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
)

// ActivityHandler handles gradable activity requests
type ActivityHandler struct {
	service   *services.ActivityService
	validator *validation.Validator
}

// NewActivityHandler creates a new activity handler
func NewActivityHandler(service *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateActivityRequest represents the request body for creating an activity.
// MaxScore defaults to 100.
type CreateActivityRequest struct {
	GroupID     uint       `json:"grupo_id" validate:"required"`
	Title       string     `json:"titulo" validate:"required,min=2,max=200"`
	Description string     `json:"descripcion" validate:"omitempty,max=10000"`
	Kind        string     `json:"tipo" validate:"required,max=30"`
	DueDate     *time.Time `json:"fecha_limite"`
	MaxScore    float64    `json:"puntaje_maximo" validate:"omitempty,gt=0"`
	Weight      float64    `json:"ponderacion" validate:"gte=0,lte=100"`
}

// UpdateActivityRequest represents the request body for updating an activity
type UpdateActivityRequest struct {
	Title        *string    `json:"titulo" validate:"omitempty,min=2,max=200"`
	Description  *string    `json:"descripcion" validate:"omitempty,max=10000"`
	Kind         *string    `json:"tipo" validate:"omitempty,min=1,max=30"`
	DueDate      *time.Time `json:"fecha_limite"`
	ClearDueDate bool       `json:"quitar_fecha_limite" validate:"excluded_with=DueDate"`
	MaxScore     *float64   `json:"puntaje_maximo" validate:"omitempty,gt=0"`
	Weight       *float64   `json:"ponderacion" validate:"omitempty,gte=0,lte=100"`
}

// ListActivities handles GET /api/v1/activities
func (h *ActivityHandler) ListActivities(c *fiber.Ctx) error {
	groupID, err := query.OptionalID(c, "grupo_id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	filter := services.ActivityFilter{GroupID: groupID, Kind: c.Query("tipo")}
	page, err := h.service.List(c.UserContext(), filter, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// GetActivity handles GET /api/v1/activities/:id
func (h *ActivityHandler) GetActivity(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid activity ID")
	}

	activity, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, activity)
}

// CreateActivity handles POST /api/v1/activities
func (h *ActivityHandler) CreateActivity(c *fiber.Ctx) error {
	var req CreateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	activity := model.GradableActivity{
		GroupID:     req.GroupID,
		Title:       validation.SanitizeString(req.Title),
		Description: validation.SanitizeString(req.Description),
		Kind:        validation.SanitizeString(req.Kind),
		DueDate:     req.DueDate,
		MaxScore:    req.MaxScore,
		Weight:      req.Weight,
	}
	if err := h.service.Create(c.UserContext(), &activity); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, activity)
}

// UpdateActivity handles PUT /api/v1/activities/:id
func (h *ActivityHandler) UpdateActivity(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid activity ID")
	}

	var req UpdateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	activity, err := h.service.Update(c.UserContext(), id, func(a *model.GradableActivity) error {
		if req.Title != nil {
			a.Title = validation.SanitizeString(*req.Title)
		}
		if req.Description != nil {
			a.Description = validation.SanitizeString(*req.Description)
		}
		if req.Kind != nil {
			a.Kind = validation.SanitizeString(*req.Kind)
		}
		switch {
		case req.ClearDueDate:
			a.DueDate = nil
		case req.DueDate != nil:
			a.DueDate = req.DueDate
		}
		if req.MaxScore != nil {
			a.MaxScore = *req.MaxScore
		}
		if req.Weight != nil {
			a.Weight = *req.Weight
		}
		return nil
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Activity updated successfully", activity)
}

// DeleteActivity handles DELETE /api/v1/activities/:id
// Cascades to submissions and their grades.
func (h *ActivityHandler) DeleteActivity(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid activity ID")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Activity deleted successfully", nil)
}

// ListSubmissions handles GET /api/v1/activities/:id/submissions
func (h *ActivityHandler) ListSubmissions(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid activity ID")
	}

	page, err := h.service.Submissions(c.UserContext(), id, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}
