package dashboard

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/query"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
)

// ActivityRequest represents the request body for creating a dashboard activity
type ActivityRequest struct {
	Title       string                   `json:"title" validate:"required,min=2,max=200"`
	Description string                   `json:"description" validate:"omitempty,max=10000"`
	Category    model.CategoryEnum       `json:"category" validate:"required,enum"`
	Priority    model.PriorityEnum       `json:"priority" validate:"omitempty,enum"`
	Status      model.ActivityStatusEnum `json:"status" validate:"omitempty,enum"`
	CourseName  string                   `json:"course_name" validate:"omitempty,max=150"`
	DueDate     *time.Time               `json:"due_date"`
	StudentID   *uint                    `json:"student_id" validate:"omitempty,gt=0"`
}

// UpdateActivityRequest represents the request body for updating a dashboard activity
type UpdateActivityRequest struct {
	Title        *string                  `json:"title" validate:"omitempty,min=2,max=200"`
	Description  *string                  `json:"description" validate:"omitempty,max=10000"`
	Category     model.CategoryEnum       `json:"category" validate:"omitempty,enum"`
	Priority     model.PriorityEnum       `json:"priority" validate:"omitempty,enum"`
	Status       model.ActivityStatusEnum `json:"status" validate:"omitempty,enum"`
	CourseName   *string                  `json:"course_name" validate:"omitempty,max=150"`
	DueDate      *time.Time               `json:"due_date"`
	StudentID    *uint                    `json:"student_id" validate:"omitempty,gt=0"`
	ClearStudent bool                     `json:"clear_student" validate:"excluded_with=StudentID"`
}

// ListActivities handles GET /api/v1/dashboard/activities
func (h *DashboardHandler) ListActivities(c *fiber.Ctx) error {
	var filter services.DashboardActivityFilter
	var err error
	if filter.Status, err = query.Enum[model.ActivityStatusEnum](c, "status"); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if filter.Priority, err = query.Enum[model.PriorityEnum](c, "priority"); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if filter.Category, err = query.Enum[model.CategoryEnum](c, "category"); err != nil {
		return response.BadRequest(c, err.Error())
	}
	if filter.StudentID, err = query.OptionalID(c, "student_id"); err != nil {
		return response.BadRequest(c, err.Error())
	}
	overdue, err := query.Bool(c, "overdue")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	filter.Overdue = overdue != nil && *overdue

	page, err := h.service.ListActivities(c.UserContext(), filter, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// GetActivity handles GET /api/v1/dashboard/activities/:id
func (h *DashboardHandler) GetActivity(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid activity ID")
	}

	activity, err := h.service.GetActivity(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, activity)
}

// CreateActivity handles POST /api/v1/dashboard/activities
func (h *DashboardHandler) CreateActivity(c *fiber.Ctx) error {
	var req ActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	activity := model.DashboardActivity{
		Title:       validation.SanitizeString(req.Title),
		Description: validation.SanitizeString(req.Description),
		Category:    req.Category,
		Priority:    req.Priority,
		Status:      req.Status,
		CourseName:  validation.SanitizeString(req.CourseName),
		DueDate:     req.DueDate,
		StudentID:   req.StudentID,
	}
	if err := h.service.CreateActivity(c.UserContext(), &activity); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, activity)
}

// UpdateActivity handles PUT /api/v1/dashboard/activities/:id
func (h *DashboardHandler) UpdateActivity(c *fiber.Ctx) error {
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

	activity, err := h.service.UpdateActivity(c.UserContext(), id, func(a *model.DashboardActivity) error {
		if req.Title != nil {
			a.Title = validation.SanitizeString(*req.Title)
		}
		if req.Description != nil {
			a.Description = validation.SanitizeString(*req.Description)
		}
		if req.Category != "" {
			a.Category = req.Category
		}
		if req.Priority != "" {
			a.Priority = req.Priority
		}
		if req.Status != "" {
			a.Status = req.Status
		}
		if req.CourseName != nil {
			a.CourseName = validation.SanitizeString(*req.CourseName)
		}
		if req.DueDate != nil {
			a.DueDate = req.DueDate
		}
		switch {
		case req.ClearStudent:
			a.StudentID = nil
		case req.StudentID != nil:
			a.StudentID = req.StudentID
		}
		return nil
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Activity updated successfully", activity)
}

// DeleteActivity handles DELETE /api/v1/dashboard/activities/:id
func (h *DashboardHandler) DeleteActivity(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid activity ID")
	}

	if err := h.service.DeleteActivity(c.UserContext(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Activity deleted successfully", nil)
}
