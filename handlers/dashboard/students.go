package dashboard

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/query"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
)

// StudentRequest represents the request body for creating a dashboard student
type StudentRequest struct {
	Name           string           `json:"name" validate:"required,min=2,max=200"`
	Email          string           `json:"email" validate:"required,email,max=255"`
	Program        string           `json:"program" validate:"omitempty,max=150"`
	Status         model.StatusEnum `json:"status" validate:"omitempty,enum"`
	AverageGrade   float64          `json:"average_grade" validate:"gte=0,lte=100"`
	AttendanceRate float64          `json:"attendance_rate" validate:"gte=0,lte=100"`
	AvatarURL      *string          `json:"avatar_url" validate:"omitempty,url,max=512"`
}

// UpdateStudentRequest represents the request body for updating a dashboard student
type UpdateStudentRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=2,max=200"`
	Email          *string          `json:"email" validate:"omitempty,email,max=255"`
	Program        *string          `json:"program" validate:"omitempty,max=150"`
	Status         model.StatusEnum `json:"status" validate:"omitempty,enum"`
	AverageGrade   *float64         `json:"average_grade" validate:"omitempty,gte=0,lte=100"`
	AttendanceRate *float64         `json:"attendance_rate" validate:"omitempty,gte=0,lte=100"`
	AvatarURL      *string          `json:"avatar_url" validate:"omitempty,url,max=512"`
}

// ListStudents handles GET /api/v1/dashboard/students
func (h *DashboardHandler) ListStudents(c *fiber.Ctx) error {
	status, err := query.Enum[model.StatusEnum](c, "status")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	filter := services.DashboardStudentFilter{Status: status, Search: query.Search(c)}
	page, err := h.service.ListStudents(c.UserContext(), filter, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// GetStudent handles GET /api/v1/dashboard/students/:id
func (h *DashboardHandler) GetStudent(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	student, err := h.service.GetStudent(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, student)
}

// CreateStudent handles POST /api/v1/dashboard/students
func (h *DashboardHandler) CreateStudent(c *fiber.Ctx) error {
	var req StudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	student := model.DashboardStudent{
		Name:           validation.SanitizeString(req.Name),
		Email:          validation.SanitizeString(req.Email),
		Program:        validation.SanitizeString(req.Program),
		Status:         req.Status,
		AverageGrade:   req.AverageGrade,
		AttendanceRate: req.AttendanceRate,
		AvatarURL:      validation.SanitizeOptional(req.AvatarURL),
	}
	if err := h.service.CreateStudent(c.UserContext(), &student); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, student)
}

// UpdateStudent handles PUT /api/v1/dashboard/students/:id
func (h *DashboardHandler) UpdateStudent(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	var req UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	student, err := h.service.UpdateStudent(c.UserContext(), id, func(s *model.DashboardStudent) error {
		if req.Name != nil {
			s.Name = validation.SanitizeString(*req.Name)
		}
		if req.Email != nil {
			s.Email = validation.SanitizeString(*req.Email)
		}
		if req.Program != nil {
			s.Program = validation.SanitizeString(*req.Program)
		}
		if req.Status != "" {
			s.Status = req.Status
		}
		if req.AverageGrade != nil {
			s.AverageGrade = *req.AverageGrade
		}
		if req.AttendanceRate != nil {
			s.AttendanceRate = *req.AttendanceRate
		}
		if req.AvatarURL != nil {
			s.AvatarURL = validation.SanitizeOptional(req.AvatarURL)
		}
		return nil
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Student updated successfully", student)
}

// DeleteStudent handles DELETE /api/v1/dashboard/students/:id
func (h *DashboardHandler) DeleteStudent(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	if err := h.service.DeleteStudent(c.UserContext(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Student deleted successfully", nil)
}
