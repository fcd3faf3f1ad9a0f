package faculty

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/query"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
)

// FacultyHandler handles faculty-related requests
type FacultyHandler struct {
	service   *services.FacultyService
	validator *validation.Validator
}

// NewFacultyHandler creates a new faculty handler
func NewFacultyHandler(service *services.FacultyService) *FacultyHandler {
	return &FacultyHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateFacultyRequest represents the request body for creating a faculty
type CreateFacultyRequest struct {
	Code string `json:"codigo" validate:"required,min=1,max=20"`
	Name string `json:"nombre" validate:"required,min=2,max=150"`
}

// UpdateFacultyRequest represents the request body for updating a faculty
type UpdateFacultyRequest struct {
	Code *string `json:"codigo" validate:"omitempty,min=1,max=20"`
	Name *string `json:"nombre" validate:"omitempty,min=2,max=150"`
}

// ListFaculties handles GET /api/v1/faculties
func (h *FacultyHandler) ListFaculties(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), services.FacultyFilter{Search: query.Search(c)}, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// GetFaculty handles GET /api/v1/faculties/:id
func (h *FacultyHandler) GetFaculty(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid faculty ID")
	}

	faculty, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, faculty)
}

// CreateFaculty handles POST /api/v1/faculties
func (h *FacultyHandler) CreateFaculty(c *fiber.Ctx) error {
	var req CreateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	faculty := model.Faculty{
		Code: validation.SanitizeString(req.Code),
		Name: validation.SanitizeString(req.Name),
	}
	if err := h.service.Create(c.UserContext(), &faculty); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, faculty)
}

// UpdateFaculty handles PUT /api/v1/faculties/:id
func (h *FacultyHandler) UpdateFaculty(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid faculty ID")
	}

	var req UpdateFacultyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	faculty, err := h.service.Update(c.UserContext(), id, func(f *model.Faculty) error {
		if req.Code != nil {
			f.Code = validation.SanitizeString(*req.Code)
		}
		if req.Name != nil {
			f.Name = validation.SanitizeString(*req.Name)
		}
		return nil
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Faculty updated successfully", faculty)
}

// DeleteFaculty handles DELETE /api/v1/faculties/:id
// Refused while programs or courses belong to the faculty; professors are detached.
func (h *FacultyHandler) DeleteFaculty(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid faculty ID")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Faculty deleted successfully", nil)
}

// ListPrograms handles GET /api/v1/faculties/:id/programs
func (h *FacultyHandler) ListPrograms(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid faculty ID")
	}

	page, err := h.service.Programs(c.UserContext(), id, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// ListCourses handles GET /api/v1/faculties/:id/courses
func (h *FacultyHandler) ListCourses(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid faculty ID")
	}

	page, err := h.service.Courses(c.UserContext(), id, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// ListProfessors handles GET /api/v1/faculties/:id/professors
func (h *FacultyHandler) ListProfessors(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid faculty ID")
	}

	page, err := h.service.Professors(c.UserContext(), id, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}
