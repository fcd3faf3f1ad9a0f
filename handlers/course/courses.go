package course

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/query"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
)

// CourseHandler handles course-related requests
type CourseHandler struct {
	service   *services.CourseService
	validator *validation.Validator
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(service *services.CourseService) *CourseHandler {
	return &CourseHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateCourseRequest represents the request body for creating a course
type CreateCourseRequest struct {
	Code        string            `json:"codigo" validate:"required,min=1,max=20"`
	Name        string            `json:"nombre" validate:"required,min=2,max=150"`
	Description string            `json:"descripcion" validate:"omitempty,max=5000"`
	Credits     int               `json:"creditos" validate:"gte=0,lte=30"`
	FacultyID   uint              `json:"facultad_id" validate:"required"`
	Status      model.EstadoCurso `json:"estado" validate:"omitempty,enum"`
}

// UpdateCourseRequest represents the request body for updating a course
type UpdateCourseRequest struct {
	Code        *string           `json:"codigo" validate:"omitempty,min=1,max=20"`
	Name        *string           `json:"nombre" validate:"omitempty,min=2,max=150"`
	Description *string           `json:"descripcion" validate:"omitempty,max=5000"`
	Credits     *int              `json:"creditos" validate:"omitempty,gte=0,lte=30"`
	FacultyID   *uint             `json:"facultad_id" validate:"omitempty,gt=0"`
	Status      model.EstadoCurso `json:"estado" validate:"omitempty,enum"`
}

// ListCourses handles GET /api/v1/courses
func (h *CourseHandler) ListCourses(c *fiber.Ctx) error {
	facultyID, err := query.OptionalID(c, "facultad_id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	status, err := query.Enum[model.EstadoCurso](c, "estado")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	filter := services.CourseFilter{FacultyID: facultyID, Status: status, Search: query.Search(c)}
	page, err := h.service.List(c.UserContext(), filter, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// GetCourse handles GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	course, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, course)
}

// CreateCourse handles POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *fiber.Ctx) error {
	var req CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	course := model.Course{
		Code:        validation.SanitizeString(req.Code),
		Name:        validation.SanitizeString(req.Name),
		Description: validation.SanitizeString(req.Description),
		Credits:     req.Credits,
		FacultyID:   req.FacultyID,
		Status:      req.Status,
	}
	if err := h.service.Create(c.UserContext(), &course); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, course)
}

// UpdateCourse handles PUT /api/v1/courses/:id
func (h *CourseHandler) UpdateCourse(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	var req UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	course, err := h.service.Update(c.UserContext(), id, func(co *model.Course) error {
		if req.Code != nil {
			co.Code = validation.SanitizeString(*req.Code)
		}
		if req.Name != nil {
			co.Name = validation.SanitizeString(*req.Name)
		}
		if req.Description != nil {
			co.Description = validation.SanitizeString(*req.Description)
		}
		if req.Credits != nil {
			co.Credits = *req.Credits
		}
		if req.FacultyID != nil {
			co.FacultyID = *req.FacultyID
		}
		if req.Status != "" {
			co.Status = req.Status
		}
		return nil
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Course updated successfully", course)
}

// DeleteCourse handles DELETE /api/v1/courses/:id
// Cascades to the course's groups and everything recorded under them.
func (h *CourseHandler) DeleteCourse(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Course deleted successfully", nil)
}

// ListGroups handles GET /api/v1/courses/:id/groups
func (h *CourseHandler) ListGroups(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid course ID")
	}

	page, err := h.service.Groups(c.UserContext(), id, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}
