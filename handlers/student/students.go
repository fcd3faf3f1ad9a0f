package student

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/query"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
)

// StudentHandler handles student profile requests
type StudentHandler struct {
	service   *services.StudentService
	validator *validation.Validator
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(service *services.StudentService) *StudentHandler {
	return &StudentHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateStudentRequest represents the request body for creating a student profile
type CreateStudentRequest struct {
	UserID         uint                            `json:"usuario_id" validate:"required"`
	ProgramID      uint                            `json:"programa_id" validate:"required"`
	DocumentType   *string                         `json:"documento_tipo" validate:"omitempty,max=20"`
	DocumentNumber *string                         `json:"documento_numero" validate:"omitempty,max=30"`
	Status         model.EstadoAcademicoEstudiante `json:"estado_academico" validate:"omitempty,enum"`
}

// UpdateStudentRequest represents the request body for updating a student profile
type UpdateStudentRequest struct {
	ProgramID      *uint                           `json:"programa_id" validate:"omitempty,gt=0"`
	DocumentType   *string                         `json:"documento_tipo" validate:"omitempty,max=20"`
	DocumentNumber *string                         `json:"documento_numero" validate:"omitempty,max=30"`
	Status         model.EstadoAcademicoEstudiante `json:"estado_academico" validate:"omitempty,enum"`
}

// ListStudents handles GET /api/v1/students
func (h *StudentHandler) ListStudents(c *fiber.Ctx) error {
	programID, err := query.OptionalID(c, "programa_id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	status, err := query.Enum[model.EstadoAcademicoEstudiante](c, "estado_academico")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	filter := services.StudentFilter{ProgramID: programID, Status: status, Search: query.Search(c)}
	page, err := h.service.List(c.UserContext(), filter, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// GetStudent handles GET /api/v1/students/:id
func (h *StudentHandler) GetStudent(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	student, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, student)
}

// CreateStudent handles POST /api/v1/students
func (h *StudentHandler) CreateStudent(c *fiber.Ctx) error {
	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	student := model.Student{
		UserID:         req.UserID,
		ProgramID:      req.ProgramID,
		DocumentType:   validation.SanitizeOptional(req.DocumentType),
		DocumentNumber: validation.SanitizeOptional(req.DocumentNumber),
		Status:         req.Status,
	}
	if err := h.service.Create(c.UserContext(), &student); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, student)
}

// UpdateStudent handles PUT /api/v1/students/:id
func (h *StudentHandler) UpdateStudent(c *fiber.Ctx) error {
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

	student, err := h.service.Update(c.UserContext(), id, func(st *model.Student) error {
		if req.ProgramID != nil {
			st.ProgramID = *req.ProgramID
		}
		if req.DocumentType != nil {
			st.DocumentType = validation.SanitizeOptional(req.DocumentType)
		}
		if req.DocumentNumber != nil {
			st.DocumentNumber = validation.SanitizeOptional(req.DocumentNumber)
		}
		if req.Status != "" {
			st.Status = req.Status
		}
		return nil
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Student updated successfully", student)
}

// DeleteStudent handles DELETE /api/v1/students/:id
// Removes the profile with its enrollments, attendance, submissions and grades.
func (h *StudentHandler) DeleteStudent(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Student deleted successfully", nil)
}

// ListEnrollments handles GET /api/v1/students/:id/enrollments
func (h *StudentHandler) ListEnrollments(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	page, err := h.service.Enrollments(c.UserContext(), id, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}
