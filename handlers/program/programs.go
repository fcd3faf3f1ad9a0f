package program

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/query"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
)

// ProgramHandler handles academic program requests
type ProgramHandler struct {
	service   *services.ProgramService
	validator *validation.Validator
}

// NewProgramHandler creates a new program handler
func NewProgramHandler(service *services.ProgramService) *ProgramHandler {
	return &ProgramHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateProgramRequest represents the request body for creating a program
type CreateProgramRequest struct {
	Name          string               `json:"nombre" validate:"required,min=2,max=150"`
	Code          string               `json:"codigo" validate:"required,min=1,max=20"`
	FacultyID     uint                 `json:"facultad_id" validate:"required"`
	DurationTerms *int                 `json:"duracion_semestres" validate:"omitempty,gt=0,lte=20"`
	Status        model.EstadoPrograma `json:"estado" validate:"omitempty,enum"`
}

// UpdateProgramRequest represents the request body for updating a program
type UpdateProgramRequest struct {
	Name          *string              `json:"nombre" validate:"omitempty,min=2,max=150"`
	Code          *string              `json:"codigo" validate:"omitempty,min=1,max=20"`
	FacultyID     *uint                `json:"facultad_id" validate:"omitempty,gt=0"`
	DurationTerms *int                 `json:"duracion_semestres" validate:"omitempty,gt=0,lte=20"`
	Status        model.EstadoPrograma `json:"estado" validate:"omitempty,enum"`
}

// ListPrograms handles GET /api/v1/programs
func (h *ProgramHandler) ListPrograms(c *fiber.Ctx) error {
	facultyID, err := query.OptionalID(c, "facultad_id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	status, err := query.Enum[model.EstadoPrograma](c, "estado")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	filter := services.ProgramFilter{FacultyID: facultyID, Status: status, Search: query.Search(c)}
	page, err := h.service.List(c.UserContext(), filter, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// GetProgram handles GET /api/v1/programs/:id
func (h *ProgramHandler) GetProgram(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid program ID")
	}

	program, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, program)
}

// CreateProgram handles POST /api/v1/programs
func (h *ProgramHandler) CreateProgram(c *fiber.Ctx) error {
	var req CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	program := model.AcademicProgram{
		Name:          validation.SanitizeString(req.Name),
		Code:          validation.SanitizeString(req.Code),
		FacultyID:     req.FacultyID,
		DurationTerms: req.DurationTerms,
		Status:        req.Status,
	}
	if err := h.service.Create(c.UserContext(), &program); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, program)
}

// UpdateProgram handles PUT /api/v1/programs/:id
func (h *ProgramHandler) UpdateProgram(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid program ID")
	}

	var req UpdateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	program, err := h.service.Update(c.UserContext(), id, func(p *model.AcademicProgram) error {
		if req.Name != nil {
			p.Name = validation.SanitizeString(*req.Name)
		}
		if req.Code != nil {
			p.Code = validation.SanitizeString(*req.Code)
		}
		if req.FacultyID != nil {
			p.FacultyID = *req.FacultyID
		}
		if req.DurationTerms != nil {
			p.DurationTerms = req.DurationTerms
		}
		if req.Status != "" {
			p.Status = req.Status
		}
		return nil
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Program updated successfully", program)
}

// DeleteProgram handles DELETE /api/v1/programs/:id
func (h *ProgramHandler) DeleteProgram(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid program ID")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Program deleted successfully", nil)
}

// ListStudents handles GET /api/v1/programs/:id/students
func (h *ProgramHandler) ListStudents(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid program ID")
	}

	page, err := h.service.Students(c.UserContext(), id, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}
