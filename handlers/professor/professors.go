package professor

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/query"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
)

// ProfessorHandler handles professor profile requests
type ProfessorHandler struct {
	service   *services.ProfessorService
	validator *validation.Validator
}

// NewProfessorHandler creates a new professor handler
func NewProfessorHandler(service *services.ProfessorService) *ProfessorHandler {
	return &ProfessorHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateProfessorRequest represents the request body for creating a professor profile
type CreateProfessorRequest struct {
	UserID         uint    `json:"usuario_id" validate:"required"`
	FacultyID      *uint   `json:"facultad_id" validate:"omitempty,gt=0"`
	DocumentType   *string `json:"documento_tipo" validate:"omitempty,max=20"`
	DocumentNumber *string `json:"documento_numero" validate:"omitempty,max=30"`
	AcademicTitle  *string `json:"titulo_academico" validate:"omitempty,max=100"`
}

// UpdateProfessorRequest represents the request body for updating a professor profile.
// ClearFaculty detaches the professor from its faculty.
type UpdateProfessorRequest struct {
	FacultyID      *uint   `json:"facultad_id" validate:"omitempty,gt=0"`
	ClearFaculty   bool    `json:"quitar_facultad" validate:"excluded_with=FacultyID"`
	DocumentType   *string `json:"documento_tipo" validate:"omitempty,max=20"`
	DocumentNumber *string `json:"documento_numero" validate:"omitempty,max=30"`
	AcademicTitle  *string `json:"titulo_academico" validate:"omitempty,max=100"`
}

// ListProfessors handles GET /api/v1/professors
func (h *ProfessorHandler) ListProfessors(c *fiber.Ctx) error {
	facultyID, err := query.OptionalID(c, "facultad_id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	filter := services.ProfessorFilter{FacultyID: facultyID, Search: query.Search(c)}
	page, err := h.service.List(c.UserContext(), filter, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// GetProfessor handles GET /api/v1/professors/:id
func (h *ProfessorHandler) GetProfessor(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid professor ID")
	}

	professor, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, professor)
}

// CreateProfessor handles POST /api/v1/professors
func (h *ProfessorHandler) CreateProfessor(c *fiber.Ctx) error {
	var req CreateProfessorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	professor := model.Professor{
		UserID:         req.UserID,
		FacultyID:      req.FacultyID,
		DocumentType:   validation.SanitizeOptional(req.DocumentType),
		DocumentNumber: validation.SanitizeOptional(req.DocumentNumber),
		AcademicTitle:  validation.SanitizeOptional(req.AcademicTitle),
	}
	if err := h.service.Create(c.UserContext(), &professor); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, professor)
}

// UpdateProfessor handles PUT /api/v1/professors/:id
func (h *ProfessorHandler) UpdateProfessor(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid professor ID")
	}

	var req UpdateProfessorRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	professor, err := h.service.Update(c.UserContext(), id, func(p *model.Professor) error {
		switch {
		case req.ClearFaculty:
			p.FacultyID = nil
		case req.FacultyID != nil:
			p.FacultyID = req.FacultyID
		}
		if req.DocumentType != nil {
			p.DocumentType = validation.SanitizeOptional(req.DocumentType)
		}
		if req.DocumentNumber != nil {
			p.DocumentNumber = validation.SanitizeOptional(req.DocumentNumber)
		}
		if req.AcademicTitle != nil {
			p.AcademicTitle = validation.SanitizeOptional(req.AcademicTitle)
		}
		return nil
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Professor updated successfully", professor)
}

// DeleteProfessor handles DELETE /api/v1/professors/:id
// Refused while the professor teaches any group.
func (h *ProfessorHandler) DeleteProfessor(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid professor ID")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Professor deleted successfully", nil)
}

// ListGroups handles GET /api/v1/professors/:id/groups
func (h *ProfessorHandler) ListGroups(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid professor ID")
	}

	page, err := h.service.Groups(c.UserContext(), id, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}
