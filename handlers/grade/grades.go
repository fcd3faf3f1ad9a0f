package grade

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/middleware"
	"github.com/sahilchouksey/academia-api/utils/query"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
)

// GradeHandler handles grade requests
type GradeHandler struct {
	service   *services.GradeService
	validator *validation.Validator
}

// NewGradeHandler creates a new grade handler
func NewGradeHandler(service *services.GradeService) *GradeHandler {
	return &GradeHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateGradeRequest represents the request body for grading a submission.
// The score has no upper bound; it may exceed the activity's max score.
type CreateGradeRequest struct {
	SubmissionID uint     `json:"entrega_id" validate:"required"`
	Score        *float64 `json:"puntaje" validate:"required,gte=0"`
	Feedback     *string  `json:"retroalimentacion" validate:"omitempty,max=10000"`
}

// UpdateGradeRequest represents the request body for regrading
type UpdateGradeRequest struct {
	Score    *float64 `json:"puntaje" validate:"omitempty,gte=0"`
	Feedback *string  `json:"retroalimentacion" validate:"omitempty,max=10000"`
}

// ListGrades handles GET /api/v1/grades
func (h *GradeHandler) ListGrades(c *fiber.Ctx) error {
	activityID, err := query.OptionalID(c, "actividad_id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	enrollmentID, err := query.OptionalID(c, "inscripcion_id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	filter := services.GradeFilter{ActivityID: activityID, EnrollmentID: enrollmentID}
	if role, _ := middleware.GetUserRole(c); role == model.RoleStudent {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			return response.Unauthorized(c, "Not authenticated")
		}
		filter.UserID = userID
	}
	page, err := h.service.List(c.UserContext(), filter, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// GetGrade handles GET /api/v1/grades/:id
func (h *GradeHandler) GetGrade(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid grade ID")
	}

	if role, _ := middleware.GetUserRole(c); role == model.RoleStudent {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			return response.Unauthorized(c, "Not authenticated")
		}
		owned, err := h.service.BelongsToUser(c.UserContext(), id, userID)
		if err != nil {
			return response.FromError(c, err)
		}
		if !owned {
			return response.Forbidden(c, "You can only see your own grades")
		}
	}

	grade, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, grade)
}

// CreateGrade handles POST /api/v1/grades
// A submission is graded once; use PUT to change the grade.
func (h *GradeHandler) CreateGrade(c *fiber.Ctx) error {
	var req CreateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	grade := model.Grade{
		SubmissionID: req.SubmissionID,
		Score:        *req.Score,
		Feedback:     validation.SanitizeOptional(req.Feedback),
	}
	if err := h.service.Create(c.UserContext(), &grade); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, grade)
}

// UpdateGrade handles PUT /api/v1/grades/:id
func (h *GradeHandler) UpdateGrade(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid grade ID")
	}

	change, ok, err := h.parseChange(c)
	if !ok {
		return err
	}

	grade, err := h.service.Update(c.UserContext(), id, change)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Grade updated successfully", grade)
}

// UpdateSubmissionGrade handles PUT /api/v1/submissions/:id/grade
func (h *GradeHandler) UpdateSubmissionGrade(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid submission ID")
	}

	change, ok, err := h.parseChange(c)
	if !ok {
		return err
	}

	grade, err := h.service.UpdateForSubmission(c.UserContext(), id, change)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Grade updated successfully", grade)
}

// DeleteGrade handles DELETE /api/v1/grades/:id
func (h *GradeHandler) DeleteGrade(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid grade ID")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Grade deleted successfully", nil)
}

// parseChange reads an UpdateGradeRequest. When ok is false the error response
// has already been written and err is what the handler returns.
func (h *GradeHandler) parseChange(c *fiber.Ctx) (services.GradeChange, bool, error) {
	var req UpdateGradeRequest
	if err := c.BodyParser(&req); err != nil {
		return services.GradeChange{}, false, response.BadRequest(c, "Invalid request body")
	}
	if err := h.validator.ValidateStruct(req); err != nil {
		return services.GradeChange{}, false, response.ValidationError(c, err)
	}
	return services.GradeChange{
		Score:    req.Score,
		Feedback: validation.SanitizeOptional(req.Feedback),
	}, true, nil
}
