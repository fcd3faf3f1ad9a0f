package enrollment

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/query"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
)

// EnrollmentHandler handles enrollment requests
type EnrollmentHandler struct {
	service   *services.EnrollmentService
	validator *validation.Validator
}

// NewEnrollmentHandler creates a new enrollment handler
func NewEnrollmentHandler(service *services.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateEnrollmentRequest represents the request body for enrolling a student
type CreateEnrollmentRequest struct {
	StudentID  uint       `json:"estudiante_id" validate:"required"`
	GroupID    uint       `json:"grupo_id" validate:"required"`
	EnrolledAt *time.Time `json:"fecha_inscripcion"`
}

// UpdateEnrollmentRequest represents the request body for moving an enrollment
type UpdateEnrollmentRequest struct {
	StudentID  *uint      `json:"estudiante_id" validate:"omitempty,gt=0"`
	GroupID    *uint      `json:"grupo_id" validate:"omitempty,gt=0"`
	EnrolledAt *time.Time `json:"fecha_inscripcion"`
}

// ListEnrollments handles GET /api/v1/enrollments
func (h *EnrollmentHandler) ListEnrollments(c *fiber.Ctx) error {
	studentID, err := query.OptionalID(c, "estudiante_id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	groupID, err := query.OptionalID(c, "grupo_id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	filter := services.EnrollmentFilter{StudentID: studentID, GroupID: groupID}
	page, err := h.service.List(c.UserContext(), filter, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// GetEnrollment handles GET /api/v1/enrollments/:id
func (h *EnrollmentHandler) GetEnrollment(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid enrollment ID")
	}

	enrollment, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, enrollment)
}

// CreateEnrollment handles POST /api/v1/enrollments
// Fails when the group is full or the student is already enrolled.
func (h *EnrollmentHandler) CreateEnrollment(c *fiber.Ctx) error {
	var req CreateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	enrollment := model.Enrollment{StudentID: req.StudentID, GroupID: req.GroupID}
	if req.EnrolledAt != nil {
		enrollment.EnrolledAt = *req.EnrolledAt
	}
	if err := h.service.Create(c.UserContext(), &enrollment); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, enrollment)
}

// UpdateEnrollment handles PUT /api/v1/enrollments/:id
func (h *EnrollmentHandler) UpdateEnrollment(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid enrollment ID")
	}

	var req UpdateEnrollmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	enrollment, err := h.service.Update(c.UserContext(), id, func(e *model.Enrollment) error {
		if req.StudentID != nil {
			e.StudentID = *req.StudentID
		}
		if req.GroupID != nil {
			e.GroupID = *req.GroupID
		}
		if req.EnrolledAt != nil {
			e.EnrolledAt = *req.EnrolledAt
		}
		return nil
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Enrollment updated successfully", enrollment)
}

// DeleteEnrollment handles DELETE /api/v1/enrollments/:id
func (h *EnrollmentHandler) DeleteEnrollment(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid enrollment ID")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Enrollment deleted successfully", nil)
}

// ListAttendance handles GET /api/v1/enrollments/:id/attendance
func (h *EnrollmentHandler) ListAttendance(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid enrollment ID")
	}

	records, err := h.service.Attendance(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, records)
}
