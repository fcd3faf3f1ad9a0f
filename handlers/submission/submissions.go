package submission

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/middleware"
	"github.com/sahilchouksey/academia-api/utils/pdfvalidation"
	"github.com/sahilchouksey/academia-api/utils/query"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
)

// SubmissionHandler handles submission requests. Students only see and write
// submissions of their own enrollments, and cannot change them once graded.
type SubmissionHandler struct {
	submissions *services.SubmissionService
	enrollments *services.EnrollmentService
	validator   *validation.Validator
	limits      pdfvalidation.PDFLimits
}

// NewSubmissionHandler creates a new submission handler. maxUploadMB overrides
// the default attachment size limit when positive.
func NewSubmissionHandler(submissions *services.SubmissionService, enrollments *services.EnrollmentService, maxUploadMB int) *SubmissionHandler {
	limits := pdfvalidation.SubmissionLimits
	if maxUploadMB > 0 {
		limits.MaxFileSizeMB = maxUploadMB
	}
	return &SubmissionHandler{
		submissions: submissions,
		enrollments: enrollments,
		validator:   validation.NewValidator(),
		limits:      limits,
	}
}

// CreateSubmissionRequest represents the request body for a submission.
// fecha_entrega is only honoured for staff; students deliver now.
type CreateSubmissionRequest struct {
	ActivityID   uint       `json:"actividad_id" validate:"required"`
	EnrollmentID uint       `json:"inscripcion_id" validate:"required"`
	Content      string     `json:"contenido" validate:"omitempty,max=50000"`
	SubmittedAt  *time.Time `json:"fecha_entrega"`
}

// UpdateSubmissionRequest represents the request body for updating a submission
type UpdateSubmissionRequest struct {
	Content     *string    `json:"contenido" validate:"omitempty,max=50000"`
	SubmittedAt *time.Time `json:"fecha_entrega"`
}

// ListSubmissions handles GET /api/v1/submissions
func (h *SubmissionHandler) ListSubmissions(c *fiber.Ctx) error {
	activityID, err := query.OptionalID(c, "actividad_id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	enrollmentID, err := query.OptionalID(c, "inscripcion_id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	filter := services.SubmissionFilter{ActivityID: activityID, EnrollmentID: enrollmentID}
	if isStudent(c) {
		userID, ok := middleware.GetUserID(c)
		if !ok {
			return response.Unauthorized(c, "Not authenticated")
		}
		filter.UserID = userID
	}
	page, err := h.submissions.List(c.UserContext(), filter, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// GetSubmission handles GET /api/v1/submissions/:id
func (h *SubmissionHandler) GetSubmission(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid submission ID")
	}

	if ok, err := h.ownsSubmission(c, id); err != nil || !ok {
		return h.denied(c, err)
	}

	submission, err := h.submissions.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, submission)
}

// CreateSubmission handles POST /api/v1/submissions
func (h *SubmissionHandler) CreateSubmission(c *fiber.Ctx) error {
	var req CreateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	allowed, err := h.canWrite(c, req.EnrollmentID)
	if err != nil {
		return response.FromError(c, err)
	}
	if !allowed {
		return response.Forbidden(c, "You can only submit for your own enrollments")
	}

	submission := model.Submission{
		ActivityID:   req.ActivityID,
		EnrollmentID: req.EnrollmentID,
		Content:      validation.SanitizeString(req.Content),
	}
	if at := deliveryTime(c, req.SubmittedAt); at != nil {
		submission.SubmittedAt = *at
	}
	if err := h.submissions.Create(c.UserContext(), &submission); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, submission)
}

// UpdateSubmission handles PUT /api/v1/submissions/:id
func (h *SubmissionHandler) UpdateSubmission(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid submission ID")
	}

	var req UpdateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if ok, err := h.ownsSubmission(c, id); err != nil || !ok {
		return h.denied(c, err)
	}

	submittedAt := deliveryTime(c, req.SubmittedAt)
	submission, err := h.submissions.Update(c.UserContext(), id, writeMode(c), func(s *model.Submission) error {
		if req.Content != nil {
			s.Content = validation.SanitizeString(*req.Content)
		}
		if submittedAt != nil {
			s.SubmittedAt = *submittedAt
		}
		return nil
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Submission updated successfully", submission)
}

// DeleteSubmission handles DELETE /api/v1/submissions/:id
func (h *SubmissionHandler) DeleteSubmission(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid submission ID")
	}

	if ok, err := h.ownsSubmission(c, id); err != nil || !ok {
		return h.denied(c, err)
	}

	if err := h.submissions.Delete(c.UserContext(), id, writeMode(c)); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Submission deleted successfully", nil)
}

// UploadAttachment handles POST /api/v1/submissions/:id/attachment
// Expects a multipart form with a PDF in the "file" field.
func (h *SubmissionHandler) UploadAttachment(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid submission ID")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}

	content, result, err := pdfvalidation.ReadPDFFile(file, h.limits)
	if err != nil {
		log.Printf("failed to read upload for submission %d: %v", id, err)
		return response.BadRequest(c, "Failed to read uploaded file")
	}
	if !result.Valid {
		return response.ErrorWithDetails(c, fiber.StatusUnprocessableEntity,
			"Invalid PDF file", "INVALID_FILE", result.Error)
	}

	if ok, err := h.ownsSubmission(c, id); err != nil || !ok {
		return h.denied(c, err)
	}

	submission, err := h.submissions.Attach(c.UserContext(), id, writeMode(c), services.Attachment{
		FileName:    file.Filename,
		ContentType: "application/pdf",
		Data:        content,
		Pages:       result.PageCount,
	})
	if err != nil {
		if errors.Is(err, services.ErrAttachmentsDisabled) {
			return response.ServiceUnavailable(c, "File uploads are not configured")
		}
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Attachment uploaded successfully", submission)
}

// GetGrade handles GET /api/v1/submissions/:id/grade
func (h *SubmissionHandler) GetGrade(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid submission ID")
	}

	if ok, err := h.ownsSubmission(c, id); err != nil || !ok {
		return h.denied(c, err)
	}

	grade, err := h.submissions.Grade(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, grade)
}

func isStudent(c *fiber.Ctx) bool {
	role, _ := middleware.GetUserRole(c)
	return role == model.RoleStudent
}

// writeMode is OwnerWrite for students: their graded submissions are frozen
func writeMode(c *fiber.Ctx) services.WriteMode {
	return writeModeFor(isStudent(c))
}

func writeModeFor(student bool) services.WriteMode {
	if student {
		return services.OwnerWrite
	}
	return services.StaffWrite
}

// deliveryTime is the requested delivery time when staff set it. Students
// cannot choose it.
func deliveryTime(c *fiber.Ctx, requested *time.Time) *time.Time {
	return deliveryTimeFor(isStudent(c), requested)
}

func deliveryTimeFor(student bool, requested *time.Time) *time.Time {
	if student {
		return nil
	}
	return requested
}

// canWrite reports whether the caller may write submissions of the enrollment.
// Staff may write any; students only their own.
func (h *SubmissionHandler) canWrite(c *fiber.Ctx, enrollmentID uint) (bool, error) {
	if !isStudent(c) {
		return true, nil
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return false, nil
	}
	return h.enrollments.BelongsToUser(c.UserContext(), enrollmentID, userID)
}

// ownsSubmission reports whether the caller may see or change the submission
func (h *SubmissionHandler) ownsSubmission(c *fiber.Ctx, id uint) (bool, error) {
	if !isStudent(c) {
		return true, nil
	}
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return false, nil
	}
	return h.submissions.BelongsToUser(c.UserContext(), id, userID)
}

func (h *SubmissionHandler) denied(c *fiber.Ctx, err error) error {
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Forbidden(c, "You can only access your own submissions")
}
