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

// MessageRequest represents the request body for creating a message.
// HTML in content is reduced to plain text.
type MessageRequest struct {
	Sender    string             `json:"sender" validate:"required,min=1,max=200"`
	Recipient string             `json:"recipient" validate:"omitempty,max=200"`
	Subject   string             `json:"subject" validate:"required,min=1,max=255"`
	Content   string             `json:"content" validate:"required,max=20000"`
	Priority  model.PriorityEnum `json:"priority" validate:"omitempty,enum"`
	SentAt    *time.Time         `json:"sent_at"`
}

// UpdateMessageRequest represents the request body for updating a message
type UpdateMessageRequest struct {
	Subject  *string            `json:"subject" validate:"omitempty,min=1,max=255"`
	Content  *string            `json:"content" validate:"omitempty,min=1,max=20000"`
	Priority model.PriorityEnum `json:"priority" validate:"omitempty,enum"`
	Read     *bool              `json:"read"`
}

// MarkReadRequest is the body of PATCH /dashboard/messages/:id/read. Read defaults to true.
type MarkReadRequest struct {
	Read *bool `json:"read"`
}

// ListMessages handles GET /api/v1/dashboard/messages
func (h *DashboardHandler) ListMessages(c *fiber.Ctx) error {
	priority, err := query.Enum[model.PriorityEnum](c, "priority")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	unread, err := query.Bool(c, "unread")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	filter := services.DashboardMessageFilter{Priority: priority, Unread: unread != nil && *unread}
	page, err := h.service.ListMessages(c.UserContext(), filter, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// GetMessage handles GET /api/v1/dashboard/messages/:id
func (h *DashboardHandler) GetMessage(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid message ID")
	}

	message, err := h.service.GetMessage(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, message)
}

// CreateMessage handles POST /api/v1/dashboard/messages
func (h *DashboardHandler) CreateMessage(c *fiber.Ctx) error {
	var req MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	message := model.DashboardMessage{
		Sender:    validation.SanitizeString(req.Sender),
		Recipient: validation.SanitizeString(req.Recipient),
		Subject:   validation.SanitizeString(req.Subject),
		Content:   req.Content,
		Priority:  req.Priority,
	}
	if req.SentAt != nil {
		message.SentAt = *req.SentAt
	}
	if err := h.service.CreateMessage(c.UserContext(), &message); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, message)
}

// UpdateMessage handles PUT /api/v1/dashboard/messages/:id
func (h *DashboardHandler) UpdateMessage(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid message ID")
	}

	var req UpdateMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	message, err := h.service.UpdateMessage(c.UserContext(), id, func(m *model.DashboardMessage) error {
		if req.Subject != nil {
			m.Subject = validation.SanitizeString(*req.Subject)
		}
		if req.Content != nil {
			m.Content = *req.Content
		}
		if req.Priority != "" {
			m.Priority = req.Priority
		}
		if req.Read != nil {
			m.Read = *req.Read
		}
		return nil
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Message updated successfully", message)
}

// MarkRead handles PATCH /api/v1/dashboard/messages/:id/read
func (h *DashboardHandler) MarkRead(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid message ID")
	}

	read := true
	if len(c.Body()) > 0 {
		var req MarkReadRequest
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
		if req.Read != nil {
			read = *req.Read
		}
	}

	if err := h.service.MarkMessageRead(c.UserContext(), id, read); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Message updated successfully", fiber.Map{"id": id, "read": read})
}

// DeleteMessage handles DELETE /api/v1/dashboard/messages/:id
func (h *DashboardHandler) DeleteMessage(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid message ID")
	}

	if err := h.service.DeleteMessage(c.UserContext(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Message deleted successfully", nil)
}
