package role

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/query"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
)

// RoleHandler handles role requests
type RoleHandler struct {
	service   *services.RoleService
	validator *validation.Validator
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(service *services.RoleService) *RoleHandler {
	return &RoleHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// RoleRequest is the body for creating and updating a role
type RoleRequest struct {
	Name        string  `json:"nombre" validate:"required,min=2,max=50"`
	Description *string `json:"descripcion" validate:"omitempty,max=1000"`
}

// ListRoles handles GET /api/v1/roles
func (h *RoleHandler) ListRoles(c *fiber.Ctx) error {
	page, err := h.service.List(c.UserContext(), query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// GetRole handles GET /api/v1/roles/:id
func (h *RoleHandler) GetRole(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID")
	}

	role, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, role)
}

// CreateRole handles POST /api/v1/roles
func (h *RoleHandler) CreateRole(c *fiber.Ctx) error {
	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	role := model.Role{Name: validation.SanitizeString(req.Name)}
	if req.Description != nil {
		role.Description = validation.SanitizeString(*req.Description)
	}
	if err := h.service.Create(c.UserContext(), &role); err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, role)
}

// UpdateRole handles PUT /api/v1/roles/:id
func (h *RoleHandler) UpdateRole(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID")
	}

	var req RoleRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	role, err := h.service.Update(c.UserContext(), id, func(r *model.Role) error {
		r.Name = validation.SanitizeString(req.Name)
		if req.Description != nil {
			r.Description = validation.SanitizeString(*req.Description)
		}
		return nil
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "Role updated successfully", role)
}

// DeleteRole handles DELETE /api/v1/roles/:id
func (h *RoleHandler) DeleteRole(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "Role deleted successfully", nil)
}

// ListUsers handles GET /api/v1/roles/:id/users
func (h *RoleHandler) ListUsers(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID")
	}

	page, err := h.service.Users(c.UserContext(), id, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}
