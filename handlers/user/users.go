package user

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/middleware"
	"github.com/sahilchouksey/academia-api/utils/query"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
)

// UserHandler handles user account management
type UserHandler struct {
	service   *services.UserService
	validator *validation.Validator
}

// NewUserHandler creates a new user handler
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"nombre_completo" validate:"required,min=2,max=200"`
	RoleID   uint   `json:"rol_id" validate:"required"`
	Active   *bool  `json:"activo"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=8,max=72"`
	FullName *string `json:"nombre_completo" validate:"omitempty,min=2,max=200"`
	RoleID   *uint   `json:"rol_id" validate:"omitempty,gt=0"`
	Active   *bool   `json:"activo"`
}

// ListUsers handles GET /api/v1/users
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	roleID, err := query.OptionalID(c, "rol_id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	active, err := query.Bool(c, "activo")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	filter := services.UserFilter{RoleID: roleID, Active: active, Search: query.Search(c)}
	page, err := h.service.List(c.UserContext(), filter, query.List(c))
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Paged(c, page)
}

// GetUser handles GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	user, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, user)
}

// CreateUser handles POST /api/v1/users
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if ok, errs := validation.ValidatePassword(req.Password); !ok {
		return response.ErrorWithDetails(c, fiber.StatusUnprocessableEntity,
			"Password does not meet requirements", "VALIDATION_ERROR", strings.Join(errs, "; "))
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	user, err := h.service.Create(c.UserContext(), services.NewUser{
		Email:    validation.SanitizeString(req.Email),
		Password: req.Password,
		FullName: validation.SanitizeString(req.FullName),
		RoleID:   req.RoleID,
		Active:   active,
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.Created(c, user)
}

// UpdateUser handles PUT /api/v1/users/:id
// A new password signs the user out of every session.
func (h *UserHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	var password string
	if req.Password != nil {
		if ok, errs := validation.ValidatePassword(*req.Password); !ok {
			return response.ErrorWithDetails(c, fiber.StatusUnprocessableEntity,
				"Password does not meet requirements", "VALIDATION_ERROR", strings.Join(errs, "; "))
		}
		password = *req.Password
	}

	user, err := h.service.Update(c.UserContext(), id, password, func(u *model.User) error {
		if req.Email != nil {
			u.Email = validation.SanitizeString(*req.Email)
		}
		if req.FullName != nil {
			u.FullName = validation.SanitizeString(*req.FullName)
		}
		if req.RoleID != nil {
			u.RoleID = *req.RoleID
		}
		if req.Active != nil {
			u.Active = *req.Active
		}
		return nil
	})
	if err != nil {
		return response.FromError(c, err)
	}

	return response.SuccessWithMessage(c, "User updated successfully", user)
}

// DeleteUser handles DELETE /api/v1/users/:id
// Removes the user's student or professor profile with it.
func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := query.ID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	if callerID, ok := middleware.GetUserID(c); ok && callerID == id {
		return response.BadRequest(c, "You cannot delete your own account")
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return response.FromError(c, err)
	}
	return response.SuccessWithMessage(c, "User deleted successfully", nil)
}
