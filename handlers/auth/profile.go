package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/middleware"
	"github.com/sahilchouksey/academia-api/utils/response"
	"github.com/sahilchouksey/academia-api/utils/validation"
)

// UpdateProfileRequest represents a profile update request
type UpdateProfileRequest struct {
	FullName string `json:"nombre_completo" validate:"required,min=2,max=200"`
}

// ChangePasswordRequest represents a password change of the current user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72,nefield=CurrentPassword"`
}

// GetProfile handles GET /api/v1/profile
func (h *AuthHandler) GetProfile(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}

	return response.Success(c, userResponse(user))
}

// UpdateProfile handles PUT /api/v1/profile
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if _, err := h.users.Update(c.UserContext(), userID, "", func(u *model.User) error {
		u.FullName = validation.SanitizeString(req.FullName)
		return nil
	}); err != nil {
		return response.FromError(c, err)
	}

	user, err := h.users.Get(c.UserContext(), userID)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, userResponse(user))
}

// ChangePassword handles POST /api/v1/auth/change-password
// Every token issued before is invalidated; a fresh pair is returned.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "Not authenticated")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	if ok, errs := validation.ValidatePassword(req.NewPassword); !ok {
		return response.ErrorWithDetails(c, fiber.StatusUnprocessableEntity,
			"Password does not meet requirements", "VALIDATION_ERROR", strings.Join(errs, "; "))
	}

	ctx := c.UserContext()
	if _, err := h.users.Authenticate(ctx, user.Email, req.CurrentPassword); err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return response.Unauthorized(c, "Current password is incorrect")
		}
		return response.FromError(c, err)
	}

	if _, err := h.users.Update(ctx, user.ID, req.NewPassword, func(*model.User) error { return nil }); err != nil {
		return response.FromError(c, err)
	}

	updated, err := h.users.Get(ctx, user.ID)
	if err != nil {
		return response.FromError(c, err)
	}
	tokens, err := h.issueTokens(updated)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate tokens")
	}

	return response.SuccessWithMessage(c, "Password changed successfully", tokens)
}
