package auth

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/academia-api/services"
	"github.com/sahilchouksey/academia-api/utils/response"
)

// LoginRequest represents a user login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	User UserResponse `json:"user"`
	TokenPair
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	ip := c.IP()
	ctx := c.UserContext()

	user, err := h.users.Authenticate(ctx, req.Email, req.Password)
	switch {
	case errors.Is(err, services.ErrInvalidCredentials):
		// Record failed attempt even if user not found
		h.bruteForceProtection.RecordFailedAttempt(ctx, ip, req.Email)
		return response.Unauthorized(c, "Invalid email or password")
	case errors.Is(err, services.ErrAccountDisabled):
		return response.Forbidden(c, "Account is disabled")
	case err != nil:
		return response.FromError(c, err)
	}

	// Clear failed attempts on successful login
	h.bruteForceProtection.RecordSuccessfulAttempt(ctx, ip)

	tokens, err := h.issueTokens(user)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate tokens")
	}

	return response.Success(c, LoginResponse{User: userResponse(user), TokenPair: tokens})
}
