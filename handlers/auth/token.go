package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"
	authutil "github.com/sahilchouksey/academia-api/utils/auth"
	"github.com/sahilchouksey/academia-api/utils/middleware"
	"github.com/sahilchouksey/academia-api/utils/response"
)

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest optionally carries the refresh token to revoke with the access token
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshToken handles POST /api/v1/auth/refresh
// The old refresh token is revoked before new tokens are issued; each refresh token works once.
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(req); err != nil {
		return response.ValidationError(c, err)
	}

	claims, err := h.jwtManager.ValidateTokenOfType(req.RefreshToken, authutil.RefreshToken)
	if err != nil {
		return response.Unauthorized(c, "Invalid or expired refresh token")
	}

	ctx := c.UserContext()

	isRevoked, err := h.blacklistService.IsTokenRevoked(ctx, claims.ID)
	if err != nil {
		return response.InternalServerError(c, "Failed to check token status")
	}
	if isRevoked {
		return response.Unauthorized(c, "Token has been revoked")
	}

	// Load user to get current role and token version
	user, err := h.users.Get(ctx, claims.UserID)
	if err != nil {
		return response.Unauthorized(c, "User not found")
	}
	if !user.Active {
		return response.Forbidden(c, "Account is disabled")
	}
	if user.TokenVersion != claims.TokenVersion {
		return response.Unauthorized(c, "Token has been invalidated")
	}

	// the old token is spent before new ones exist; of two concurrent refreshes one wins
	consumed, err := h.blacklistService.ConsumeToken(ctx, claims.ID, user.ID, claims.Expiry(), authutil.ReasonTokenRefresh)
	if err != nil {
		return response.InternalServerError(c, "Failed to check token status")
	}
	if !consumed {
		return response.Unauthorized(c, "Refresh token has already been used")
	}

	tokens, err := h.issueTokens(user)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate tokens")
	}

	return response.Success(c, tokens)
}

// Logout handles POST /api/v1/auth/logout by blacklisting the access token and,
// when given, the refresh token
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	ctx := c.UserContext()
	if err := h.blacklistService.RevokeToken(ctx, claims.ID, claims.UserID, claims.Expiry(), authutil.ReasonLogout); err != nil {
		return response.InternalServerError(c, "Failed to logout")
	}

	var req LogoutRequest
	if len(c.Body()) > 0 && c.BodyParser(&req) == nil && req.RefreshToken != "" {
		refresh, err := h.jwtManager.ValidateTokenOfType(req.RefreshToken, authutil.RefreshToken)
		if err == nil && refresh.UserID == claims.UserID {
			if err := h.blacklistService.RevokeToken(ctx, refresh.ID, claims.UserID, refresh.Expiry(), authutil.ReasonLogout); err != nil {
				log.Printf("failed to revoke refresh token of user %d: %v", claims.UserID, err)
			}
		}
	}

	if err := h.blacklistService.CleanupExpiredTokens(ctx); err != nil {
		log.Printf("failed to prune expired revoked tokens: %v", err)
	}

	return response.SuccessWithMessage(c, "Successfully logged out", nil)
}

// LogoutAll handles POST /api/v1/auth/logout-all, invalidating every token of the user
func (h *AuthHandler) LogoutAll(c *fiber.Ctx) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}

	if err := h.blacklistService.RevokeAllUserTokens(c.UserContext(), userID); err != nil {
		return response.InternalServerError(c, "Failed to logout")
	}

	return response.SuccessWithMessage(c, "Logged out from all sessions", nil)
}
