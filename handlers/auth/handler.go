package auth

import (
	"time"

	"github.com/sahilchouksey/academia-api/model"
	"github.com/sahilchouksey/academia-api/services"
	authutil "github.com/sahilchouksey/academia-api/utils/auth"
	"github.com/sahilchouksey/academia-api/utils/middleware"
	"github.com/sahilchouksey/academia-api/utils/validation"
	"gorm.io/gorm"
)

// AuthHandler handles authentication-related requests
type AuthHandler struct {
	users                *services.UserService
	jwtManager           *authutil.JWTManager
	blacklistService     *authutil.BlacklistService
	bruteForceProtection *middleware.BruteForceProtection
	validator            *validation.Validator
}

// NewAuthHandler creates a new auth handler. bruteForceProtection may be nil.
func NewAuthHandler(db *gorm.DB, users *services.UserService, jwtManager *authutil.JWTManager, bruteForceProtection *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		users:                users,
		jwtManager:           jwtManager,
		blacklistService:     authutil.NewBlacklistService(db),
		bruteForceProtection: bruteForceProtection,
		validator:            validation.NewValidator(),
	}
}

// UserResponse represents user data in responses
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"nombre_completo"`
	Role      string    `json:"rol"`
	Active    bool      `json:"activo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TokenPair is an access and refresh token issued together
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"` // access token lifetime in seconds
}

func userResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.RoleName(),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// issueTokens signs a new access and refresh token for the user
func (h *AuthHandler) issueTokens(u *model.User) (TokenPair, error) {
	id := authutil.Identity{
		UserID:       u.ID,
		Email:        u.Email,
		Role:         u.RoleName(),
		TokenVersion: u.TokenVersion,
	}

	access, err := h.jwtManager.GenerateAccessToken(id)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := h.jwtManager.GenerateRefreshToken(id)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{
		AccessToken:  access.Token,
		RefreshToken: refresh.Token,
		ExpiresIn:    int(time.Until(access.ExpiresAt).Seconds()),
	}, nil
}
