package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testManager() *JWTManager {
	return NewJWTManager(JWTConfig{Secret: "test-secret", Issuer: "academia-api"})
}

func TestGenerateAndValidate(t *testing.T) {
	m := testManager()
	id := Identity{UserID: 7, Email: "prof@example.com", Role: "profesor", TokenVersion: 2}

	access, err := m.GenerateAccessToken(id)
	if err != nil {
		t.Fatal(err)
	}
	if access.JTI == "" || access.ExpiresAt.Before(time.Now()) {
		t.Fatalf("unexpected issued token: %+v", access)
	}

	claims, err := m.ValidateTokenOfType(access.Token, AccessToken)
	if err != nil {
		t.Fatalf("ValidateTokenOfType: %v", err)
	}
	if claims.UserID != 7 || claims.Role != "profesor" || claims.TokenVersion != 2 || claims.ID != access.JTI {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if !claims.Expiry().Equal(access.ExpiresAt.Truncate(time.Second)) {
		t.Errorf("Expiry() = %v, want %v", claims.Expiry(), access.ExpiresAt)
	}
}

func TestTokenTypeIsChecked(t *testing.T) {
	m := testManager()
	refresh, err := m.GenerateRefreshToken(Identity{UserID: 1, Email: "a@example.com", Role: "admin"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := m.ValidateTokenOfType(refresh.Token, AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh token accepted as access token: %v", err)
	}
	if _, err := m.ValidateTokenOfType(refresh.Token, RefreshToken); err != nil {
		t.Errorf("refresh token rejected: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	m := testManager()
	token, err := m.GenerateAccessToken(Identity{UserID: 1})
	if err != nil {
		t.Fatal(err)
	}

	other := NewJWTManager(JWTConfig{Secret: "another-secret", Issuer: "academia-api"})
	if _, err := other.ValidateToken(token.Token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("token signed with another secret: %v", err)
	}

	wrongIssuer := NewJWTManager(JWTConfig{Secret: "test-secret", Issuer: "someone-else"})
	if _, err := wrongIssuer.ValidateToken(token.Token); err == nil {
		t.Error("token from another issuer accepted")
	}

	expired := NewJWTManager(JWTConfig{Secret: "test-secret", Expiry: -time.Minute})
	old, err := expired.GenerateAccessToken(Identity{UserID: 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := expired.ValidateToken(old.Token); !errors.Is(err, ErrExpiredToken) {
		t.Errorf("expired token: %v", err)
	}

	if _, err := m.ValidateToken("not-a-token"); err == nil {
		t.Error("garbage accepted")
	}
}

func TestPasswordHashing(t *testing.T) {
	for _, weak := range []string{"short", "12345678", strings.Repeat("a", 73)} {
		if _, err := HashPassword(weak); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("HashPassword(%q): got %v, want ErrWeakPassword", weak, err)
		}
	}

	hash, err := HashPassword("correcto123")
	if err != nil {
		t.Fatal(err)
	}
	if err := VerifyPassword(hash, "correcto123"); err != nil {
		t.Errorf("VerifyPassword: %v", err)
	}
	if err := VerifyPassword(hash, "incorrecto"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("wrong password: %v", err)
	}
}
