package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilchouksey/academia-api/utils/validation"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrWeakPassword     = errors.New("password does not meet the requirements")
	ErrPasswordMismatch = errors.New("password does not match")
)

// BcryptCost is the work factor of stored password hashes
const BcryptCost = 12

// HashPassword checks the password against validation.ValidatePassword and
// returns its bcrypt hash. A rejected password fails with ErrWeakPassword.
func HashPassword(password string) (string, error) {
	if ok, problems := validation.ValidatePassword(password); !ok {
		return "", fmt.Errorf("%w: %s", ErrWeakPassword, strings.Join(problems, "; "))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// VerifyPassword compares a stored hash with a candidate password
func VerifyPassword(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}
