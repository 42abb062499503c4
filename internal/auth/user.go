package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Role is an account's access level.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ValidRole reports whether r is a recognized role.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleUser
}

// User is one stored account.
type User struct {
	PasswordHash string `json:"password_hash"`
	Role         Role   `json:"role"`
}

// Users is the persistence contract for the account table. Both the
// flat-file and the SQLite backends implement it.
type Users interface {
	LoadUsers(ctx context.Context) (map[string]User, error)
	SaveUsers(ctx context.Context, users map[string]User) error
}

// HashPassword derives a bcrypt hash at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
