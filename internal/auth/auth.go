package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/task-management/internal"
)

// Roles recognized across the system. The values are persisted verbatim in
// the usuarios table and in token claims, so they stay in Spanish like the
// rest of the wire vocabulary.
const (
	RoleManager  = "jefe"
	RoleEmployee = "empleado"
)

// User is the authenticated identity attached to each request context.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"nombre"`
	Email        string `json:"email"`
	Role         string `json:"rol"`
	DepartmentID *int64 `json:"departamento_id,omitempty"`
}

// IsManager reports whether the identity carries the jefe role.
func (u *User) IsManager() bool {
	return u != nil && u.Role == RoleManager
}

// Claims represents JWT token claims
type Claims struct {
	UserID       int64  `json:"user_id"`
	Role         string `json:"rol"`
	Name         string `json:"nombre"`
	DepartmentID *int64 `json:"departamento_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenGenerator creates and verifies bearer tokens.
type TokenGenerator interface {
	GenerateAccessToken(user *User) (token string, err error)
	ValidateToken(tokenString string) (*Claims, error)
}

type JWTTokenGenerator struct {
	Secret         []byte
	AccessTokenTTL time.Duration
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
)

// UserFromContext returns the authenticated user stored by AuthMiddleware.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(internal.ContextUserKey).(*User)
	return u, ok
}

// ContextWithUser attaches the authenticated user to the context.
func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, internal.ContextUserKey, u)
}
