package http

import (
	"context"
	"net/http"
	"strings"

	"flowershop/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Role names as stored in the user_roles table.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

const (
	contextKeyUserID = "auth.user_id"
	contextKeyRoles  = "auth.roles"
)

// RoleReader loads the role set assigned to a user. Roles are always read
// from storage on the server side; role claims inside the token are ignored.
type RoleReader interface {
	Roles(ctx context.Context, userID kernel.UUID) ([]string, error)
}

// AuthMiddleware authenticates requests with an HS256 bearer token and
// attaches the caller's identity and roles to the echo context.
type AuthMiddleware struct {
	secret []byte
	roles  RoleReader
}

// NewAuthMiddleware creates authentication middleware with the signing
// secret shared with the token issuer.
func NewAuthMiddleware(secret string, roles RoleReader) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(secret), roles: roles}
}

// Authenticate rejects requests without a valid bearer token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		token, ok := bearerToken(ctx.Request())
		if !ok {
			return ctx.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: "Missing bearer token",
			})
		}

		if err := m.authenticate(ctx, token); err != nil {
			return ctx.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: "Invalid bearer token",
			})
		}

		return next(ctx)
	}
}

// AuthenticateOptional attaches the caller's identity when a bearer token
// is present and valid, and lets the request through anonymously otherwise.
// A token that is present but invalid is still rejected.
func (m *AuthMiddleware) AuthenticateOptional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		token, ok := bearerToken(ctx.Request())
		if !ok {
			return next(ctx)
		}

		if err := m.authenticate(ctx, token); err != nil {
			return ctx.JSON(http.StatusUnauthorized, Error{
				Code:    http.StatusUnauthorized,
				Message: "Invalid bearer token",
			})
		}

		return next(ctx)
	}
}

// RequireRole allows the request through when the caller holds at least one
// of the given roles. Must run after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			granted, _ := ctx.Get(contextKeyRoles).([]string)
			for _, want := range roles {
				for _, have := range granted {
					if have == want {
						return next(ctx)
					}
				}
			}

			return ctx.JSON(http.StatusForbidden, Error{
				Code:    http.StatusForbidden,
				Message: "Insufficient role",
			})
		}
	}
}

func (m *AuthMiddleware) authenticate(ctx echo.Context, token string) error {
	parsed, err := jwt.Parse(token, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return err
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil {
		return err
	}

	userID, err := kernel.UUIDFromString(subject)
	if err != nil {
		return err
	}

	roles, err := m.roles.Roles(ctx.Request().Context(), userID)
	if err != nil {
		return err
	}

	ctx.Set(contextKeyUserID, userID)
	ctx.Set(contextKeyRoles, roles)

	return nil
}

// AuthenticatedUser returns the caller's user id when the request carried a
// valid token.
func AuthenticatedUser(ctx echo.Context) (kernel.UUID, bool) {
	userID, ok := ctx.Get(contextKeyUserID).(kernel.UUID)
	return userID, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get(echo.HeaderAuthorization)
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
