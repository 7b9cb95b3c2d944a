package apis

import (
	"fmt"
	"net/http"
	"strings"

	"volunteerhub-backend/cmd/volunteerhub/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(secret string) *AuthMiddleware {
	return &AuthMiddleware{
		secret: []byte(secret),
	}
}

// RequireAuth validates the bearer token and stores the caller's user id and
// role on the request context.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {

		header := c.Request().Header.Get(echo.HeaderAuthorization)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return c.JSON(
				http.StatusUnauthorized,
				model.BaseResponse{
					Message: "missing bearer token",
				},
			)
		}

		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return m.secret, nil
		})

		if err != nil || !token.Valid {
			return c.JSON(
				http.StatusUnauthorized,
				model.BaseResponse{
					Message: "invalid token",
				},
			)
		}

		sub, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		if sub == "" {
			return c.JSON(
				http.StatusUnauthorized,
				model.BaseResponse{
					Message: "invalid token",
				},
			)
		}

		c.Set(ctxUserID, sub)
		c.Set(ctxRole, model.UserRole(role))

		return next(c)
	}
}

// RequireRole gates a route group to the given roles. It must run after
// RequireAuth.
func (m *AuthMiddleware) RequireRole(roles ...model.UserRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {

			role, _ := c.Get(ctxRole).(model.UserRole)
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}

			return c.JSON(
				http.StatusForbidden,
				model.BaseResponse{
					Message: "insufficient role",
				},
			)
		}
	}
}

func currentUserID(c echo.Context) string {
	id, _ := c.Get(ctxUserID).(string)
	return id
}

func currentRole(c echo.Context) model.UserRole {
	role, _ := c.Get(ctxRole).(model.UserRole)
	return role
}
