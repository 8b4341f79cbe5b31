package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vitalsync/healthmon-api/internal/handler"
	"github.com/vitalsync/healthmon-api/internal/model"
	authService "github.com/vitalsync/healthmon-api/internal/service/auth"
)

const (
	ContextAccountID    = "accountID"
	ContextAccountEmail = "accountEmail"
	ContextAccountRole  = "accountRole"
)

type AuthMiddleware struct {
	authService *authService.Service
}

func NewAuthMiddleware(authService *authService.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Authenticate verifies the JWT token and sets account info in context
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("missing authorization header"))
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid authorization format"))
			c.Abort()
			return
		}

		claims, err := m.authService.ValidateToken(c.Request.Context(), parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
			c.Abort()
			return
		}

		c.Set(ContextAccountID, claims.AccountID.String())
		c.Set(ContextAccountEmail, claims.Email)
		c.Set(ContextAccountRole, claims.Role)
		c.Next()
	}
}

// RequireClinician rejects requests whose token does not carry the clinician role.
func (m *AuthMiddleware) RequireClinician() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextAccountRole) != string(model.RoleClinician) {
			c.JSON(http.StatusForbidden, handler.NewErrorResponse("clinician role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
