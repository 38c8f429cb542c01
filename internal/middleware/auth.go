package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/reservaestudios/studio-booking-api/internal/config"
	"github.com/reservaestudios/studio-booking-api/internal/domain/access"
	"github.com/reservaestudios/studio-booking-api/internal/models"
	"github.com/reservaestudios/studio-booking-api/internal/timezone"
)

const (
	ContextUserID = "userID"
	ContextUser   = "currentUser"
)

// UserLoader fetches the persisted user row for the token subject.
type UserLoader interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware validates the bearer token and then re-checks the persisted
// account state: a cryptographically valid token is not enough once the
// account is deactivated or its access window has closed.
func AuthMiddleware(cfg *config.Config, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_authorization_header"})
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_claims"})
			return
		}

		sub, ok := claims["sub"].(float64)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token_payload"})
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), uint(sub))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_not_found"})
			return
		}

		if !user.Active {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account_deactivated"})
			return
		}

		if access.Expired(user, timezone.Now()) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access_expired"})
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUser, user)

		c.Next()
	}
}

// RequireAdmin gates admin routes on the persisted role, never the token
// claims. Runs after AuthMiddleware, which loaded the row this request.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil || user.Role != access.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin_only"})
			return
		}
		c.Next()
	}
}

// GetUser returns the authenticated user loaded by AuthMiddleware.
func GetUser(c *gin.Context) *models.User {
	v, exists := c.Get(ContextUser)
	if !exists {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// GetUserID returns the authenticated user's id, or 0 outside an
// authenticated context.
func GetUserID(c *gin.Context) uint {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0
	}
	id, _ := v.(uint)
	return id
}
