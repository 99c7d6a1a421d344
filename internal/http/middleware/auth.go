package middleware

import (
	"bookstore/internal/domain/models"
	"bookstore/internal/lib/jwt"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slog"
)

const userKey = "authUser"

type UserProvider interface {
	GetUser(ctx context.Context, id string) (models.User, error)
}

// Auth validates the Bearer token and loads the authenticated user into the
// request context. Requests failing any step are aborted with 401.
func Auth(log *slog.Logger, secret string, users UserProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}

		claims, err := jwt.ParseToken(token, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		user, err := users.GetUser(c.Request.Context(), claims.Subject)
		if err != nil {
			log.Warn("token subject not resolvable", slog.String("sub", claims.Subject))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}

		SetUser(c, user)
		c.Next()
	}
}

func SetUser(c *gin.Context, user models.User) {
	c.Set(userKey, user)
}

func UserFromContext(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return models.User{}, false
	}

	user, ok := v.(models.User)
	return user, ok
}
