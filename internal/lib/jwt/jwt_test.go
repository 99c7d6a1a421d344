package jwt

import (
	"bookstore/internal/domain/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestTokenRoundTrip(t *testing.T) {
	user := models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Ghulam",
		Email: "ghulam@gmail.com",
	}

	t.Run("claims survive issue and parse", func(t *testing.T) {
		token, err := NewToken(user, "secret", time.Hour)
		require.NoError(t, err)

		claims, err := ParseToken(token, "secret")
		require.NoError(t, err)
		assert.Equal(t, user.ID.Hex(), claims.Subject)
		assert.Equal(t, user.Name, claims.Name)
		assert.Equal(t, user.Email, claims.Email)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token, err := NewToken(user, "secret", time.Hour)
		require.NoError(t, err)

		_, err = ParseToken(token, "other-secret")
		assert.Error(t, err)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := NewToken(user, "secret", -time.Minute)
		require.NoError(t, err)

		_, err = ParseToken(token, "secret")
		assert.Error(t, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := ParseToken("not.a.token", "secret")
		assert.Error(t, err)
	})
}
