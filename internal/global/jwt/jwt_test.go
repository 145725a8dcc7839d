package jwt

import (
	"testing"
	"time"

	"activity-signup/config"
	"activity-signup/internal/model"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	cfg := config.Default()
	cfg.JWT.AccessSecret = "test-secret"
	config.Set(cfg)

	admin := &model.User{Model: model.Model{ID: 7}, Email: "admin@mergington.edu", Role: model.RoleAdmin}
	token, err := GenerateToken(admin, time.Hour)
	require.NoError(t, err)

	claims, ok := ParseToken(token)
	require.True(t, ok)
	require.Equal(t, uint(7), claims.UserID)
	require.Equal(t, model.RoleAdmin, claims.Role)

	_, ok = ParseToken(token + "x")
	require.False(t, ok)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Email:          admin.Email,
		Role:           admin.Role,
		StandardClaims: jwt.StandardClaims{ExpiresAt: time.Now().Add(-time.Minute).Unix()},
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, ok = ParseToken(expired)
	require.False(t, ok)
}
