package jwt

import (
	"time"

	"activity-signup/config"
	"activity-signup/internal/model"

	"github.com/golang-jwt/jwt"
	"github.com/pkg/errors"
)

type Claims struct {
	UserID uint       `json:"user_id"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	jwt.StandardClaims
}

// GenerateToken 签发访问令牌，ttl <= 0 时使用配置的过期时间
func GenerateToken(user *model.User, ttl time.Duration) (string, error) {
	cfg := config.Get().JWT
	if cfg.AccessSecret == "" {
		return "", errors.New("jwt access secret is not configured")
	}
	if ttl <= 0 {
		ttl = time.Duration(cfg.AccessExpire) * time.Second
	}
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
			Subject:   user.Email,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.AccessSecret))
}

// ParseToken 校验签名与过期时间
func ParseToken(tokenString string) (*Claims, bool) {
	secret := config.Get().JWT.AccessSecret
	if secret == "" {
		return nil, false
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, false
	}
	claims, ok := token.Claims.(*Claims)
	return claims, ok
}
