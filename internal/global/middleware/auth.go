package middleware

import (
	"strings"

	"activity-signup/internal/global/jwt"
	"activity-signup/internal/global/response"
	"activity-signup/internal/model"

	"github.com/gin-gonic/gin"
)

// Auth 校验 Bearer token，角色等级低于 minRole 时返回 403
func Auth(minRole model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Fail(c, response.ErrUnauthorized)
			return
		}
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok {
			response.Fail(c, response.ErrTokenInvalid)
			return
		}

		payload, valid := jwt.ParseToken(token)
		if !valid {
			response.Fail(c, response.ErrTokenInvalid)
			return
		}
		if payload.Role.Level() < minRole.Level() {
			response.Fail(c, response.ErrForbidden)
			return
		}
		c.Set("payload", payload)
		c.Next()
	}
}
