package middleware

import (
	"github.com/gin-gonic/gin"

	"shop-backend/internal/shared"
	"shop-backend/internal/shared/response"
	"shop-backend/pkg/jwt"
)

// AdminMiddleware checks if user has admin role. Must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := c.Get(shared.ContextKeyRole)
		if !ok || role != jwt.RoleAdmin {
			response.Forbidden(c, "Access denied: admin role required")
			c.Abort()
			return
		}

		c.Next()
	}
}
