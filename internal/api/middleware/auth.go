package middleware

import (
	"net/http"

	"github.com/fundbridge/intake-go/internal/domain/user"
	"github.com/fundbridge/intake-go/pkg/response"
	"github.com/fundbridge/intake-go/pkg/utils"
	"github.com/gin-gonic/gin"
)

// Admin allows admins only.
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.GetClaims(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token claims"})
			return
		}
		if claims.Role != string(user.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "admin only"})
			return
		}
		c.Next()
	}
}

// Reviewer allows admins and analysts holding the review permission. The
// capability is carried in the token claims; edge-level checks still run in
// the lifecycle engine, this only keeps entrepreneurs off reviewer routes.
func Reviewer() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.GetClaims(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "Invalid token claims"})
			return
		}
		switch claims.Role {
		case string(user.RoleAdmin):
			c.Next()
		case string(user.RoleAnalyst):
			if !claims.CanReview {
				c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "review permission required"})
				return
			}
			c.Next()
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "reviewer only"})
		}
	}
}
