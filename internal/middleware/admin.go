package middleware

import (
	"net/http"

	"gamoiwere/internal/domain"
	"gamoiwere/internal/repository"

	"github.com/gin-gonic/gin"
)

// AdminRequired checks the admin role against the current user row rather
// than the token claim, so a demoted admin is locked out on the next
// request instead of at token expiry.
func AdminRequired(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := GetUserID(c)
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		u, err := userRepo.GetByID(userID)
		if err != nil || u.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
