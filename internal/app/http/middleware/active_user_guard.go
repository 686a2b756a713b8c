package middleware

import (
	"net/http"

	usersdomain "coursemarket-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RequireActiveUser rejects tokens whose account has since been blocked by
// an admin; a still-valid JWT is not enough.
func RequireActiveUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		var user usersdomain.User

		if err := db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "User not found",
			})
			return
		}

		if user.Status == usersdomain.StatusBlocked {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Your account has been blocked",
			})
			return
		}

		c.Next()
	}
}
