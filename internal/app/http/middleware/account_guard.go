package middleware

import (
	"net/http"

	"github.com/iamgjek/Shopee2Multi-sub000/database"
	"github.com/iamgjek/Shopee2Multi-sub000/internal/domain/users"

	"github.com/gin-gonic/gin"
)

// RequireActiveAccount blocks suspended and deleted accounts from anything
// beyond login.
func RequireActiveAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var user users.User
		if err := database.DB.First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		if user.Status != users.StatusActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account is " + user.Status})
			return
		}

		c.Next()
	}
}
