package middleware

import (
	"net/http" // HTTP status codes

	"reservation_system/internal/domain"      // Importing domain models
	"reservation_system/internal/reservation" // Authorization policy

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// AdminOnlyMiddleware re-checks the caller's role against the database
// on each request, so a revoked admin cannot keep acting on a stale
// token.
func AdminOnlyMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.First(&user, userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		actor := reservation.Actor{UserID: user.ID, Name: user.Name, Role: user.Role}
		if reservation.RequireAdmin(actor) != reservation.Allow {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Set("userRole", user.Role) // Refresh role from persisted state
		c.Next()
	}
}
