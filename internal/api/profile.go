package api

import (
	"net/http" // HTTP status codes

	"reservation_system/internal/domain"      // Importing domain models
	"reservation_system/internal/reservation" // Core reservation logic
	"reservation_system/internal/utils"       // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// UpdateProfileRequest carries either a display-name update or a
// password change; the non-nil fields select the branch.
type UpdateProfileRequest struct {
	Name        *string `json:"name"`
	OldPassword *string `json:"oldPassword"`
	NewPassword *string `json:"newPassword"`
}

// UpdateProfileHandler updates the caller's display name or password.
// A name update also returns a freshly signed token, since the name is
// carried in the session claims and copied onto new reservations.
func UpdateProfileHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		switch {
		case req.Name != nil:
			updateName(c, db, actor, *req.Name, jwtSecret)
		case req.OldPassword != nil && req.NewPassword != nil:
			updatePassword(c, db, actor, *req.OldPassword, *req.NewPassword)
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		}
	}
}

func updateName(c *gin.Context, db *gorm.DB, actor reservation.Actor, name, jwtSecret string) {
	if len(name) < 3 || len(name) > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name must be 3-100 characters"})
		return
	}
	var user domain.User
	if err := db.First(&user, actor.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err := db.Model(&user).Update("name", name).Error; err != nil {
		respondError(c, err)
		return
	}
	logrus.WithFields(logrus.Fields{
		"user_id": actor.UserID,
		"type":    "profile_name",
	}).Info("Display name updated")
	// Re-derive the session token from the updated persisted state
	user.Name = name
	token, err := utils.GenerateJWT(user, jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Name updated successfully", "token": token})
}

func updatePassword(c *gin.Context, db *gorm.DB, actor reservation.Actor, oldPassword, newPassword string) {
	if len(newPassword) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password must be at least 6 characters"})
		return
	}
	var user domain.User
	if err := db.First(&user, actor.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		respondError(c, reservation.ErrWrongPassword)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	if err := db.Model(&user).Update("password", string(hash)).Error; err != nil {
		respondError(c, err)
		return
	}
	logrus.WithFields(logrus.Fields{
		"user_id": actor.UserID,
		"type":    "profile_password",
	}).Info("Password updated")
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}
