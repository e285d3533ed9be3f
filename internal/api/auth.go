package api

import (
	"errors"           // Error inspection
	netmail "net/mail" // Email address validation
	"net/http"         // HTTP status codes
	"strings"          // String manipulation

	"reservation_system/internal/domain" // Importing domain models
	"reservation_system/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// RegisterRequest carries the registration payload
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`  // Login name, 3-25 characters
	Password string `json:"password" binding:"required"`  // At least 6 characters
	FullName string `json:"full_name" binding:"required"` // Display name, 3-100 characters
	Email    string `json:"email"`                        // Optional
}

// LoginRequest carries the login payload
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries a freshly signed session token
type AuthResponse struct {
	Token string `json:"token"` // JWT token
}

// validateRegistration returns the first failing constraint, or empty strings.
func validateRegistration(req RegisterRequest) (field, msg string) {
	if len(req.Username) < 3 || len(req.Username) > 25 {
		return "username", "Username must be 3-25 characters"
	}
	if len(req.Password) < 6 {
		return "password", "Password must be at least 6 characters"
	}
	if len(req.FullName) < 3 || len(req.FullName) > 100 {
		return "full_name", "Full name must be 3-100 characters"
	}
	if req.Email != "" {
		if _, err := netmail.ParseAddress(req.Email); err != nil {
			return "email", "Email address is invalid"
		}
	}
	return "", ""
}

// RegisterHandler creates a new user account
func RegisterHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if field, msg := validateRegistration(req); field != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg, "field": field})
			return
		}
		username := strings.ToLower(req.Username) // Lowercase to ensure uniqueness
		// Check duplicates up front so the response can name the offending field
		var existing domain.User
		if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Username already exists", "field": "username"})
			return
		}
		if req.Email != "" {
			if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already exists", "field": "email"})
				return
			}
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{
			Username: username,
			Password: string(hash),
			Name:     req.FullName,
		}
		if req.Email != "" {
			user.Email = &req.Email
		}
		if err := db.Create(&user).Error; err != nil {
			// Unique-index race loser is still a conflict, not an internal error
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Username or email already exists"})
				return
			}
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User
		if err := db.Where("username = ?", strings.ToLower(req.Username)).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		token, err := utils.GenerateJWT(user, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}

// RefreshSessionHandler re-derives a new signed token from the current
// persisted user state. Called explicitly after profile mutations
// instead of patching individual claims on the live token.
func RefreshSessionHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var user domain.User
		if err := db.First(&user, actor.UserID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		token, err := utils.GenerateJWT(user, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token})
	}
}
