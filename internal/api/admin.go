package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes

	"reservation_system/internal/domain"      // Importing domain models
	"reservation_system/internal/reservation" // Core reservation logic
	"reservation_system/internal/utils"       // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// ReservationAdminResponse is one booking with the owner identity,
// as shown in the admin list.
type ReservationAdminResponse struct {
	ID       uint   `json:"id"`        // Reservation id
	Date     string `json:"date"`      // Reserved day as YYYY-MM-DD
	UserID   uint   `json:"user_id"`   // Owner user id
	UserName string `json:"user_name"` // Owner display name
	Username string `json:"username"`  // Owner login name
}

// AdminListReservationsHandler returns all bookings with the owning
// user's identity, paginated and cached like the other list endpoints.
func AdminListReservationsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		page, pageSize := pageParams(c)
		cacheKey := adminListCacheKey(page, pageSize)
		var cached struct {
			Reservations []ReservationAdminResponse `json:"reservations"`
			Page         int                        `json:"page"`
			PageSize     int                        `json:"page_size"`
			Total        int64                      `json:"total"`
			TotalPages   int                        `json:"total_pages"`
		}
		if rdb != nil {
			if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
				c.JSON(http.StatusOK, gin.H{
					"reservations": cached.Reservations,
					"page":         cached.Page,
					"page_size":    cached.PageSize,
					"total":        cached.Total,
					"total_pages":  cached.TotalPages,
					"cached":       true,
				})
				return
			}
		}
		offset := (page - 1) * pageSize
		var total int64
		if err := db.Model(&domain.Reservation{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count reservations"})
			return
		}
		var rows []domain.Reservation
		if err := db.Preload("User").Order("date asc").Offset(offset).Limit(pageSize).Find(&rows).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reservations"})
			return
		}
		resp := make([]ReservationAdminResponse, len(rows))
		for i, r := range rows {
			resp[i] = ReservationAdminResponse{
				ID:       r.ID,
				Date:     reservation.FormatDate(r.Date),
				UserID:   r.UserID,
				UserName: r.UserName,
				Username: r.User.Username,
			}
		}
		totalPages := (int(total) + pageSize - 1) / pageSize
		respData := gin.H{
			"reservations": resp,
			"page":         page,
			"page_size":    pageSize,
			"total":        total,
			"total_pages":  totalPages,
			"cached":       false,
		}
		if rdb != nil {
			_ = utils.SetCache(ctx, rdb, cacheKey, respData, reservationCacheTTL)
		}
		c.JSON(http.StatusOK, respData)
	}
}

// AdminDeleteReservationHandler cancels the reservation for the date in
// the URL regardless of owner. The admin group middleware has already
// re-checked the role against the database.
func AdminDeleteReservationHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		day, err := reservation.ParseDate(c.Param("date"))
		if err != nil {
			respondError(c, err)
			return
		}
		if err := reservation.Cancel(db, day, actor); err != nil {
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"admin_id": actor.UserID,
			"date":     c.Param("date"),
			"type":     "admin_cancel",
		}).Info("Reservation cancelled by admin")
		invalidateReservationCaches(rdb)
		c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled by admin"})
	}
}
