package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Time values for parsed dates

	"reservation_system/internal/reservation" // Core reservation logic
	"reservation_system/internal/utils"       // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// CreateReservationsRequest carries the dates of a range booking,
// one YYYY-MM-DD string per night.
type CreateReservationsRequest struct {
	Dates []string `json:"dates" binding:"required"`
}

// ListReservationsHandler returns the availability map keyed by date,
// annotated with the caller-relative is_owner flag. The base projection
// (without ownership flags) is cached in Redis.
func ListReservationsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := context.Background()
		var days map[string]reservation.DayInfo
		cached := false
		if rdb != nil {
			if found, err := utils.GetCache(ctx, rdb, availabilityCacheKey, &days); err == nil && found {
				cached = true
			}
		}
		if !cached {
			var err error
			days, err = reservation.Days(db)
			if err != nil {
				respondError(c, err)
				return
			}
			if rdb != nil {
				_ = utils.SetCache(ctx, rdb, availabilityCacheKey, days, reservationCacheTTL)
			}
		}
		// Ownership is caller-relative, stamp it after the cacheable load
		c.JSON(http.StatusOK, reservation.MarkOwnership(days, actor.UserID))
	}
}

// CreateReservationsHandler books every requested date for the caller,
// all-or-nothing. Conflicting batches come back as 409 with the exact
// occupied dates.
func CreateReservationsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := actorFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateReservationsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		dates := make([]time.Time, 0, len(req.Dates))
		for _, s := range req.Dates {
			d, err := reservation.ParseDate(s)
			if err != nil {
				respondError(c, err)
				return
			}
			dates = append(dates, d)
		}
		created, err := reservation.Reserve(db, actor, dates)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": actor.UserID,
				"dates":   req.Dates,
				"error":   err.Error(),
			}).Warn("Reservation rejected")
			respondError(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": actor.UserID,
			"created": created,
			"type":    "reserve",
		}).Info("Reservations created")
		invalidateReservationCaches(rdb)
		c.JSON(http.StatusCreated, gin.H{"message": "Reservations created successfully", "created": created})
	}
}

// DeleteReservationHandler cancels the reservation for the date in the
// URL. Owners may cancel their own reservation, admins anyone's.
func DeleteReservationHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
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
			"user_id": actor.UserID,
			"date":    c.Param("date"),
			"type":    "cancel",
		}).Info("Reservation cancelled")
		invalidateReservationCaches(rdb)
		c.JSON(http.StatusOK, gin.H{"message": "Reservation cancelled successfully"})
	}
}
