package api

import (
	"context" // Context for Redis operations
	"errors"  // Error inspection
	"net/http"
	"strconv" // String conversion
	"time"    // Time durations

	"reservation_system/internal/reservation" // Core reservation logic
	"reservation_system/internal/utils"       // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Cache keys for the reservation read projections
const (
	availabilityCacheKey = "reservations:days"  // Base availability map (no ownership flags)
	adminListCachePrefix = "admin:reservations" // Paginated admin booking list
	reservationCacheTTL  = 60 * time.Second
)

// actorFromContext rebuilds the caller identity stored in the gin
// context by the JWT middleware.
func actorFromContext(c *gin.Context) (reservation.Actor, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		return reservation.Actor{}, false
	}
	id, ok := userID.(uint)
	if !ok {
		return reservation.Actor{}, false
	}
	return reservation.Actor{
		UserID: id,
		Name:   c.GetString("userName"),
		Role:   c.GetString("userRole"),
	}, true
}

// respondError maps reservation errors onto the HTTP error taxonomy:
// 409 conflict, 400 validation, 404 not found, 403 forbidden, 401 wrong
// password, everything else 500 with a generic body.
func respondError(c *gin.Context, err error) {
	var conflict *reservation.ConflictError
	var invalid *reservation.ValidationError
	switch {
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Dates already reserved", "occupied_dates": conflict.OccupiedDates})
	case errors.As(err, &invalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": invalid.Message})
	case errors.Is(err, reservation.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Reservation not found"})
	case errors.Is(err, reservation.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only cancel your own reservations"})
	case errors.Is(err, reservation.ErrWrongPassword):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password is incorrect"})
	default:
		logrus.WithField("error", err.Error()).Error("Unexpected storage failure")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// invalidateReservationCaches drops the cached availability projection
// and the first admin list pages after any reservation write.
func invalidateReservationCaches(rdb *redis.Client) {
	if rdb == nil {
		return
	}
	ctx := context.Background()
	keys := []string{availabilityCacheKey}
	for i := 1; i <= 5; i++ {
		keys = append(keys, adminListCacheKey(i, 20))
	}
	_ = utils.DeleteCache(ctx, rdb, keys...)
}

func adminListCacheKey(page, size int) string {
	return adminListCachePrefix + ":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(size)
}

// pageParams reads page/page_size query parameters with the same
// defaults and bounds as the other list endpoints.
func pageParams(c *gin.Context) (page, pageSize int) {
	page = 1
	pageSize = 20
	if p := c.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			page = v
		}
	}
	if ps := c.Query("page_size"); ps != "" {
		if v, err := strconv.Atoi(ps); err == nil && v > 0 && v <= 100 {
			pageSize = v
		}
	}
	return page, pageSize
}
