package reservation

import (
	"errors"
	"sort"
	"time"

	"reservation_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// DayInfo describes who holds a reserved day in the availability view.
type DayInfo struct {
	OwnerName string `json:"owner_name"` // Display name of the owner
	OwnerID   uint   `json:"owner_id"`   // User id of the owner
	IsOwner   bool   `json:"is_owner"`   // Whether the day belongs to the current caller
}

// Reserve atomically books every date in dates for the given actor.
// Inside a single transaction it checks the requested dates against the
// existing reservations and either inserts one row per date or rejects
// the whole batch with a *ConflictError listing the occupied dates.
// Returns the number of rows created.
func Reserve(db *gorm.DB, actor Actor, dates []time.Time) (int, error) {
	if len(dates) == 0 {
		return 0, &ValidationError{Field: "dates", Message: "at least one date is required"}
	}
	days := dedupeDays(dates)
	var created int
	err := db.Transaction(func(tx *gorm.DB) error {
		occupied, err := occupiedAmong(tx, days)
		if err != nil {
			return err
		}
		if len(occupied) > 0 {
			// Abort the transaction, nothing is written
			return &ConflictError{OccupiedDates: occupied}
		}
		rows := make([]domain.Reservation, len(days))
		for i, d := range days {
			rows[i] = domain.Reservation{Date: d, UserID: actor.UserID, UserName: actor.Name}
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		created = len(rows)
		return nil
	})
	if err != nil {
		// A concurrent booking that slipped past the in-transaction check
		// is stopped by the unique index on date. Report it the same way
		// as the pre-check path.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			occupied, qerr := occupiedAmong(db, days)
			if qerr != nil {
				return 0, qerr
			}
			return 0, &ConflictError{OccupiedDates: occupied}
		}
		return 0, err
	}
	return created, nil
}

// Cancel removes the reservation on the given day on behalf of actor.
// The lookup uses the half-open UTC interval [day, day+24h) rather than
// exact equality, so stored values carrying a stray time-of-day
// component still match. Owners may cancel their own reservation,
// admins may cancel anyone's.
func Cancel(db *gorm.DB, day time.Time, actor Actor) error {
	day = StartOfDay(day)
	next := day.AddDate(0, 0, 1)
	var rows []domain.Reservation
	if err := db.Where("date >= ? AND date < ?", day, next).Find(&rows).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrNotFound
	}
	for _, r := range rows {
		if Authorize(actor, r.UserID) != Allow {
			return ErrForbidden
		}
	}
	// Delete everything in the interval; expected one row, bulk-safe for admins
	return db.Where("date >= ? AND date < ?", day, next).Delete(&domain.Reservation{}).Error
}

// Days loads the base availability projection across all reservations,
// keyed by YYYY-MM-DD. IsOwner is left false; it is caller-relative and
// stamped by MarkOwnership, which keeps this projection cacheable.
func Days(db *gorm.DB) (map[string]DayInfo, error) {
	var rows []domain.Reservation
	if err := db.Order("date asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]DayInfo, len(rows))
	for _, r := range rows {
		out[FormatDate(r.Date)] = DayInfo{OwnerName: r.UserName, OwnerID: r.UserID}
	}
	return out, nil
}

// MarkOwnership stamps the caller-relative IsOwner flag onto a base
// availability projection.
func MarkOwnership(days map[string]DayInfo, callerID uint) map[string]DayInfo {
	for k, v := range days {
		v.IsOwner = v.OwnerID == callerID
		days[k] = v
	}
	return days
}

// ListAvailability returns the availability projection annotated for
// the given caller. Recomputed on every read; it has no state of its
// own.
func ListAvailability(db *gorm.DB, callerID uint) (map[string]DayInfo, error) {
	days, err := Days(db)
	if err != nil {
		return nil, err
	}
	return MarkOwnership(days, callerID), nil
}

// occupiedAmong returns the sorted YYYY-MM-DD strings of the given days
// that already have a reservation.
func occupiedAmong(tx *gorm.DB, days []time.Time) ([]string, error) {
	var existing []domain.Reservation
	if err := tx.Where("date IN ?", days).Find(&existing).Error; err != nil {
		return nil, err
	}
	occupied := make([]string, len(existing))
	for i, r := range existing {
		occupied[i] = FormatDate(r.Date)
	}
	sort.Strings(occupied)
	return occupied, nil
}

// dedupeDays normalizes every date to UTC midnight and drops repeats,
// preserving order.
func dedupeDays(dates []time.Time) []time.Time {
	seen := make(map[string]bool, len(dates))
	days := make([]time.Time, 0, len(dates))
	for _, d := range dates {
		day := StartOfDay(d)
		key := FormatDate(day)
		if seen[key] {
			continue
		}
		seen[key] = true
		days = append(days, day)
	}
	return days
}
