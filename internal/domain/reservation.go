package domain

import "time"

// Reservation Model
//
// One row is one reserved night, with Date normalized to UTC midnight.
// The unique index on Date enforces the "at most one reservation per
// calendar date" invariant at the storage layer; the transactional
// conflict check on top of it only exists to report every conflicting
// date of a batch in one response. UserName is the owner's display name
// denormalized at booking time.
type Reservation struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	UserName  string    `gorm:"not null" json:"user_name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
