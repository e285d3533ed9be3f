package domain

// User Model
//
// Password holds the bcrypt hash and is never serialized. Email is
// optional but unique when present; Name is the display name shown on
// the calendar and denormalized onto reservations.
type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Username string  `gorm:"unique;not null" json:"username"`
	Email    *string `gorm:"unique" json:"email,omitempty"`
	Name     string  `gorm:"not null" json:"name"`
	Password string  `gorm:"not null" json:"-"`
	Role     string  `gorm:"default:user" json:"role"`
}
