package models

import (
	"time"
)

// User is an operator account for the admin surface.
type User struct {
	ID        uint      `gorm:"column:user_id;primaryKey" json:"id"`
	Username  string    `gorm:"unique;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	FullName  string    `json:"full_name"`
	Email     string    `gorm:"unique" json:"email"`
	CreatedAt time.Time `gorm:"default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
