package model

import "time"

// User represents a directory user with its owned roles.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:255;not null;index"`
	Age       int       `json:"age" gorm:"not null"`
	Email     string    `json:"email" gorm:"size:255;not null;index"` // uniqueness enforced by the service layer, case-insensitively
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Roles []Role `json:"roles" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
