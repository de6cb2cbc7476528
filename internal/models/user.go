// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an account in the system. Email is the sole login identity.
// Password holds the bcrypt hash; it serializes so cached copies stay
// complete, and the API layer only ever renders UserResponse.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"unique;not null" json:"email"`
	Name      string         `json:"name"`
	Password  string         `gorm:"not null" json:"password,omitempty"`
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	IsStaff   bool           `gorm:"not null;default:false" json:"is_staff"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	Recipes   []Recipe       `gorm:"foreignKey:UserID" json:"recipes,omitempty"`
}
