package models

import (
	"time"
)

// Recipe is a catalog entry owned by exactly one user. ImagePath is the
// storage-relative path of the processed master image; it serializes so
// cached copies stay complete, and handlers derive the serving URL from it
// through the response shapes rather than exposing it directly.
type Recipe struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	UserID      uint         `gorm:"index;not null" json:"user_id"`
	Title       string       `gorm:"not null" json:"title"`
	TimeMinutes int          `json:"time_minutes"`
	Price       float64      `json:"price"`
	Link        string       `json:"link"`
	Description string       `json:"description"`
	ImagePath   string       `json:"image_path,omitempty"`
	Tags        []Tag        `gorm:"many2many:recipe_tags" json:"tags,omitempty"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients" json:"ingredients,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Tag is a user-scoped label for recipes. Names are unique per owner so
// recipe writes can get-or-create them idempotently.
type Tag struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_tags_user_name" json:"user_id"`
	Name   string `gorm:"not null;uniqueIndex:idx_tags_user_name" json:"name"`
}

// Ingredient is a user-scoped ingredient record, same ownership rules as Tag.
type Ingredient struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"not null;uniqueIndex:idx_ingredients_user_name" json:"user_id"`
	Name   string `gorm:"not null;uniqueIndex:idx_ingredients_user_name" json:"name"`
}
