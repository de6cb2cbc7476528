// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers       int
	RecipesPerUser int
	ShouldClean    bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users, %d recipes each...",
		opts.NumUsers, opts.RecipesPerUser)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db)

	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		for j := 0; j < opts.RecipesPerUser; j++ {
			if _, err := f.CreateRecipe(user); err != nil {
				return fmt.Errorf("failed to create recipe for user %d: %w", user.ID, err)
			}
		}
	}

	log.Printf("Seeding complete: %d users created", opts.NumUsers)
	return nil
}

func clearData(db *gorm.DB) error {
	// Join tables first, then children, then users.
	statements := []string{
		"DELETE FROM recipe_tags",
		"DELETE FROM recipe_ingredients",
	}
	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	for _, model := range []any{
		&models.Recipe{}, &models.Tag{}, &models.Ingredient{}, &models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
