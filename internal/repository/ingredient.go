package repository

import (
	"context"
	"errors"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// IngredientRepository defines owner-scoped persistence operations for ingredients.
type IngredientRepository interface {
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Ingredient, error)
	GetByIDForUser(ctx context.Context, id, userID uint) (*models.Ingredient, error)
	Create(ctx context.Context, ingredient *models.Ingredient) error
	GetOrCreateByName(ctx context.Context, userID uint, name string) (*models.Ingredient, error)
	Update(ctx context.Context, ingredient *models.Ingredient) error
	Delete(ctx context.Context, id, userID uint) error
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository returns a new IngredientRepository implementation.
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name DESC").
		Limit(limit).
		Offset(offset).
		Find(&ingredients).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ingredients, nil
}

func (r *ingredientRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Ingredient", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &ingredient, nil
}

func (r *ingredientRepository) Create(ctx context.Context, ingredient *models.Ingredient) error {
	if err := r.db.WithContext(ctx).Create(ingredient).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Ingredient already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *ingredientRepository) GetOrCreateByName(ctx context.Context, userID uint, name string) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.WithContext(ctx).
		Where(models.Ingredient{UserID: userID, Name: name}).
		FirstOrCreate(&ingredient).Error
	if err != nil && isUniqueConstraintError(err) {
		// Lost the insert race to a concurrent write; the row exists now.
		err = r.db.WithContext(ctx).
			Where("user_id = ? AND name = ?", userID, name).
			First(&ingredient).Error
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &ingredient, nil
}

func (r *ingredientRepository) Update(ctx context.Context, ingredient *models.Ingredient) error {
	if err := r.db.WithContext(ctx).Save(ingredient).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Ingredient already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *ingredientRepository) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Ingredient{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Ingredient", id)
	}
	if err := r.db.WithContext(ctx).Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
