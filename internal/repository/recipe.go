package repository

import (
	"context"
	"errors"

	"recipebox/internal/cache"
	"recipebox/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeRepository defines persistence operations for recipes. Every read and
// write is scoped to an owner: a recipe belonging to another user behaves
// exactly like a missing one.
type RecipeRepository interface {
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Recipe, error)
	GetByIDForUser(ctx context.Context, id, userID uint) (*models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe) error
	ReplaceTags(ctx context.Context, recipe *models.Recipe, tags []models.Tag) error
	ReplaceIngredients(ctx context.Context, recipe *models.Recipe, ingredients []models.Ingredient) error
	Delete(ctx context.Context, id, userID uint) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository returns a new RecipeRepository implementation.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

// ListByUser returns the caller's recipes newest-first (id descending).
func (r *recipeRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Where("user_id = ?", userID).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

func (r *recipeRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*models.Recipe, error) {
	var recipe models.Recipe
	key := cache.RecipeKey(userID, id)

	err := cache.Aside(ctx, key, &recipe, cache.RecipeTTL, func() error {
		if err := r.db.WithContext(ctx).
			Preload("Tags").
			Preload("Ingredients").
			Where("id = ? AND user_id = ?", id, userID).
			First(&recipe).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Recipe", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Update persists scalar recipe fields. Association columns are written via
// ReplaceTags / ReplaceIngredients so a partial update never detaches them.
func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).
		Omit("Tags", "Ingredients").
		Save(recipe).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, recipe.UserID, recipe.ID)
	return nil
}

func (r *recipeRepository) ReplaceTags(ctx context.Context, recipe *models.Recipe, tags []models.Tag) error {
	assoc := r.db.WithContext(ctx).Model(recipe).Association("Tags")
	var err error
	if len(tags) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(tags)
	}
	if err != nil {
		return models.NewInternalError(err)
	}
	recipe.Tags = tags
	cache.InvalidateRecipe(ctx, recipe.UserID, recipe.ID)
	return nil
}

func (r *recipeRepository) ReplaceIngredients(ctx context.Context, recipe *models.Recipe, ingredients []models.Ingredient) error {
	assoc := r.db.WithContext(ctx).Model(recipe).Association("Ingredients")
	var err error
	if len(ingredients) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(ingredients)
	}
	if err != nil {
		return models.NewInternalError(err)
	}
	recipe.Ingredients = ingredients
	cache.InvalidateRecipe(ctx, recipe.UserID, recipe.ID)
	return nil
}

// Delete removes the recipe and its association rows, scoped to the owner.
func (r *recipeRepository) Delete(ctx context.Context, id, userID uint) error {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&recipe).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Recipe", id)
		}
		return models.NewInternalError(err)
	}

	if err := r.db.WithContext(ctx).Select(clause.Associations).Delete(&recipe).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, userID, id)
	return nil
}
