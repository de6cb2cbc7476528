package service

import (
	"context"
	"net/url"
	"strings"

	"recipebox/internal/models"
	"recipebox/internal/repository"
)

type RecipeService struct {
	recipeRepo     repository.RecipeRepository
	tagRepo        repository.TagRepository
	ingredientRepo repository.IngredientRepository
}

type CreateRecipeInput struct {
	UserID      uint
	Title       string
	TimeMinutes int
	Price       float64
	Link        string
	Description string
	Tags        []string
	Ingredients []string
}

type UpdateRecipeInput struct {
	UserID      uint
	RecipeID    uint
	Title       *string
	TimeMinutes *int
	Price       *float64
	Link        *string
	Description *string
	Tags        *[]string
	Ingredients *[]string
}

type ListRecipesInput struct {
	UserID uint
	Limit  int
	Offset int
}

func NewRecipeService(
	recipeRepo repository.RecipeRepository,
	tagRepo repository.TagRepository,
	ingredientRepo repository.IngredientRepository,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
	}
}

const (
	maxTitleLen      = 255
	maxLinkLen       = 255
	maxNameLen       = 255
	maxAttachedNames = 50
)

func (s *RecipeService) validateFields(title, link string, timeMinutes int, price float64) error {
	if title == "" {
		return models.NewFieldValidationError("Validation failed",
			map[string]string{"title": "Title is required"})
	}
	if len(title) > maxTitleLen {
		return models.NewFieldValidationError("Validation failed",
			map[string]string{"title": "Title too long (max 255 characters)"})
	}
	if timeMinutes < 0 {
		return models.NewFieldValidationError("Validation failed",
			map[string]string{"time_minutes": "Must not be negative"})
	}
	if price < 0 {
		return models.NewFieldValidationError("Validation failed",
			map[string]string{"price": "Must not be negative"})
	}
	if link != "" {
		if len(link) > maxLinkLen {
			return models.NewFieldValidationError("Validation failed",
				map[string]string{"link": "Link too long (max 255 characters)"})
		}
		if _, err := url.ParseRequestURI(link); err != nil {
			return models.NewFieldValidationError("Validation failed",
				map[string]string{"link": "Must be a valid URL"})
		}
	}
	return nil
}

// cleanNames trims and deduplicates attached tag or ingredient names,
// preserving first-seen order.
func cleanNames(names []string) ([]string, error) {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if len(n) > maxNameLen {
			return nil, models.NewValidationError("Name too long (max 255 characters)")
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	if len(out) > maxAttachedNames {
		return nil, models.NewValidationError("Too many names (max 50)")
	}
	return out, nil
}

// resolveTags maps names to the caller's tag records, creating missing ones.
func (s *RecipeService) resolveTags(ctx context.Context, userID uint, names []string) ([]models.Tag, error) {
	cleaned, err := cleanNames(names)
	if err != nil {
		return nil, err
	}
	tags := make([]models.Tag, 0, len(cleaned))
	for _, name := range cleaned {
		tag, err := s.tagRepo.GetOrCreateByName(ctx, userID, name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func (s *RecipeService) resolveIngredients(ctx context.Context, userID uint, names []string) ([]models.Ingredient, error) {
	cleaned, err := cleanNames(names)
	if err != nil {
		return nil, err
	}
	ingredients := make([]models.Ingredient, 0, len(cleaned))
	for _, name := range cleaned {
		ing, err := s.ingredientRepo.GetOrCreateByName(ctx, userID, name)
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, *ing)
	}
	return ingredients, nil
}

// CreateRecipe persists a new recipe owned by the caller. The owner always
// comes from the authenticated identity, never from the payload.
func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.Recipe, error) {
	if err := s.validateFields(in.Title, in.Link, in.TimeMinutes, in.Price); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, in.UserID, in.Tags)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.resolveIngredients(ctx, in.UserID, in.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		UserID:      in.UserID,
		Title:       in.Title,
		TimeMinutes: in.TimeMinutes,
		Price:       in.Price,
		Link:        in.Link,
		Description: in.Description,
		Tags:        tags,
		Ingredients: ingredients,
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}
	return s.recipeRepo.GetByIDForUser(ctx, recipe.ID, in.UserID)
}

func (s *RecipeService) ListRecipes(ctx context.Context, in ListRecipesInput) ([]models.Recipe, error) {
	return s.recipeRepo.ListByUser(ctx, in.UserID, in.Limit, in.Offset)
}

func (s *RecipeService) GetRecipe(ctx context.Context, recipeID, userID uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByIDForUser(ctx, recipeID, userID)
}

// UpdateRecipe applies a partial update. Nil fields are left untouched, so
// PATCH semantics fall out naturally and a provided empty tag list clears
// the recipe's tags rather than being ignored.
func (s *RecipeService) UpdateRecipe(ctx context.Context, in UpdateRecipeInput) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByIDForUser(ctx, in.RecipeID, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		recipe.Title = *in.Title
	}
	if in.TimeMinutes != nil {
		recipe.TimeMinutes = *in.TimeMinutes
	}
	if in.Price != nil {
		recipe.Price = *in.Price
	}
	if in.Link != nil {
		recipe.Link = *in.Link
	}
	if in.Description != nil {
		recipe.Description = *in.Description
	}
	if err := s.validateFields(recipe.Title, recipe.Link, recipe.TimeMinutes, recipe.Price); err != nil {
		return nil, err
	}

	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, err
	}

	if in.Tags != nil {
		tags, err := s.resolveTags(ctx, in.UserID, *in.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.recipeRepo.ReplaceTags(ctx, recipe, tags); err != nil {
			return nil, err
		}
	}
	if in.Ingredients != nil {
		ingredients, err := s.resolveIngredients(ctx, in.UserID, *in.Ingredients)
		if err != nil {
			return nil, err
		}
		if err := s.recipeRepo.ReplaceIngredients(ctx, recipe, ingredients); err != nil {
			return nil, err
		}
	}

	return s.recipeRepo.GetByIDForUser(ctx, recipe.ID, in.UserID)
}

func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeID, userID uint) error {
	return s.recipeRepo.Delete(ctx, recipeID, userID)
}
