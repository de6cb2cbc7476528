package repository

import (
	"context"
	"errors"

	"recipebox/internal/models"

	"gorm.io/gorm"
)

// TagRepository defines owner-scoped persistence operations for tags.
type TagRepository interface {
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Tag, error)
	GetByIDForUser(ctx context.Context, id, userID uint) (*models.Tag, error)
	Create(ctx context.Context, tag *models.Tag) error
	GetOrCreateByName(ctx context.Context, userID uint, name string) (*models.Tag, error)
	Update(ctx context.Context, tag *models.Tag) error
	Delete(ctx context.Context, id, userID uint) error
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository returns a new TagRepository implementation.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// ListByUser returns the caller's tags in reverse alphabetical order.
func (r *tagRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("name DESC").
		Limit(limit).
		Offset(offset).
		Find(&tags).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tags, nil
}

func (r *tagRepository) GetByIDForUser(ctx context.Context, id, userID uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tag", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}

func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Create(tag).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Tag already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

// GetOrCreateByName resolves a tag by name inside the owner's scope, creating
// it on first use. This backs the implicit-creation path on recipe writes.
func (r *tagRepository) GetOrCreateByName(ctx context.Context, userID uint, name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).
		Where(models.Tag{UserID: userID, Name: name}).
		FirstOrCreate(&tag).Error
	if err != nil && isUniqueConstraintError(err) {
		// Lost the insert race to a concurrent write; the row exists now.
		err = r.db.WithContext(ctx).
			Where("user_id = ? AND name = ?", userID, name).
			First(&tag).Error
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &tag, nil
}

func (r *tagRepository) Update(ctx context.Context, tag *models.Tag) error {
	if err := r.db.WithContext(ctx).Save(tag).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Tag already exists")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tagRepository) Delete(ctx context.Context, id, userID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Tag{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Tag", id)
	}
	// Drop join rows so deleted tags stop appearing on recipes.
	if err := r.db.WithContext(ctx).Exec("DELETE FROM recipe_tags WHERE tag_id = ?", id).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
