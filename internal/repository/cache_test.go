package repository

import (
	"context"
	"testing"

	"recipebox/internal/cache"
	"recipebox/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withLiveCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })
	return mr
}

func TestUserRepository_CachedReadKeepsPasswordHash(t *testing.T) {
	db := setupTestDB(t)
	mr := withLiveCache(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Email:    "cached@example.com",
		Name:     "Cached",
		Password: "$2a$10$stored-bcrypt-hash",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)

	// First read primes the cache.
	first, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, "$2a$10$stored-bcrypt-hash", first.Password)
	require.True(t, mr.Exists(cache.UserKey(user.ID)))

	// Change the row underneath so a stale name proves the second read
	// was served from the cache, not the database.
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("name", "Changed Behind The Cache").Error)

	second, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cached", second.Name)
	assert.Equal(t, "$2a$10$stored-bcrypt-hash", second.Password,
		"a cache hit must carry the password hash")

	// A name-only update written from the cache-hit struct must not wipe
	// the stored hash.
	second.Name = "Renamed"
	require.NoError(t, repo.Update(ctx, second))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "Renamed", stored.Name)
	assert.Equal(t, "$2a$10$stored-bcrypt-hash", stored.Password)
}

func TestRecipeRepository_CachedReadKeepsImagePath(t *testing.T) {
	db := setupTestDB(t)
	mr := withLiveCache(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "cachedrecipes@example.com")
	recipe := &models.Recipe{UserID: user.ID, Title: "With Image"}
	require.NoError(t, repo.Create(ctx, recipe))

	recipe.ImagePath = "abc123/master.jpg"
	require.NoError(t, repo.Update(ctx, recipe))

	// Prime, then hit.
	first, err := repo.GetByIDForUser(ctx, recipe.ID, user.ID)
	require.NoError(t, err)
	require.Equal(t, "abc123/master.jpg", first.ImagePath)
	require.True(t, mr.Exists(cache.RecipeKey(user.ID, recipe.ID)))

	second, err := repo.GetByIDForUser(ctx, recipe.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc123/master.jpg", second.ImagePath,
		"a cache hit must carry the image path")

	// A title-only update written from the cache-hit struct must not
	// detach the stored image.
	second.Title = "Renamed Recipe"
	require.NoError(t, repo.Update(ctx, second))

	var stored models.Recipe
	require.NoError(t, db.First(&stored, recipe.ID).Error)
	assert.Equal(t, "Renamed Recipe", stored.Title)
	assert.Equal(t, "abc123/master.jpg", stored.ImagePath)
}

func TestRecipeRepository_UpdateInvalidatesCachedEntry(t *testing.T) {
	db := setupTestDB(t)
	mr := withLiveCache(t)
	repo := NewRecipeRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "invalidate@example.com")
	recipe := &models.Recipe{UserID: user.ID, Title: "Before"}
	require.NoError(t, repo.Create(ctx, recipe))

	_, err := repo.GetByIDForUser(ctx, recipe.ID, user.ID)
	require.NoError(t, err)
	require.True(t, mr.Exists(cache.RecipeKey(user.ID, recipe.ID)))

	recipe.Title = "After"
	require.NoError(t, repo.Update(ctx, recipe))
	assert.False(t, mr.Exists(cache.RecipeKey(user.ID, recipe.ID)))

	fresh, err := repo.GetByIDForUser(ctx, recipe.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", fresh.Title)
}
