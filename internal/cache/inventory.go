package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix = "user:%d"
	// Recipe keys embed the owner so a cached entry can never leak across
	// two users' scoped views of the same ID space.
	RecipeKeyPrefix = "user:%d:recipe:%d"
)

const (
	UserTTL   = 5 * time.Minute
	RecipeTTL = 10 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func RecipeKey(userID, recipeID uint) string {
	return fmt.Sprintf(RecipeKeyPrefix, userID, recipeID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateRecipe(ctx context.Context, userID, recipeID uint) {
	Invalidate(ctx, RecipeKey(userID, recipeID))
}
