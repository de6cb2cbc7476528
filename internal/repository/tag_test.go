package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRepository_GetOrCreateByName_InsertRace(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()

	emptyRows := func() *sqlmock.Rows {
		return sqlmock.NewRows([]string{"id", "user_id", "name"})
	}

	// Lookup misses, the insert loses the unique-index race to a concurrent
	// writer, and the follow-up lookup finds the winner's row.
	mock.ExpectQuery(`SELECT \* FROM "tags"`).WillReturnRows(emptyRows())
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "tags"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_tags_user_name" (SQLSTATE 23505)`))
	mock.ExpectRollback()
	mock.ExpectQuery(`SELECT \* FROM "tags"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).AddRow(3, 1, "Vegan"))

	tag, err := repo.GetOrCreateByName(ctx, 1, "Vegan")
	require.NoError(t, err)
	assert.Equal(t, uint(3), tag.ID)
	assert.Equal(t, "Vegan", tag.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIngredientRepository_GetOrCreateByName_InsertRace(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewIngredientRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT \* FROM "ingredients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}))
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "ingredients"`).
		WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_ingredients_user_name" (SQLSTATE 23505)`))
	mock.ExpectRollback()
	mock.ExpectQuery(`SELECT \* FROM "ingredients"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name"}).AddRow(9, 1, "Salt"))

	ingredient, err := repo.GetOrCreateByName(ctx, 1, "Salt")
	require.NoError(t, err)
	assert.Equal(t, uint(9), ingredient.ID)
	assert.Equal(t, "Salt", ingredient.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
