package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipebox/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTagTestApp(t *testing.T) (*fiber.App, *MockTagRepository) {
	t.Helper()
	tagRepo := new(MockTagRepository)
	s := &Server{tagRepo: tagRepo}

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(1))
		return c.Next()
	})
	app.Get("/tags", s.ListTags)
	app.Post("/tags", s.CreateTag)
	app.Put("/tags/:id", s.UpdateTag)
	app.Delete("/tags/:id", s.DeleteTag)

	return app, tagRepo
}

func TestListTags(t *testing.T) {
	app, tagRepo := newTagTestApp(t)

	tagRepo.On("ListByUser", mock.Anything, uint(1), 50, 0).Return([]models.Tag{
		{ID: 3, UserID: 1, Name: "Vegan"},
		{ID: 1, UserID: 1, Name: "Quick"},
		{ID: 2, UserID: 1, Name: "Dessert"},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/tags", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var payload []TagResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.Len(t, payload, 3)
	assert.Equal(t, "Vegan", payload[0].Name)
	assert.Equal(t, "Dessert", payload[2].Name)
}

func TestCreateTag(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		app, tagRepo := newTagTestApp(t)
		tagRepo.On("Create", mock.Anything, mock.MatchedBy(func(tag *models.Tag) bool {
			return tag.UserID == 1 && tag.Name == "Comfort Food"
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*models.Tag).ID = 7
		}).Return(nil)

		body, _ := json.Marshal(map[string]string{"name": "  Comfort Food  "})
		req := httptest.NewRequest(http.MethodPost, "/tags", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var payload TagResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
		assert.Equal(t, uint(7), payload.ID)
		assert.Equal(t, "Comfort Food", payload.Name)
	})

	t.Run("Blank name", func(t *testing.T) {
		app, tagRepo := newTagTestApp(t)

		body, _ := json.Marshal(map[string]string{"name": "   "})
		req := httptest.NewRequest(http.MethodPost, "/tags", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		tagRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate name conflicts", func(t *testing.T) {
		app, tagRepo := newTagTestApp(t)
		tagRepo.On("Create", mock.Anything, mock.Anything).
			Return(models.NewConflictError("Tag already exists"))

		body, _ := json.Marshal(map[string]string{"name": "Vegan"})
		req := httptest.NewRequest(http.MethodPost, "/tags", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestUpdateTag(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		app, tagRepo := newTagTestApp(t)
		tagRepo.On("GetByIDForUser", mock.Anything, uint(2), uint(1)).
			Return(&models.Tag{ID: 2, UserID: 1, Name: "Old"}, nil)
		tagRepo.On("Update", mock.Anything, mock.MatchedBy(func(tag *models.Tag) bool {
			return tag.ID == 2 && tag.Name == "New"
		})).Return(nil)

		body, _ := json.Marshal(map[string]string{"name": "New"})
		req := httptest.NewRequest(http.MethodPut, "/tags/2", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		tagRepo.AssertExpectations(t)
	})

	t.Run("Foreign tag is not found", func(t *testing.T) {
		app, tagRepo := newTagTestApp(t)
		tagRepo.On("GetByIDForUser", mock.Anything, uint(8), uint(1)).
			Return(nil, models.NewNotFoundError("Tag", 8))

		body, _ := json.Marshal(map[string]string{"name": "New"})
		req := httptest.NewRequest(http.MethodPut, "/tags/8", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteTag(t *testing.T) {
	app, tagRepo := newTagTestApp(t)
	tagRepo.On("Delete", mock.Anything, uint(5), uint(1)).Return(nil)

	req := httptest.NewRequest(http.MethodDelete, "/tags/5", nil)
	resp, _ := app.Test(req)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	tagRepo.AssertExpectations(t)
}
