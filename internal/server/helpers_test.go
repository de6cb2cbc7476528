package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipebox/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var got Pagination
	app.Get("/items", func(c *fiber.Ctx) error {
		got = parsePagination(c, 20)
		return c.SendStatus(fiber.StatusOK)
	})

	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"Defaults", "", 20, 0},
		{"Explicit values", "?limit=5&offset=10", 5, 10},
		{"Limit capped", "?limit=5000", 100, 0},
		{"Zero limit falls back", "?limit=0", 20, 0},
		{"Negative offset clamped", "?offset=-3", 20, 0},
		{"Garbage ignored", "?limit=abc&offset=xyz", 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/items"+tt.query, nil)
			resp, _ := app.Test(req)
			_ = resp.Body.Close()
			assert.Equal(t, tt.wantLimit, got.Limit)
			assert.Equal(t, tt.wantOffset, got.Offset)
		})
	}
}

func TestParseID(t *testing.T) {
	s := &Server{}
	app := fiber.New()
	app.Get("/things/:id", func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"Valid", "/things/42", http.StatusOK},
		{"Non-numeric", "/things/abc", http.StatusBadRequest},
		{"Zero", "/things/0", http.StatusBadRequest},
		{"Negative", "/things/-1", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			resp, _ := app.Test(req)
			_ = resp.Body.Close()
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Not found", models.NewNotFoundError("Recipe", 1), http.StatusNotFound},
		{"Validation", models.NewValidationError("Title is required"), http.StatusBadRequest},
		{"Conflict", models.NewConflictError("Tag already exists"), http.StatusConflict},
		{"Unauthorized", models.NewUnauthorizedError("Invalid credentials"), http.StatusUnauthorized},
		{"Internal", models.NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{"Plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mapServiceError(tt.err))
		})
	}
}
