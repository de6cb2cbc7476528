package server

import (
	"strings"

	"recipebox/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListIngredients handles GET /api/ingredients
func (s *Server) ListIngredients(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 50)

	ingredients, err := s.ingredientRepo.ListByUser(c.UserContext(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(toIngredientResponses(ingredients))
}

// CreateIngredient handles POST /api/ingredients
func (s *Server) CreateIngredient(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}

	ingredient := &models.Ingredient{UserID: userID, Name: name}
	if err := s.ingredientRepo.Create(c.UserContext(), ingredient); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
}

// UpdateIngredient handles PUT and PATCH /api/ingredients/:id
func (s *Server) UpdateIngredient(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	ingredientID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Name is required"))
	}

	ingredient, err := s.ingredientRepo.GetByIDForUser(c.UserContext(), ingredientID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	ingredient.Name = name
	if err := s.ingredientRepo.Update(c.UserContext(), ingredient); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(IngredientResponse{ID: ingredient.ID, Name: ingredient.Name})
}

// DeleteIngredient handles DELETE /api/ingredients/:id
func (s *Server) DeleteIngredient(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	ingredientID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.ingredientRepo.Delete(c.UserContext(), ingredientID, userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
