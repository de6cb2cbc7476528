package server

import (
	"io"

	"recipebox/internal/models"
	"recipebox/internal/service"

	"github.com/gofiber/fiber/v2"
)

type recipeWriteRequest struct {
	Title       *string   `json:"title"`
	TimeMinutes *int      `json:"time_minutes"`
	Price       *float64  `json:"price"`
	Link        *string   `json:"link"`
	Description *string   `json:"description"`
	Tags        *[]string `json:"tags"`
	Ingredients *[]string `json:"ingredients"`
	// Any client-supplied owner field is parsed and discarded; ownership
	// always comes from the authenticated caller.
	UserID *uint `json:"user_id"`
}

// ListRecipes handles GET /api/recipes and returns the summary shape.
func (s *Server) ListRecipes(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 20)

	recipes, err := s.recipeService.ListRecipes(c.UserContext(), service.ListRecipesInput{
		UserID: userID,
		Limit:  p.Limit,
		Offset: p.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	out := make([]RecipeSummaryResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, s.toRecipeSummaryResponse(&recipes[i]))
	}
	return c.JSON(out)
}

// GetRecipe handles GET /api/recipes/:id and returns the detail shape.
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	recipe, err := s.recipeService.GetRecipe(c.UserContext(), recipeID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(s.toRecipeDetailResponse(recipe))
}

// CreateRecipe handles POST /api/recipes
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req recipeWriteRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	in := service.CreateRecipeInput{UserID: userID}
	if req.Title != nil {
		in.Title = *req.Title
	}
	if req.TimeMinutes != nil {
		in.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		in.Price = *req.Price
	}
	if req.Link != nil {
		in.Link = *req.Link
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Tags != nil {
		in.Tags = *req.Tags
	}
	if req.Ingredients != nil {
		in.Ingredients = *req.Ingredients
	}

	recipe, err := s.recipeService.CreateRecipe(c.UserContext(), in)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(s.toRecipeDetailResponse(recipe))
}

// UpdateRecipe handles PUT and PATCH /api/recipes/:id
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req recipeWriteRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.UpdateRecipe(c.UserContext(), service.UpdateRecipeInput{
		UserID:      userID,
		RecipeID:    recipeID,
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Description: req.Description,
		Tags:        req.Tags,
		Ingredients: req.Ingredients,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(s.toRecipeDetailResponse(recipe))
}

// DeleteRecipe handles DELETE /api/recipes/:id
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.DeleteRecipe(c.UserContext(), recipeID, userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// UploadRecipeImage handles POST /api/recipes/:id/image
func (s *Server) UploadRecipeImage(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	file, err := c.FormFile("image")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError("Validation failed",
				map[string]string{"image": "No file uploaded"}))
	}

	src, err := file.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError("Validation failed",
				map[string]string{"image": "Unable to read uploaded file"}))
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewFieldValidationError("Validation failed",
				map[string]string{"image": "Unable to read uploaded file"}))
	}

	recipe, err := s.imageService.Upload(c.UserContext(), service.UploadRecipeImageInput{
		UserID:      userID,
		RecipeID:    recipeID,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(s.toRecipeDetailResponse(recipe))
}
