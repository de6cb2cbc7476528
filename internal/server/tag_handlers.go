package server

import (
	"strings"

	"recipebox/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListTags handles GET /api/tags
func (s *Server) ListTags(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	p := parsePagination(c, 50)

	tags, err := s.tagRepo.ListByUser(c.UserContext(), userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(toTagResponses(tags))
}

// CreateTag handles POST /api/tags
func (s *Server) CreateTag(c *fiber.Ctx) error {
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

	tag := &models.Tag{UserID: userID, Name: name}
	if err := s.tagRepo.Create(c.UserContext(), tag); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(TagResponse{ID: tag.ID, Name: tag.Name})
}

// UpdateTag handles PUT and PATCH /api/tags/:id
func (s *Server) UpdateTag(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	tagID, err := s.parseID(c, "id")
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

	tag, err := s.tagRepo.GetByIDForUser(c.UserContext(), tagID, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	tag.Name = name
	if err := s.tagRepo.Update(c.UserContext(), tag); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(TagResponse{ID: tag.ID, Name: tag.Name})
}

// DeleteTag handles DELETE /api/tags/:id
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	tagID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.tagRepo.Delete(c.UserContext(), tagID, userID); err != nil {
		return respondServiceError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
