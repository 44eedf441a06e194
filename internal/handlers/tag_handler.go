package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/okazarinova/platebook-backend/internal/dto"
	"github.com/okazarinova/platebook-backend/internal/services"
)

type TagHandler struct {
	catalogService *services.CatalogService
}

func NewTagHandler(catalogService *services.CatalogService) *TagHandler {
	return &TagHandler{catalogService: catalogService}
}

func (h *TagHandler) List(c *fiber.Ctx) error {
	tags, err := h.catalogService.ListTags()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(tags)
}

func (h *TagHandler) Get(c *fiber.Ctx) error {
	tagID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid tag ID")
	}

	tag, err := h.catalogService.GetTag(tagID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(tag)
}

// Create handles POST /tags - admin only.
func (h *TagHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTagRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	tag, err := h.catalogService.CreateTag(&req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}
