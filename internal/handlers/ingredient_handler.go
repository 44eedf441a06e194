package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/okazarinova/platebook-backend/internal/dto"
	"github.com/okazarinova/platebook-backend/internal/services"
)

type IngredientHandler struct {
	catalogService *services.CatalogService
}

func NewIngredientHandler(catalogService *services.CatalogService) *IngredientHandler {
	return &IngredientHandler{catalogService: catalogService}
}

// List handles GET /ingredients?name=<prefix>.
func (h *IngredientHandler) List(c *fiber.Ctx) error {
	ingredients, err := h.catalogService.ListIngredients(c.Query("name"))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(ingredients)
}

func (h *IngredientHandler) Get(c *fiber.Ctx) error {
	ingredientID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid ingredient ID")
	}

	ingredient, err := h.catalogService.GetIngredient(ingredientID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(ingredient)
}

// Create handles POST /ingredients - admin only.
func (h *IngredientHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateIngredientRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	ingredient, err := h.catalogService.CreateIngredient(&req)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ingredient)
}
