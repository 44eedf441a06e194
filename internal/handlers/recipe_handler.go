package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/okazarinova/platebook-backend/internal/authn"
	"github.com/okazarinova/platebook-backend/internal/dto"
	"github.com/okazarinova/platebook-backend/internal/services"
	"github.com/okazarinova/platebook-backend/internal/storage"
)

type RecipeHandler struct {
	recipeService   *services.RecipeService
	toggleService   *services.ToggleService
	shoppingService *services.ShoppingListService
	images          *storage.ImageStore
}

func NewRecipeHandler(
	recipeService *services.RecipeService,
	toggleService *services.ToggleService,
	shoppingService *services.ShoppingListService,
	images *storage.ImageStore,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService:   recipeService,
		toggleService:   toggleService,
		shoppingService: shoppingService,
		images:          images,
	}
}

// List handles GET /recipes with the is_favorited, is_in_shopping_cart,
// author and repeatable tags filters.
func (h *RecipeHandler) List(c *fiber.Ctx) error {
	page, limit := pagination(c)
	filter := services.RecipeListFilter{
		ViewerID:         authn.Viewer(c),
		IsFavorited:      c.Query("is_favorited") == "1",
		IsInShoppingCart: c.Query("is_in_shopping_cart") == "1",
		Page:             page,
		Limit:            limit,
	}

	if author := c.Query("author"); author != "" {
		authorID, err := uuid.Parse(author)
		if err != nil {
			return badRequest(c, "Invalid author ID")
		}
		filter.AuthorID = &authorID
	}

	if args := c.Context().QueryArgs().PeekMulti("tags"); len(args) > 0 {
		for _, slug := range args {
			filter.TagSlugs = append(filter.TagSlugs, string(slug))
		}
	}

	resp, err := h.recipeService.List(filter)
	if err != nil {
		return serviceError(c, err)
	}

	for i := range resp.Recipes {
		resp.Recipes[i].Image = storage.AbsoluteURL(c, resp.Recipes[i].Image)
	}
	return c.JSON(resp)
}

// Get handles GET /recipes/:id.
func (h *RecipeHandler) Get(c *fiber.Ctx) error {
	recipeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid recipe ID")
	}

	resp, err := h.recipeService.Get(recipeID, authn.Viewer(c))
	if err != nil {
		return serviceError(c, err)
	}

	resp.Image = storage.AbsoluteURL(c, resp.Image)
	return c.JSON(resp)
}

// Create handles POST /recipes. The payload is either JSON with a base64
// data-URI image, or multipart/form-data with a JSON "data" field and an
// "image" file; both normalize to one stored file.
func (h *RecipeHandler) Create(c *fiber.Ctx) error {
	authorID, err := authn.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	req, image, err := h.parsePayload(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.recipeService.Create(authorID, req, image)
	if err != nil {
		return serviceError(c, err)
	}

	resp.Image = storage.AbsoluteURL(c, resp.Image)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Update handles PATCH /recipes/:id. Partial field updates still require
// the complete ingredient list and tag set.
func (h *RecipeHandler) Update(c *fiber.Ctx) error {
	callerID, err := authn.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	recipeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid recipe ID")
	}

	req, image, err := h.parsePayload(c)
	if err != nil {
		return badRequest(c, err.Error())
	}

	resp, err := h.recipeService.Update(recipeID, callerID, req, image)
	if err != nil {
		return serviceError(c, err)
	}

	resp.Image = storage.AbsoluteURL(c, resp.Image)
	return c.JSON(resp)
}

// Delete handles DELETE /recipes/:id - author only.
func (h *RecipeHandler) Delete(c *fiber.Ctx) error {
	callerID, err := authn.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	recipeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid recipe ID")
	}

	if err := h.recipeService.Delete(recipeID, callerID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Favorite handles POST /recipes/:id/favorite.
func (h *RecipeHandler) Favorite(c *fiber.Ctx) error {
	return h.toggleAdd(c, h.toggleService.AddFavorite)
}

// Unfavorite handles DELETE /recipes/:id/favorite.
func (h *RecipeHandler) Unfavorite(c *fiber.Ctx) error {
	return h.toggleRemove(c, h.toggleService.RemoveFavorite)
}

// AddToCart handles POST /recipes/:id/shopping_cart.
func (h *RecipeHandler) AddToCart(c *fiber.Ctx) error {
	return h.toggleAdd(c, h.toggleService.AddToCart)
}

// RemoveFromCart handles DELETE /recipes/:id/shopping_cart.
func (h *RecipeHandler) RemoveFromCart(c *fiber.Ctx) error {
	return h.toggleRemove(c, h.toggleService.RemoveFromCart)
}

// DownloadShoppingCart handles GET /recipes/download_shopping_cart.
func (h *RecipeHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	userID, err := authn.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	report, err := h.shoppingService.BuildReport(userID)
	if err != nil {
		return serviceError(c, err)
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="shopping_cart.txt"`)
	return c.SendString(report)
}

func (h *RecipeHandler) toggleAdd(c *fiber.Ctx, add func(uuid.UUID, uuid.UUID) (*dto.RecipeMinResponse, error)) error {
	userID, err := authn.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	recipeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid recipe ID")
	}

	resp, err := add(userID, recipeID)
	if err != nil {
		return serviceError(c, err)
	}

	resp.Image = storage.AbsoluteURL(c, resp.Image)
	return c.Status(fiber.StatusCreated).JSON(resp)
}

func (h *RecipeHandler) toggleRemove(c *fiber.Ctx, remove func(uuid.UUID, uuid.UUID) error) error {
	userID, err := authn.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	recipeID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid recipe ID")
	}

	if err := remove(userID, recipeID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parsePayload extracts the write request and stores the image, if one was
// supplied in either accepted shape.
func (h *RecipeHandler) parsePayload(c *fiber.Ctx) (*dto.RecipeWriteRequest, string, error) {
	var req dto.RecipeWriteRequest

	if strings.HasPrefix(c.Get(fiber.HeaderContentType), "multipart/form-data") {
		if err := json.Unmarshal([]byte(c.FormValue("data")), &req); err != nil {
			return nil, "", errInvalidPayload
		}

		file, err := c.FormFile("image")
		if err != nil {
			return &req, "", nil
		}
		image, err := h.images.SaveMultipart(c, file)
		if err != nil {
			return nil, "", err
		}
		return &req, image, nil
	}

	if err := c.BodyParser(&req); err != nil {
		return nil, "", errInvalidPayload
	}

	if req.Image == "" {
		return &req, "", nil
	}
	image, err := h.images.SaveDataURI(req.Image)
	if err != nil {
		return nil, "", err
	}
	return &req, image, nil
}
