package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/okazarinova/platebook-backend/internal/authn"
	"github.com/okazarinova/platebook-backend/internal/services"
	"github.com/okazarinova/platebook-backend/internal/storage"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List handles GET /users - public, viewer-relative is_subscribed.
func (h *UserHandler) List(c *fiber.Ctx) error {
	page, limit := pagination(c)

	resp, err := h.userService.List(authn.Viewer(c), page, limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	resp, err := h.userService.Get(userID, authn.Viewer(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

// Me handles GET /users/me.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, err := authn.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.userService.Get(userID, userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(resp)
}

// Subscriptions handles GET /users/subscriptions?recipes_limit=N.
func (h *UserHandler) Subscriptions(c *fiber.Ctx) error {
	viewerID, err := authn.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	page, limit := pagination(c)
	recipesLimit := c.QueryInt("recipes_limit", 0)

	resp, err := h.userService.Subscriptions(viewerID, recipesLimit, page, limit)
	if err != nil {
		return serviceError(c, err)
	}

	for i := range resp.Authors {
		for j := range resp.Authors[i].Recipes {
			resp.Authors[i].Recipes[j].Image = storage.AbsoluteURL(c, resp.Authors[i].Recipes[j].Image)
		}
	}
	return c.JSON(resp)
}

// Subscribe handles POST /users/:id/subscribe.
func (h *UserHandler) Subscribe(c *fiber.Ctx) error {
	viewerID, err := authn.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	authorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	recipesLimit := c.QueryInt("recipes_limit", 0)

	resp, err := h.userService.Subscribe(viewerID, authorID, recipesLimit)
	if err != nil {
		return serviceError(c, err)
	}

	for i := range resp.Recipes {
		resp.Recipes[i].Image = storage.AbsoluteURL(c, resp.Recipes[i].Image)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Unsubscribe handles DELETE /users/:id/subscribe.
func (h *UserHandler) Unsubscribe(c *fiber.Ctx) error {
	viewerID, err := authn.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	authorID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	if err := h.userService.Unsubscribe(viewerID, authorID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func pagination(c *fiber.Ctx) (int, int) {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
