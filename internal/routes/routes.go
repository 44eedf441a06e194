package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/okazarinova/platebook-backend/internal/config"
	"github.com/okazarinova/platebook-backend/internal/handlers"
	"github.com/okazarinova/platebook-backend/internal/middleware"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	tagHandler *handlers.TagHandler,
	ingredientHandler *handlers.IngredientHandler,
	recipeHandler *handlers.RecipeHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth - stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Catalog - public reads, admin writes
	api.Get("/tags/", tagHandler.List)
	api.Post("/tags/", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg), tagHandler.Create)
	api.Get("/tags/:id", tagHandler.Get)
	api.Get("/ingredients/", ingredientHandler.List)
	api.Post("/ingredients/", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg), ingredientHandler.Create)
	api.Get("/ingredients/:id", ingredientHandler.Get)

	// Users and follow graph. Fixed paths registered before /:id so that
	// "me" and "subscriptions" are not swallowed by the param route.
	api.Post("/users/", authHandler.Register)
	api.Get("/users/", middleware.JWTOptional(cfg), userHandler.List)
	api.Get("/users/me", middleware.JWTProtected(cfg), userHandler.Me)
	api.Get("/users/subscriptions", middleware.JWTProtected(cfg), userHandler.Subscriptions)
	api.Get("/users/:id", middleware.JWTOptional(cfg), userHandler.Get)
	api.Post("/users/:id/subscribe", middleware.JWTProtected(cfg), userHandler.Subscribe)
	api.Delete("/users/:id/subscribe", middleware.JWTProtected(cfg), userHandler.Unsubscribe)

	// Recipes. download_shopping_cart before /:id for the same reason.
	api.Get("/recipes/download_shopping_cart", middleware.JWTProtected(cfg), recipeHandler.DownloadShoppingCart)
	api.Get("/recipes/", middleware.JWTOptional(cfg), recipeHandler.List)
	api.Post("/recipes/", middleware.JWTProtected(cfg), recipeHandler.Create)
	api.Get("/recipes/:id", middleware.JWTOptional(cfg), recipeHandler.Get)
	api.Patch("/recipes/:id", middleware.JWTProtected(cfg), recipeHandler.Update)
	api.Delete("/recipes/:id", middleware.JWTProtected(cfg), recipeHandler.Delete)
	api.Post("/recipes/:id/favorite", middleware.JWTProtected(cfg), recipeHandler.Favorite)
	api.Delete("/recipes/:id/favorite", middleware.JWTProtected(cfg), recipeHandler.Unfavorite)
	api.Post("/recipes/:id/shopping_cart", middleware.JWTProtected(cfg), recipeHandler.AddToCart)
	api.Delete("/recipes/:id/shopping_cart", middleware.JWTProtected(cfg), recipeHandler.RemoveFromCart)
}
