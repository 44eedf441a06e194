package dto

import "github.com/google/uuid"

// IngredientLineRequest references an existing ingredient by id.
type IngredientLineRequest struct {
	ID     uuid.UUID `json:"id" validate:"required"`
	Amount int       `json:"amount" validate:"gte=1"`
}

// RecipeWriteRequest is the full write payload. Every write, including a
// rename-only PATCH, must carry the complete ingredient list and tag set.
type RecipeWriteRequest struct {
	Ingredients []IngredientLineRequest `json:"ingredients" validate:"required,min=1,dive"`
	Tags        []uuid.UUID             `json:"tags"`
	Image       string                  `json:"image"`
	Name        string                  `json:"name" validate:"required,max=200"`
	Text        string                  `json:"text"`
	CookingTime int                     `json:"cooking_time" validate:"gte=1"`
}

type IngredientLineResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

type RecipeResponse struct {
	ID               uuid.UUID                `json:"id"`
	Tags             []TagResponse            `json:"tags"`
	Author           UserResponse             `json:"author"`
	Ingredients      []IngredientLineResponse `json:"ingredients"`
	IsFavorited      bool                     `json:"is_favorited"`
	IsInShoppingCart bool                     `json:"is_in_shopping_cart"`
	Name             string                   `json:"name"`
	Image            string                   `json:"image"`
	Text             string                   `json:"text"`
	CookingTime      int                      `json:"cooking_time"`
}

// RecipeMinResponse is the minimal summary used by toggle responses and
// subscription listings.
type RecipeMinResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

type RecipesListResponse struct {
	Recipes []RecipeResponse `json:"recipes"`
	Total   int64            `json:"total"`
	Page    int              `json:"page"`
	Limit   int              `json:"limit"`
}
