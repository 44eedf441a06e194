package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/okazarinova/platebook-backend/internal/dto"
	"github.com/okazarinova/platebook-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAlreadyFavorited = errors.New("recipe is already in favorites")
	ErrNotFavorited     = errors.New("recipe is not in favorites")
	ErrAlreadyInCart    = errors.New("recipe is already in the shopping cart")
	ErrNotInCart        = errors.New("recipe is not in the shopping cart")
)

// ToggleService adds and removes a user from a recipe's favorite and
// shopping-cart sets. The membership pre-check only shapes the error
// message; the composite unique index is what makes concurrent duplicate
// adds fail at the storage layer.
type ToggleService struct {
	db *gorm.DB
}

func NewToggleService(db *gorm.DB) *ToggleService {
	return &ToggleService{db: db}
}

func (s *ToggleService) AddFavorite(userID, recipeID uuid.UUID) (*dto.RecipeMinResponse, error) {
	recipe, err := s.loadRecipe(recipeID)
	if err != nil {
		return nil, err
	}
	if membershipExists(s.db, &models.Favorite{}, userID, recipeID) {
		return nil, ErrAlreadyFavorited
	}

	row := models.Favorite{ID: uuid.New(), UserID: userID, RecipeID: recipeID}
	if err := s.db.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFavorited
		}
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	resp := recipeMinResponse(recipe)
	return &resp, nil
}

func (s *ToggleService) RemoveFavorite(userID, recipeID uuid.UUID) error {
	if _, err := s.loadRecipe(recipeID); err != nil {
		return err
	}

	result := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFavorited
	}
	return nil
}

func (s *ToggleService) AddToCart(userID, recipeID uuid.UUID) (*dto.RecipeMinResponse, error) {
	recipe, err := s.loadRecipe(recipeID)
	if err != nil {
		return nil, err
	}
	if membershipExists(s.db, &models.CartItem{}, userID, recipeID) {
		return nil, ErrAlreadyInCart
	}

	row := models.CartItem{ID: uuid.New(), UserID: userID, RecipeID: recipeID}
	if err := s.db.Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyInCart
		}
		return nil, fmt.Errorf("failed to add to shopping cart: %w", err)
	}

	resp := recipeMinResponse(recipe)
	return &resp, nil
}

func (s *ToggleService) RemoveFromCart(userID, recipeID uuid.UUID) error {
	if _, err := s.loadRecipe(recipeID); err != nil {
		return err
	}

	result := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove from shopping cart: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotInCart
	}
	return nil
}

func (s *ToggleService) loadRecipe(recipeID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	return &recipe, nil
}
