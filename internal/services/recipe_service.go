package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/okazarinova/platebook-backend/internal/dto"
	"github.com/okazarinova/platebook-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrRecipeNotFound      = errors.New("recipe not found")
	ErrNotAuthor           = errors.New("only the author can modify this recipe")
	ErrNoIngredients       = errors.New("at least one ingredient is required")
	ErrDuplicateIngredient = errors.New("ingredients cannot repeat within a recipe")
	ErrUnknownIngredient   = errors.New("referenced ingredient does not exist")
	ErrUnknownTag          = errors.New("referenced tag does not exist")
)

// RecipeListFilter narrows the recipe listing. Viewer scopes the
// favorited/cart filters and the viewer-relative response fields.
type RecipeListFilter struct {
	ViewerID         uuid.UUID
	AuthorID         *uuid.UUID
	TagSlugs         []string
	IsFavorited      bool
	IsInShoppingCart bool
	Page             int
	Limit            int
}

// RecipeService validates and persists the recipe aggregate: the recipe
// row, its ingredient lines and its tag set, atomically.
type RecipeService struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db, validate: validator.New()}
}

// Create persists a new recipe. The author is always the authenticated
// caller, never part of the payload.
func (s *RecipeService) Create(authorID uuid.UUID, req *dto.RecipeWriteRequest, image string) (*dto.RecipeResponse, error) {
	if err := s.validateComposition(req); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		Image:       image,
		CookingTime: req.CookingTime,
		PubDate:     time.Now(),
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		if err := createLines(tx, recipe.ID, req.Ingredients); err != nil {
			return err
		}
		return replaceTags(tx, &recipe, req.Tags)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(recipe.ID, authorID)
}

// Update replaces the whole aggregate: scalar fields, the complete
// ingredient-line set (delete-all-then-recreate, never a merge) and the
// complete tag set, in one transaction. An empty image keeps the stored one.
func (s *RecipeService) Update(recipeID, callerID uuid.UUID, req *dto.RecipeWriteRequest, image string) (*dto.RecipeResponse, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	if recipe.AuthorID != callerID {
		return nil, ErrNotAuthor
	}

	if err := s.validateComposition(req); err != nil {
		return nil, err
	}

	recipe.Name = req.Name
	recipe.Text = req.Text
	recipe.CookingTime = req.CookingTime
	if image != "" {
		recipe.Image = image
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&recipe).Error; err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientLine{}).Error; err != nil {
			return fmt.Errorf("failed to clear ingredient lines: %w", err)
		}
		if err := createLines(tx, recipe.ID, req.Ingredients); err != nil {
			return err
		}
		return replaceTags(tx, &recipe, req.Tags)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(recipe.ID, callerID)
}

// Delete removes a recipe; lines, tag links and memberships cascade.
func (s *RecipeService) Delete(recipeID, callerID uuid.UUID) error {
	var recipe models.Recipe
	if err := s.db.First(&recipe, "id = ?", recipeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return fmt.Errorf("failed to load recipe: %w", err)
	}
	if recipe.AuthorID != callerID {
		return ErrNotAuthor
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientLine{}).Error; err != nil {
			return fmt.Errorf("failed to delete ingredient lines: %w", err)
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Favorite{}).Error; err != nil {
			return fmt.Errorf("failed to delete favorites: %w", err)
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete cart items: %w", err)
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return fmt.Errorf("failed to clear tags: %w", err)
		}
		if err := tx.Delete(&recipe).Error; err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		return nil
	})
}

// Get returns the fully hydrated representation of one recipe.
func (s *RecipeService) Get(recipeID, viewerID uuid.UUID) (*dto.RecipeResponse, error) {
	var recipe models.Recipe
	err := s.db.Preload("Tags").Preload("Author").First(&recipe, "id = ?", recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to load recipe: %w", err)
	}
	return s.project(&recipe, viewerID)
}

// List returns a page of recipes, newest first, honoring the filter.
func (s *RecipeService) List(filter RecipeListFilter) (*dto.RecipesListResponse, error) {
	q := s.db.Model(&models.Recipe{})

	if filter.AuthorID != nil {
		q = q.Where("author_id = ?", *filter.AuthorID)
	}
	if filter.IsFavorited && filter.ViewerID != uuid.Nil {
		q = q.Where("id IN (?)", s.db.Model(&models.Favorite{}).
			Select("recipe_id").
			Where("user_id = ?", filter.ViewerID))
	}
	if filter.IsInShoppingCart && filter.ViewerID != uuid.Nil {
		q = q.Where("id IN (?)", s.db.Model(&models.CartItem{}).
			Select("recipe_id").
			Where("user_id = ?", filter.ViewerID))
	}
	if len(filter.TagSlugs) > 0 {
		// OR-combined slugs; the IN subquery deduplicates recipes that
		// carry more than one of the requested tags.
		q = q.Where("id IN (?)", s.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs))
	}

	var total int64
	q.Session(&gorm.Session{}).Count(&total)

	var recipes []models.Recipe
	err := q.Session(&gorm.Session{}).
		Preload("Tags").
		Preload("Author").
		Order("pub_date DESC").
		Limit(filter.Limit).
		Offset((filter.Page - 1) * filter.Limit).
		Find(&recipes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	resp := dto.RecipesListResponse{
		Recipes: make([]dto.RecipeResponse, 0, len(recipes)),
		Total:   total,
		Page:    filter.Page,
		Limit:   filter.Limit,
	}
	for i := range recipes {
		projected, err := s.project(&recipes[i], filter.ViewerID)
		if err != nil {
			return nil, err
		}
		resp.Recipes = append(resp.Recipes, *projected)
	}
	return &resp, nil
}

// validateComposition checks the whole write payload before any mutation.
func (s *RecipeService) validateComposition(req *dto.RecipeWriteRequest) error {
	if len(req.Ingredients) == 0 {
		return ErrNoIngredients
	}
	if err := s.validate.Struct(req); err != nil {
		return err
	}

	seen := make(map[uuid.UUID]struct{}, len(req.Ingredients))
	ids := make([]uuid.UUID, 0, len(req.Ingredients))
	for _, line := range req.Ingredients {
		if _, dup := seen[line.ID]; dup {
			return ErrDuplicateIngredient
		}
		seen[line.ID] = struct{}{}
		ids = append(ids, line.ID)
	}

	var n int64
	s.db.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&n)
	if n != int64(len(ids)) {
		return ErrUnknownIngredient
	}

	if len(req.Tags) > 0 {
		s.db.Model(&models.Tag{}).Where("id IN ?", req.Tags).Count(&n)
		if n != int64(len(uniqueIDs(req.Tags))) {
			return ErrUnknownTag
		}
	}
	return nil
}

func createLines(tx *gorm.DB, recipeID uuid.UUID, lines []dto.IngredientLineRequest) error {
	rows := make([]models.IngredientLine, len(lines))
	for i, line := range lines {
		rows[i] = models.IngredientLine{
			ID:           uuid.New(),
			RecipeID:     recipeID,
			IngredientID: line.ID,
			Amount:       line.Amount,
			Position:     i,
		}
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to create ingredient lines: %w", err)
	}
	return nil
}

func replaceTags(tx *gorm.DB, recipe *models.Recipe, tagIDs []uuid.UUID) error {
	var tags []models.Tag
	if len(tagIDs) > 0 {
		if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
			return fmt.Errorf("failed to load tags: %w", err)
		}
	}
	if err := tx.Model(recipe).Association("Tags").Replace(&tags); err != nil {
		return fmt.Errorf("failed to set tags: %w", err)
	}
	return nil
}

// project maps a recipe to its wire representation, computing the
// viewer-relative membership booleans with explicit existence queries.
func (s *RecipeService) project(recipe *models.Recipe, viewerID uuid.UUID) (*dto.RecipeResponse, error) {
	var lines []models.IngredientLine
	err := s.db.Preload("Ingredient").
		Where("recipe_id = ?", recipe.ID).
		Order("position ASC").
		Find(&lines).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load ingredient lines: %w", err)
	}

	resp := dto.RecipeResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		Tags:        make([]dto.TagResponse, len(recipe.Tags)),
		Ingredients: make([]dto.IngredientLineResponse, len(lines)),
		Author:      userResponse(&recipe.Author, s.followExists(viewerID, recipe.AuthorID)),
	}
	for i := range recipe.Tags {
		resp.Tags[i] = tagResponse(&recipe.Tags[i])
	}
	for i := range lines {
		resp.Ingredients[i] = dto.IngredientLineResponse{
			ID:              lines[i].IngredientID,
			Name:            lines[i].Ingredient.Name,
			MeasurementUnit: lines[i].Ingredient.MeasurementUnit,
			Amount:          lines[i].Amount,
		}
	}

	if viewerID != uuid.Nil {
		resp.IsFavorited = membershipExists(s.db, &models.Favorite{}, viewerID, recipe.ID)
		resp.IsInShoppingCart = membershipExists(s.db, &models.CartItem{}, viewerID, recipe.ID)
	}
	return &resp, nil
}

func (s *RecipeService) followExists(viewerID, authorID uuid.UUID) bool {
	if viewerID == uuid.Nil {
		return false
	}
	var n int64
	s.db.Model(&models.Follow{}).
		Where("follower_id = ? AND author_id = ?", viewerID, authorID).
		Count(&n)
	return n > 0
}

func membershipExists(db *gorm.DB, model interface{}, userID, recipeID uuid.UUID) bool {
	var n int64
	db.Model(model).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&n)
	return n > 0
}

func uniqueIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
