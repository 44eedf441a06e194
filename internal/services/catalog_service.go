package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/okazarinova/platebook-backend/internal/dto"
	"github.com/okazarinova/platebook-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrTagNotFound        = errors.New("tag not found")
	ErrTagExists          = errors.New("tag with this name, color or slug already exists")
	ErrIngredientNotFound = errors.New("ingredient not found")
)

// CatalogService serves the tag and ingredient reference data.
type CatalogService struct {
	db       *gorm.DB
	validate *validator.Validate
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db, validate: validator.New()}
}

func (s *CatalogService) ListTags() ([]dto.TagResponse, error) {
	var tags []models.Tag
	if err := s.db.Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	resp := make([]dto.TagResponse, len(tags))
	for i := range tags {
		resp[i] = tagResponse(&tags[i])
	}
	return resp, nil
}

func (s *CatalogService) GetTag(tagID uuid.UUID) (*dto.TagResponse, error) {
	var tag models.Tag
	if err := s.db.First(&tag, "id = ?", tagID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, fmt.Errorf("failed to load tag: %w", err)
	}
	resp := tagResponse(&tag)
	return &resp, nil
}

func (s *CatalogService) CreateTag(req *dto.CreateTagRequest) (*dto.TagResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	var n int64
	s.db.Model(&models.Tag{}).
		Where("name = ? OR color = ? OR slug = ?", req.Name, req.Color, req.Slug).
		Count(&n)
	if n > 0 {
		return nil, ErrTagExists
	}

	tag := models.Tag{
		ID:    uuid.New(),
		Name:  req.Name,
		Color: req.Color,
		Slug:  req.Slug,
	}
	if err := s.db.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagExists
		}
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}

	resp := tagResponse(&tag)
	return &resp, nil
}

// ListIngredients returns ingredients, optionally filtered by a
// case-insensitive name prefix.
func (s *CatalogService) ListIngredients(namePrefix string) ([]dto.IngredientResponse, error) {
	q := s.db.Order("name ASC")
	if namePrefix != "" {
		q = q.Where("LOWER(name) LIKE ?", strings.ToLower(namePrefix)+"%")
	}

	var ingredients []models.Ingredient
	if err := q.Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}

	resp := make([]dto.IngredientResponse, len(ingredients))
	for i := range ingredients {
		resp[i] = ingredientResponse(&ingredients[i])
	}
	return resp, nil
}

func (s *CatalogService) GetIngredient(ingredientID uuid.UUID) (*dto.IngredientResponse, error) {
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, "id = ?", ingredientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, fmt.Errorf("failed to load ingredient: %w", err)
	}
	resp := ingredientResponse(&ingredient)
	return &resp, nil
}

func (s *CatalogService) CreateIngredient(req *dto.CreateIngredientRequest) (*dto.IngredientResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}

	ingredient := models.Ingredient{
		ID:              uuid.New(),
		Name:            req.Name,
		MeasurementUnit: req.MeasurementUnit,
	}
	if err := s.db.Create(&ingredient).Error; err != nil {
		return nil, fmt.Errorf("failed to create ingredient: %w", err)
	}

	resp := ingredientResponse(&ingredient)
	return &resp, nil
}

func tagResponse(tag *models.Tag) dto.TagResponse {
	return dto.TagResponse{
		ID:    tag.ID,
		Name:  tag.Name,
		Color: tag.Color,
		Slug:  tag.Slug,
	}
}

func ingredientResponse(ingredient *models.Ingredient) dto.IngredientResponse {
	return dto.IngredientResponse{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}
