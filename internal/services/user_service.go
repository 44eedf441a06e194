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
	ErrSelfFollow       = errors.New("you cannot follow yourself")
	ErrAlreadyFollowing = errors.New("you already follow this author")
	ErrNotFollowing     = errors.New("you do not follow this author")
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// List returns a page of users ordered by username.
func (s *UserService) List(viewerID uuid.UUID, page, limit int) (*dto.UsersListResponse, error) {
	var users []models.User
	var total int64

	s.db.Model(&models.User{}).Count(&total)

	err := s.db.Order("username ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	resp := dto.UsersListResponse{
		Users: make([]dto.UserResponse, len(users)),
		Total: total,
		Page:  page,
		Limit: limit,
	}
	for i := range users {
		resp.Users[i] = userResponse(&users[i], s.isFollowing(viewerID, users[i].ID))
	}
	return &resp, nil
}

func (s *UserService) Get(userID uuid.UUID, viewerID uuid.UUID) (*dto.UserResponse, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	resp := userResponse(&user, s.isFollowing(viewerID, user.ID))
	return &resp, nil
}

// Subscribe creates a follow edge from viewer to author. The composite
// unique index on follows backs the duplicate check.
func (s *UserService) Subscribe(viewerID, authorID uuid.UUID, recipesLimit int) (*dto.UserWithRecipesResponse, error) {
	if viewerID == authorID {
		return nil, ErrSelfFollow
	}

	var author models.User
	if err := s.db.First(&author, "id = ?", authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load author: %w", err)
	}

	if s.isFollowing(viewerID, authorID) {
		return nil, ErrAlreadyFollowing
	}

	follow := models.Follow{
		ID:         uuid.New(),
		FollowerID: viewerID,
		AuthorID:   authorID,
	}
	if err := s.db.Create(&follow).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFollowing
		}
		return nil, fmt.Errorf("failed to create follow: %w", err)
	}

	return s.authorWithRecipes(&author, recipesLimit)
}

func (s *UserService) Unsubscribe(viewerID, authorID uuid.UUID) error {
	var author models.User
	if err := s.db.First(&author, "id = ?", authorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load author: %w", err)
	}

	result := s.db.Where("follower_id = ? AND author_id = ?", viewerID, authorID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete follow: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// Subscriptions lists the authors the viewer follows, each annotated with
// their recipe count and up to recipesLimit most recent recipes.
func (s *UserService) Subscriptions(viewerID uuid.UUID, recipesLimit, page, limit int) (*dto.SubscriptionsResponse, error) {
	base := s.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.follower_id = ?", viewerID)

	var total int64
	base.Session(&gorm.Session{}).Count(&total)

	var authors []models.User
	err := base.Session(&gorm.Session{}).
		Order("users.username ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&authors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	resp := dto.SubscriptionsResponse{
		Authors: make([]dto.UserWithRecipesResponse, 0, len(authors)),
		Total:   total,
		Page:    page,
		Limit:   limit,
	}
	for i := range authors {
		entry, err := s.authorWithRecipes(&authors[i], recipesLimit)
		if err != nil {
			return nil, err
		}
		resp.Authors = append(resp.Authors, *entry)
	}
	return &resp, nil
}

func (s *UserService) authorWithRecipes(author *models.User, recipesLimit int) (*dto.UserWithRecipesResponse, error) {
	var count int64
	s.db.Model(&models.Recipe{}).Where("author_id = ?", author.ID).Count(&count)

	q := s.db.Where("author_id = ?", author.ID).Order("pub_date DESC")
	if recipesLimit > 0 {
		q = q.Limit(recipesLimit)
	}

	var recipes []models.Recipe
	if err := q.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to load author recipes: %w", err)
	}

	entry := dto.UserWithRecipesResponse{
		// Confined to the follow set, so is_subscribed is trivially true.
		UserResponse: userResponse(author, true),
		Recipes:      make([]dto.RecipeMinResponse, len(recipes)),
		RecipesCount: count,
	}
	for i := range recipes {
		entry.Recipes[i] = recipeMinResponse(&recipes[i])
	}
	return &entry, nil
}

// isFollowing is an explicit existence query against the follows table.
func (s *UserService) isFollowing(viewerID, authorID uuid.UUID) bool {
	if viewerID == uuid.Nil {
		return false
	}
	var n int64
	s.db.Model(&models.Follow{}).
		Where("follower_id = ? AND author_id = ?", viewerID, authorID).
		Count(&n)
	return n > 0
}

func recipeMinResponse(recipe *models.Recipe) dto.RecipeMinResponse {
	return dto.RecipeMinResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}
}
