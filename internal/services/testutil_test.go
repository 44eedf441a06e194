package services

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/okazarinova/platebook-backend/internal/config"
	"github.com/okazarinova/platebook-backend/internal/dto"
	"github.com/okazarinova/platebook-backend/internal/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory database. The DSN is unique per
// test so the connection pool shares one database without leaking state
// across tests.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Follow{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.IngredientLine{},
		&models.Favorite{},
		&models.CartItem{},
	))
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  900000000000,  // 15m
		JWTRefreshExpiry: 3600000000000, // 1h
	}
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		ID:       uuid.New(),
		Email:    username + "@example.com",
		Username: username,
		Password: string(hash),
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTag(t *testing.T, db *gorm.DB, name, color, slug string) *models.Tag {
	t.Helper()

	tag := models.Tag{ID: uuid.New(), Name: name, Color: color, Slug: slug}
	require.NoError(t, db.Create(&tag).Error)
	return &tag
}

func createIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()

	ingredient := models.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(&ingredient).Error)
	return &ingredient
}

func writeRequest(name string, tags []uuid.UUID, lines ...dto.IngredientLineRequest) *dto.RecipeWriteRequest {
	return &dto.RecipeWriteRequest{
		Ingredients: lines,
		Tags:        tags,
		Name:        name,
		Text:        "some cooking instructions",
		CookingTime: 30,
	}
}

func line(ingredientID uuid.UUID, amount int) dto.IngredientLineRequest {
	return dto.IngredientLineRequest{ID: ingredientID, Amount: amount}
}
