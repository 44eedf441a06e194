package services

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/okazarinova/platebook-backend/internal/models"
	"gorm.io/gorm"
)

// ShoppingListHeader opens every generated shopping list.
const ShoppingListHeader = "Shopping list:"

// ShoppingListService aggregates ingredient amounts across every recipe
// in a user's shopping cart.
type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

type shoppingListRow struct {
	Name            string
	MeasurementUnit string
	Total           int
}

// BuildReport sums line amounts grouped by ingredient and renders one
// "<name>: <total> <unit>" line per distinct ingredient, sorted by name.
// An empty cart yields the header alone.
func (s *ShoppingListService) BuildReport(userID uuid.UUID) (string, error) {
	var rows []shoppingListRow
	err := s.db.Table("ingredient_lines").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_lines.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = ingredient_lines.ingredient_id").
		Where("ingredient_lines.recipe_id IN (?)", s.db.Model(&models.CartItem{}).
			Select("recipe_id").
			Where("user_id = ?", userID)).
		Group("ingredients.id, ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC").
		Scan(&rows).Error
	if err != nil {
		return "", fmt.Errorf("failed to aggregate shopping list: %w", err)
	}

	var b strings.Builder
	b.WriteString(ShoppingListHeader)
	b.WriteString("\n\n")
	for _, row := range rows {
		fmt.Fprintf(&b, "%s: %d %s\n", row.Name, row.Total, row.MeasurementUnit)
	}
	return b.String(), nil
}
