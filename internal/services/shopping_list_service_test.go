package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport_SumsAcrossCart(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db)
	toggles := NewToggleService(db)
	svc := NewShoppingListService(db)

	author := createUser(t, db, "alice")
	shopper := createUser(t, db, "bob")
	flour := createIngredient(t, db, "Flour", "g")
	eggs := createIngredient(t, db, "Eggs", "pcs")

	pancakes, err := recipes.Create(author.ID, writeRequest("Pancakes", nil, line(flour.ID, 100), line(eggs.ID, 2)), "")
	require.NoError(t, err)
	bread, err := recipes.Create(author.ID, writeRequest("Bread", nil, line(flour.ID, 50)), "")
	require.NoError(t, err)
	// Not in the cart; must not contribute to the sums.
	_, err = recipes.Create(author.ID, writeRequest("Cake", nil, line(flour.ID, 999)), "")
	require.NoError(t, err)

	_, err = toggles.AddToCart(shopper.ID, pancakes.ID)
	require.NoError(t, err)
	_, err = toggles.AddToCart(shopper.ID, bread.ID)
	require.NoError(t, err)

	report, err := svc.BuildReport(shopper.ID)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(report, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, ShoppingListHeader, lines[0])
	assert.Empty(t, lines[1])
	// Sorted by ingredient name, one line per distinct ingredient.
	assert.Equal(t, "Eggs: 2 pcs", lines[2])
	assert.Equal(t, "Flour: 150 g", lines[3])
}

func TestBuildReport_EmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := NewShoppingListService(db)

	shopper := createUser(t, db, "bob")

	report, err := svc.BuildReport(shopper.ID)
	require.NoError(t, err)
	assert.Equal(t, ShoppingListHeader+"\n\n", report)
}
