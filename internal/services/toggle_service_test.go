package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoriteToggle(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db)
	svc := NewToggleService(db)

	author := createUser(t, db, "alice")
	fan := createUser(t, db, "bob")
	i1 := createIngredient(t, db, "Flour", "g")

	created, err := recipes.Create(author.ID, writeRequest("Cake", nil, line(i1.ID, 1)), "/uploads/recipes/c.jpg")
	require.NoError(t, err)

	// Add returns the minimal summary.
	summary, err := svc.AddFavorite(fan.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, summary.ID)
	assert.Equal(t, "Cake", summary.Name)
	assert.Equal(t, "/uploads/recipes/c.jpg", summary.Image)
	assert.Equal(t, 30, summary.CookingTime)

	got, err := recipes.Get(created.ID, fan.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFavorited)

	// Adding twice in a row is rejected the second time.
	_, err = svc.AddFavorite(fan.ID, created.ID)
	assert.ErrorIs(t, err, ErrAlreadyFavorited)

	require.NoError(t, svc.RemoveFavorite(fan.ID, created.ID))

	got, err = recipes.Get(created.ID, fan.ID)
	require.NoError(t, err)
	assert.False(t, got.IsFavorited)

	assert.ErrorIs(t, svc.RemoveFavorite(fan.ID, created.ID), ErrNotFavorited)
}

func TestShoppingCartToggle(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db)
	svc := NewToggleService(db)

	author := createUser(t, db, "alice")
	fan := createUser(t, db, "bob")
	i1 := createIngredient(t, db, "Flour", "g")

	created, err := recipes.Create(author.ID, writeRequest("Cake", nil, line(i1.ID, 1)), "")
	require.NoError(t, err)

	summary, err := svc.AddToCart(fan.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, summary.ID)

	_, err = svc.AddToCart(fan.ID, created.ID)
	assert.ErrorIs(t, err, ErrAlreadyInCart)

	got, err := recipes.Get(created.ID, fan.ID)
	require.NoError(t, err)
	assert.True(t, got.IsInShoppingCart)
	assert.False(t, got.IsFavorited)

	require.NoError(t, svc.RemoveFromCart(fan.ID, created.ID))
	assert.ErrorIs(t, svc.RemoveFromCart(fan.ID, created.ID), ErrNotInCart)
}

func TestToggle_UnknownRecipe(t *testing.T) {
	db := newTestDB(t)
	svc := NewToggleService(db)

	fan := createUser(t, db, "bob")

	_, err := svc.AddFavorite(fan.ID, uuid.New())
	assert.ErrorIs(t, err, ErrRecipeNotFound)

	assert.ErrorIs(t, svc.RemoveFromCart(fan.ID, uuid.New()), ErrRecipeNotFound)
}

// The two toggle sets are independent: membership in one never implies
// membership in the other.
func TestToggle_SetsAreIndependent(t *testing.T) {
	db := newTestDB(t)
	recipes := NewRecipeService(db)
	svc := NewToggleService(db)

	author := createUser(t, db, "alice")
	fan := createUser(t, db, "bob")
	i1 := createIngredient(t, db, "Flour", "g")

	created, err := recipes.Create(author.ID, writeRequest("Cake", nil, line(i1.ID, 1)), "")
	require.NoError(t, err)

	_, err = svc.AddFavorite(fan.ID, created.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.RemoveFromCart(fan.ID, created.ID), ErrNotInCart)

	_, err = svc.AddToCart(fan.ID, created.ID)
	require.NoError(t, err)

	got, err := recipes.Get(created.ID, fan.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFavorited)
	assert.True(t, got.IsInShoppingCart)
}
