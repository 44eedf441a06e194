package services

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/okazarinova/platebook-backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTag_Validation(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	tag, err := svc.CreateTag(&dto.CreateTagRequest{Name: "Dinner", Color: "#1A2B3C", Slug: "dinner"})
	require.NoError(t, err)
	assert.Equal(t, "#1A2B3C", tag.Color)

	// Color must be #RRGGBB hex.
	_, err = svc.CreateTag(&dto.CreateTagRequest{Name: "Bad", Color: "red", Slug: "bad"})
	var vErrs validator.ValidationErrors
	assert.ErrorAs(t, err, &vErrs)

	// Name, color and slug are each unique.
	_, err = svc.CreateTag(&dto.CreateTagRequest{Name: "Dinner", Color: "#000000", Slug: "other"})
	assert.ErrorIs(t, err, ErrTagExists)
	_, err = svc.CreateTag(&dto.CreateTagRequest{Name: "Other", Color: "#1A2B3C", Slug: "other"})
	assert.ErrorIs(t, err, ErrTagExists)
}

func TestGetTag_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	_, err := svc.GetTag(uuid.New())
	assert.ErrorIs(t, err, ErrTagNotFound)
}

func TestListIngredients_PrefixFilter(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	createIngredient(t, db, "Flour", "g")
	createIngredient(t, db, "Flax seeds", "g")
	createIngredient(t, db, "Sugar", "g")

	all, err := svc.ListIngredients("")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// Prefix match is case-insensitive.
	filtered, err := svc.ListIngredients("fl")
	require.NoError(t, err)
	require.Len(t, filtered, 2)
	assert.Equal(t, "Flax seeds", filtered[0].Name)
	assert.Equal(t, "Flour", filtered[1].Name)

	none, err := svc.ListIngredients("xyz")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetIngredient(t *testing.T) {
	db := newTestDB(t)
	svc := NewCatalogService(db)

	flour := createIngredient(t, db, "Flour", "g")

	got, err := svc.GetIngredient(flour.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flour", got.Name)
	assert.Equal(t, "g", got.MeasurementUnit)

	_, err = svc.GetIngredient(uuid.New())
	assert.ErrorIs(t, err, ErrIngredientNotFound)
}
