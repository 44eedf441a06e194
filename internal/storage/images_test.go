package storage

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveDataURI(t *testing.T) {
	dir := t.TempDir()
	store := NewImageStore(dir)

	payload := base64.StdEncoding.EncodeToString([]byte("fake image bytes"))
	url, err := store.SaveDataURI("data:image/png;base64," + payload)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "/uploads/recipes/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, []byte("fake image bytes"), stored)
}

func TestSaveDataURI_Rejections(t *testing.T) {
	store := NewImageStore(t.TempDir())

	_, err := store.SaveDataURI("https://example.com/image.png")
	assert.ErrorIs(t, err, ErrNotDataURI)

	_, err = store.SaveDataURI("data:image/png,no-base64-marker")
	assert.ErrorIs(t, err, ErrMalformedImageData)

	_, err = store.SaveDataURI("data:image/png;base64,!!!not-base64!!!")
	assert.ErrorIs(t, err, ErrMalformedImageData)

	payload := base64.StdEncoding.EncodeToString([]byte("x"))
	_, err = store.SaveDataURI("data:image/tiff;base64," + payload)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestSaveDataURI_GeneratedNamesAreUnique(t *testing.T) {
	store := NewImageStore(t.TempDir())

	payload := base64.StdEncoding.EncodeToString([]byte("same bytes"))
	first, err := store.SaveDataURI("data:image/jpeg;base64," + payload)
	require.NoError(t, err)
	second, err := store.SaveDataURI("data:image/jpeg;base64," + payload)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
