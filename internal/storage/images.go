package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var (
	ErrNotDataURI         = errors.New("not a data URI image")
	ErrUnsupportedImage   = errors.New("unsupported image format")
	ErrMalformedImageData = errors.New("malformed base64 image data")
)

var allowedExtensions = map[string]bool{
	"jpeg": true,
	"jpg":  true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

const maxImageSize = 10 * 1024 * 1024

// ImageStore writes recipe images under a base directory and hands back
// the relative URL they are served from.
type ImageStore struct {
	dir string
}

func NewImageStore(dir string) *ImageStore {
	return &ImageStore{dir: dir}
}

// SaveDataURI decodes a "data:image/<ext>;base64,<payload>" string into a
// stored file with a generated name and returns its relative URL.
func (s *ImageStore) SaveDataURI(data string) (string, error) {
	if !strings.HasPrefix(data, "data:image/") {
		return "", ErrNotDataURI
	}

	meta, payload, found := strings.Cut(data, ";base64,")
	if !found {
		return "", ErrMalformedImageData
	}

	ext := strings.TrimPrefix(meta, "data:image/")
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedImage
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", ErrMalformedImageData
	}
	if len(raw) > maxImageSize {
		return "", fmt.Errorf("image exceeds %d bytes", maxImageSize)
	}

	filename := uuid.New().String() + "." + ext
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, filename), raw, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}

	return "/uploads/recipes/" + filename, nil
}

// SaveMultipart stores an uploaded file with a generated name and returns
// its relative URL.
func (s *ImageStore) SaveMultipart(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image exceeds %d bytes", maxImageSize)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(file.Filename)), ".")
	if ext == "" {
		ext = "jpg"
	}
	if !allowedExtensions[ext] {
		return "", ErrUnsupportedImage
	}

	filename := uuid.New().String() + "." + ext
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := c.SaveFile(file, filepath.Join(s.dir, filename)); err != nil {
		return "", fmt.Errorf("failed to save image: %w", err)
	}

	return "/uploads/recipes/" + filename, nil
}

// AbsoluteURL turns a stored relative image path into an absolute URL.
func AbsoluteURL(c *fiber.Ctx, image string) string {
	if image == "" || !strings.HasPrefix(image, "/") {
		return image
	}
	return c.Protocol() + "://" + c.Hostname() + image
}
