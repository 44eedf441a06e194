package handlers

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/okazarinova/platebook-backend/internal/dto"
	"github.com/okazarinova/platebook-backend/internal/services"
	"gorm.io/gorm"
)

// serviceError maps service-layer errors onto the HTTP taxonomy:
// validation -> 400, missing entity -> 404, ownership -> 403,
// credentials -> 401, everything else -> masked 500.
func serviceError(c *fiber.Ctx, err error) error {
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		fields := make(map[string]string, len(vErrs))
		for _, fe := range vErrs {
			fields[fe.Field()] = "failed on the '" + fe.Tag() + "' rule"
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Validation failed",
			Fields:  fields,
		})
	}

	switch {
	case errors.Is(err, services.ErrRecipeNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrTagNotFound),
		errors.Is(err, services.ErrIngredientNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})

	case errors.Is(err, services.ErrNotAuthor):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})

	case errors.Is(err, services.ErrNoIngredients),
		errors.Is(err, services.ErrDuplicateIngredient),
		errors.Is(err, services.ErrUnknownIngredient),
		errors.Is(err, services.ErrUnknownTag),
		errors.Is(err, services.ErrSelfFollow),
		errors.Is(err, services.ErrAlreadyFollowing),
		errors.Is(err, services.ErrNotFollowing),
		errors.Is(err, services.ErrAlreadyFavorited),
		errors.Is(err, services.ErrNotFavorited),
		errors.Is(err, services.ErrAlreadyInCart),
		errors.Is(err, services.ErrNotInCart),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrUsernameTaken),
		errors.Is(err, services.ErrUsernameReserved),
		errors.Is(err, services.ErrTagExists),
		errors.Is(err, gorm.ErrDuplicatedKey):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	slog.Error("unhandled service error", "method", c.Method(), "path", c.Path(), "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}

var errInvalidPayload = errors.New("invalid request body")
