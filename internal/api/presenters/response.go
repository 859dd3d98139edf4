package presenters

import (
	"errors"

	"github.com/foodgram-app/foodgram-backend/domain"
	"github.com/gofiber/fiber/v2"
)

func SuccessResponse(c *fiber.Ctx, data interface{}, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"status":  "success",
		"message": message,
		"data":    data,
	})
}

func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	body := fiber.Map{
		"status":  "error",
		"message": message,
		"error":   err.Error(),
	}

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		body["fields"] = verr.Fields
	}

	return c.Status(code).JSON(body)
}

// StatusCode maps the domain error taxonomy to HTTP statuses: validation
// 400, missing entities 404, duplicate pairs 409, non-author mutation 403,
// storage trouble 503.
func StatusCode(err error) int {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrTagNotFound),
		errors.Is(err, domain.ErrNotInFavorites),
		errors.Is(err, domain.ErrNotInCart),
		errors.Is(err, domain.ErrNotSubscribed):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyInFavorites),
		errors.Is(err, domain.ErrAlreadyInCart),
		errors.Is(err, domain.ErrAlreadySubscribed):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrNotRecipeAuthor):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusBadRequest
	}
}
