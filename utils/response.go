package utils

import (
	"admission-portal/apperrors"
	"admission-portal/logger"
	"admission-portal/types"

	"github.com/gofiber/fiber/v2"
)

// SendError writes err as an ErrorResponse. Errors outside the apperrors
// taxonomy are logged and reported as internal_error.
func SendError(c *fiber.Ctx, err error) error {
	appErr := apperrors.As(err)
	status := apperrors.HTTPStatus(err)
	if appErr.Kind == apperrors.Internal {
		logger.Error(c.Method()+" "+c.Path()+" failed", err)
	}
	return c.Status(status).JSON(types.ErrorResponse{
		Message: appErr.Message,
		Status:  status,
		Error:   appErr.Reason,
	})
}

// SendBadRequest reports a malformed request body.
func SendBadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
		Message: message,
		Status:  fiber.StatusBadRequest,
		Error:   apperrors.ErrValidation.Reason,
	})
}
