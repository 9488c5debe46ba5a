package middleware

import (
	"time"

	"admission-portal/logger"
	"admission-portal/services"
	"admission-portal/services/token"
	"admission-portal/types"
	"admission-portal/utils"

	"github.com/gofiber/fiber/v2"
)

var permissions = services.NewPermissionService()

// IsAuthenticated validates the access token from the Authorization header
// (or the access cookie) and stores its claims in c.Locals("user").
func IsAuthenticated(issuer *token.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := utils.ExtractBearerToken(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(types.ErrorResponse{
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
				Error:   "not_authenticated",
			})
		}

		claims, err := issuer.ParseAccess(tokenString)
		if err != nil {
			return utils.SendError(c, err)
		}

		c.Locals(services.ClaimsKey, claims)
		return c.Next()
	}
}

// RequireRole allows the request only when the caller's user_type is one of
// roles. It must run after IsAuthenticated.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := permissions.RequireRole(c, roles...); err != nil {
			username, _ := permissions.GetUsername(c)
			logger.Warning("Forbidden " + c.Method() + " " + c.Path() + " for " + username)
			return utils.SendError(c, err)
		}
		return c.Next()
	}
}

// RequestLogger hands a sanitized copy of every request and response to the
// async logger once the handler chain has run.
func RequestLogger(asyncLogger *logger.AsyncLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// Let fiber's error handler write the response before it is logged.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				logger.Error("Error handler failed", err)
			}
		}

		entry := utils.CreateSanitizedLogEntry(c)
		entry.LatencyMs = time.Since(start).Milliseconds()
		if userID, ok := permissions.GetUserID(c); ok {
			entry.UserID = &userID
		}
		asyncLogger.Log(entry)
		return nil
	}
}
