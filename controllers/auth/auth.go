package auth

import (
	"errors"
	"time"

	"admission-portal/apperrors"
	"admission-portal/constants"
	"admission-portal/logger"
	"admission-portal/services"
	"admission-portal/services/identity"
	"admission-portal/services/token"
	"admission-portal/types"
	authtypes "admission-portal/types/auth"
	"admission-portal/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	identity    *identity.Service
	permissions *services.PermissionService
	production  bool
	accessTTL   time.Duration
	refreshTTL  time.Duration
}

func NewAuthController(identityService *identity.Service, production bool, accessTTL, refreshTTL time.Duration) *AuthController {
	return &AuthController{
		identity:    identityService,
		permissions: services.NewPermissionService(),
		production:  production,
		accessTTL:   accessTTL,
		refreshTTL:  refreshTTL,
	}
}

// Helper function to set secure cookies based on environment
func (h *AuthController) setSecureCookie(c *fiber.Ctx, name, value string, maxAge int) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		HTTPOnly: true,
		Secure:   h.production, // Only secure in production (HTTPS)
		SameSite: "Strict",
		MaxAge:   maxAge,
		Path:     "/",
	})
}

func (h *AuthController) setSessionCookies(c *fiber.Ctx, pair token.Pair) {
	h.setSecureCookie(c, constants.AccessCookie, pair.Access, int(h.accessTTL.Seconds()))
	h.setSecureCookie(c, constants.RefreshCookie, pair.Refresh, int(h.refreshTTL.Seconds()))
}

func (h *AuthController) Register(c *fiber.Ctx) error {
	var req authtypes.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}

	account, pair, err := h.identity.Register(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}

	h.setSessionCookies(c, pair)
	return c.Status(fiber.StatusCreated).JSON(authtypes.SessionResponse{
		User:    account.Public(),
		Refresh: pair.Refresh,
		Access:  pair.Access,
	})
}

func (h *AuthController) Login(c *fiber.Ctx) error {
	var req authtypes.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Error parsing request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}

	account, pair, err := h.identity.Login(c.UserContext(), req.Username, req.Password)
	if err != nil {
		return utils.SendError(c, err)
	}

	h.setSessionCookies(c, pair)
	logger.Success("User logged in successfully: " + account.Username)
	return c.Status(fiber.StatusOK).JSON(authtypes.SessionResponse{
		User:    account.Public(),
		Refresh: pair.Refresh,
		Access:  pair.Access,
	})
}

// RefreshToken mints a new access token. The refresh token comes from the
// body or, failing that, the refresh cookie.
func (h *AuthController) RefreshToken(c *fiber.Ctx) error {
	refresh, err := refreshFromRequest(c)
	if err != nil {
		return utils.SendBadRequest(c, "Invalid request body")
	}

	access, err := h.identity.Refresh(c.UserContext(), refresh)
	if err != nil {
		return utils.SendError(c, err)
	}

	h.setSecureCookie(c, constants.AccessCookie, access, int(h.accessTTL.Seconds()))
	return c.Status(fiber.StatusOK).JSON(authtypes.AccessResponse{Access: access})
}

// LogOut blacklists the caller's refresh token. An invalid or already
// revoked token is a bad request here, not an authentication failure.
func (h *AuthController) LogOut(c *fiber.Ctx) error {
	userID, err := h.permissions.RequireUserID(c)
	if err != nil {
		return utils.SendError(c, err)
	}

	refresh, err := refreshFromRequest(c)
	if err != nil {
		return utils.SendBadRequest(c, "Invalid request body")
	}

	if err := h.identity.Logout(c.UserContext(), userID, refresh); err != nil {
		if errors.Is(err, apperrors.ErrInvalidToken) {
			return c.Status(fiber.StatusBadRequest).JSON(types.ErrorResponse{
				Message: apperrors.ErrInvalidToken.Message,
				Status:  fiber.StatusBadRequest,
				Error:   apperrors.ErrInvalidToken.Reason,
			})
		}
		return utils.SendError(c, err)
	}

	// Clear the access and refresh cookies
	h.setSecureCookie(c, constants.AccessCookie, "", -1)
	h.setSecureCookie(c, constants.RefreshCookie, "", -1)

	logger.Success("Logout successful")
	return c.Status(fiber.StatusOK).JSON(types.ApiResponse{
		Message: "Logout successful",
		Status:  fiber.StatusOK,
	})
}

func refreshFromRequest(c *fiber.Ctx) (string, error) {
	var req authtypes.RefreshRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return "", err
		}
	}
	if req.Refresh == "" {
		req.Refresh = c.Cookies(constants.RefreshCookie)
	}
	return req.Refresh, nil
}
