package services

import (
	"admission-portal/apperrors"
	"admission-portal/constants"
	"admission-portal/services/token"

	"github.com/gofiber/fiber/v2"
)

// ClaimsKey is the fiber.Ctx Locals key holding the caller's *token.Claims.
const ClaimsKey = "user"

type PermissionService struct{}

func NewPermissionService() *PermissionService {
	return &PermissionService{}
}

// GetUserInfo returns the access token claims stored by the auth middleware
func (ps *PermissionService) GetUserInfo(c *fiber.Ctx) (*token.Claims, bool) {
	claims, ok := c.Locals(ClaimsKey).(*token.Claims)
	return claims, ok && claims != nil
}

// GetUserID returns the caller's account id
func (ps *PermissionService) GetUserID(c *fiber.Ctx) (uint, bool) {
	claims, ok := ps.GetUserInfo(c)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}

// RequireUserID is GetUserID for handlers behind IsAuthenticated
func (ps *PermissionService) RequireUserID(c *fiber.Ctx) (uint, error) {
	userID, ok := ps.GetUserID(c)
	if !ok {
		return 0, apperrors.ErrInvalidToken
	}
	return userID, nil
}

// GetUsername returns the caller's username
func (ps *PermissionService) GetUsername(c *fiber.Ctx) (string, bool) {
	claims, ok := ps.GetUserInfo(c)
	if !ok {
		return "", false
	}
	return claims.Username, true
}

// HasRole checks if the caller's user_type is one of roles
func (ps *PermissionService) HasRole(c *fiber.Ctx, roles ...string) bool {
	claims, ok := ps.GetUserInfo(c)
	if !ok {
		return false
	}
	for _, role := range roles {
		if claims.UserType == role {
			return true
		}
	}
	return false
}

// RequireRole returns ErrForbidden unless the caller has one of roles
func (ps *PermissionService) RequireRole(c *fiber.Ctx, roles ...string) error {
	if !ps.HasRole(c, roles...) {
		return apperrors.ErrForbidden
	}
	return nil
}

// IsAdmin checks if user has admin privileges
func (ps *PermissionService) IsAdmin(c *fiber.Ctx) bool {
	return ps.HasRole(c, constants.RoleAdmin)
}
